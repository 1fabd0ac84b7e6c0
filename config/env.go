package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Settings holds runtime values that should not live in source (credentials)
// or that change between runs.
type Settings struct {
	Phone         string
	Password      string
	SessionCookie string
	BasketID      string
	ResultsFile   string
	LogLevel      string
	Headless      bool
	StepTimeout   time.Duration
	RunTimeout    time.Duration
	Throttle      time.Duration
}

// Load reads settings from the environment, loading .env first when present.
func Load() *Settings {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	return &Settings{
		Phone:         os.Getenv("STOCKMOCK_PHONE"),
		Password:      os.Getenv("STOCKMOCK_PASSWORD"),
		SessionCookie: os.Getenv("STOCKMOCK_SESSION_COOKIE"),
		BasketID:      getEnvWithDefault("STOCKMOCK_BASKET_ID", DefaultBasketID),
		ResultsFile:   getEnvWithDefault("RESULTS_FILE", ResultsFile),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "info"),
		Headless:      getEnvBoolWithDefault("HEADLESS", false),
		StepTimeout:   getEnvDurationWithDefault("STEP_TIMEOUT", StepTimeout),
		RunTimeout:    getEnvDurationWithDefault("RUN_TIMEOUT", RunTimeout),
		Throttle:      getEnvDurationWithDefault("SWEEP_THROTTLE", 0),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring malformed boolean")
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Warn().Str("key", key).Str("value", value).Msg("Ignoring malformed duration")
	}
	return defaultValue
}
