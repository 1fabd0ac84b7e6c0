package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"stocksweep/config"
	"stocksweep/tools"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

/*
Command-line entry point: log in, open the basket, sweep SL % and entry time,
export every row once at the end
*/

// setupLogging configures the console logger
func setupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

// Builds the ordered sweep from CLI bounds
func buildSweep(slFrom, slTo int, start, end string) ([]tools.ParameterTuple, error) {
	if err := tools.ValidateStopLossRange(slFrom, slTo); err != nil {
		return nil, err
	}
	startClock, err := tools.ParseClock(start)
	if err != nil {
		return nil, fmt.Errorf("-start: %w", err)
	}
	endClock, err := tools.ParseClock(end)
	if err != nil {
		return nil, fmt.Errorf("-end: %w", err)
	}
	times := tools.GenerateTimeRange(startClock.Hour, startClock.Minute, endClock.Hour, endClock.Minute)
	return tools.SweepTuples(slFrom, slTo, times), nil
}

// Paces iterations; zero means no pacing
func newLimiter(throttle time.Duration) *rate.Limiter {
	if throttle <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(throttle), 1)
}

// finishRun exports the accumulated rows and logs the best one
func finishRun(logger zerolog.Logger, store *tools.ResultStore, fileName string) error {
	logger.Info().Int("rows", store.Len()).Str("file", fileName).Msg("Exporting results...")
	if err := tools.ExportResults(store.Records(), fileName); err != nil {
		logger.Error().Err(err).Str("file", fileName).Msg("Export failed")
		return err
	}
	logger.Info().Str("file", fileName).Msg("Results exported")

	if best, ok := store.Best(); ok {
		logger.Info().
			Int("sl_percent", best.L1StopLoss).
			Str("entry_time", best.EntryTime()).
			Str("overall_profit", best.OverallProfit).
			Str("expectancy", best.Expectancy).
			Msg("Best overall profit")
	}
	return nil
}

func run() int {
	setupLogging("info")
	settings := config.Load()

	out := flag.String("out", settings.ResultsFile, "Results file (.xlsx, or .csv)")
	basket := flag.String("basket", settings.BasketID, "Basket id to open")
	slFrom := flag.Int("slFrom", config.StopLossLow, "First SL % (applied to both legs)")
	slTo := flag.Int("slTo", config.StopLossHigh, "Last SL % (inclusive)")
	start := flag.String("start", config.EntryStart, "First entry time HH:MM")
	end := flag.String("end", config.EntryEnd, "Last entry time HH:MM (inclusive, wraps past midnight if earlier than -start)")
	headless := flag.Bool("headless", settings.Headless, "Run Chrome headless")
	stepTimeout := flag.Duration("stepTimeout", settings.StepTimeout, "Bound on each page step")
	runTimeout := flag.Duration("runTimeout", settings.RunTimeout, "Bound on each strategy run")
	throttle := flag.Duration("throttle", settings.Throttle, "Minimum time between iterations")
	logLevel := flag.String("logLevel", settings.LogLevel, "Log level: debug, info, warn, error")

	flag.Parse()
	setupLogging(*logLevel)

	logger := log.With().Str("run_id", uuid.NewString()).Logger()

	tuples, err := buildSweep(*slFrom, *slTo, *start, *end)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid sweep")
		return 2
	}
	logger.Info().
		Int("sl_from", *slFrom).
		Int("sl_to", *slTo).
		Str("start", *start).
		Str("end", *end).
		Int("iterations", len(tuples)).
		Msg("Sweep planned")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Setup failures abort before any iteration
	browser, err := tools.NewBrowser(ctx, *headless)
	if err != nil {
		logger.Error().Err(err).Msg("Could not start Chrome")
		return 1
	}
	defer browser.Close()

	driver := tools.NewStockMockDriver(browser, tools.DriverOptions{
		StepTimeout: *stepTimeout,
		RunTimeout:  *runTimeout,
	})
	creds := tools.Credentials{
		Phone:         settings.Phone,
		Password:      settings.Password,
		SessionCookie: settings.SessionCookie,
	}
	if err := driver.Login(ctx, creds); err != nil {
		logger.Error().Err(err).Msg("Setup failed")
		return 1
	}
	if err := driver.OpenBasket(ctx, *basket); err != nil {
		logger.Error().Err(err).Msg("Setup failed")
		return 1
	}

	store := tools.NewResultStore(len(tuples))
	sweeper := NewSweeper(driver, store, newLimiter(*throttle), logger)

	executed, sweepErr := sweeper.Run(ctx, tuples)
	if sweepErr != nil {
		logger.Warn().Err(sweepErr).Int("executed", executed).Int("planned", len(tuples)).Msg("Sweep interrupted")
	} else {
		logger.Info().Int("executed", executed).Msg("Sweep complete")
	}

	if err := finishRun(logger, store, *out); err != nil || sweepErr != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
