package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"STOCKMOCK_PHONE", "STOCKMOCK_PASSWORD", "STOCKMOCK_SESSION_COOKIE", "STOCKMOCK_BASKET_ID",
		"RESULTS_FILE", "LOG_LEVEL", "HEADLESS", "STEP_TIMEOUT", "RUN_TIMEOUT", "SWEEP_THROTTLE",
	} {
		t.Setenv(key, "")
	}

	s := Load()
	if s.BasketID != DefaultBasketID {
		t.Errorf("BasketID = %q, want %q", s.BasketID, DefaultBasketID)
	}
	if s.ResultsFile != ResultsFile {
		t.Errorf("ResultsFile = %q, want %q", s.ResultsFile, ResultsFile)
	}
	if s.StepTimeout != StepTimeout || s.RunTimeout != RunTimeout {
		t.Errorf("timeouts = %v/%v, want %v/%v", s.StepTimeout, s.RunTimeout, StepTimeout, RunTimeout)
	}
	if s.Headless {
		t.Error("Headless should default to false")
	}
	if s.Throttle != 0 {
		t.Errorf("Throttle = %v, want 0", s.Throttle)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STOCKMOCK_PHONE", "9000000000")
	t.Setenv("STOCKMOCK_BASKET_ID", "basket-1")
	t.Setenv("HEADLESS", "true")
	t.Setenv("STEP_TIMEOUT", "3s")
	t.Setenv("RUN_TIMEOUT", "not-a-duration")
	t.Setenv("SWEEP_THROTTLE", "250ms")

	s := Load()
	if s.Phone != "9000000000" {
		t.Errorf("Phone = %q", s.Phone)
	}
	if s.BasketID != "basket-1" {
		t.Errorf("BasketID = %q", s.BasketID)
	}
	if !s.Headless {
		t.Error("Headless should be true")
	}
	if s.StepTimeout != 3*time.Second {
		t.Errorf("StepTimeout = %v", s.StepTimeout)
	}
	if s.RunTimeout != RunTimeout {
		t.Errorf("malformed RUN_TIMEOUT should fall back, got %v", s.RunTimeout)
	}
	if s.Throttle != 250*time.Millisecond {
		t.Errorf("Throttle = %v", s.Throttle)
	}
}
