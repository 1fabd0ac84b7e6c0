package main

import (
	"context"
	"stocksweep/config"
	"stocksweep/tools"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

/*
Runs the parameter sweep against the page driver, one result row per tuple.
A failing iteration is recorded as N/A and never stops the sweep.
*/

// PageDriver is everything the sweep needs from the strategy page
type PageDriver interface {
	Login(ctx context.Context, creds tools.Credentials) error
	OpenBasket(ctx context.Context, basketID string) error
	EditStrategy(ctx context.Context) error
	SetStrategyParameter(ctx context.Context, leg tools.Leg, percent int) error
	SetEntryTime(ctx context.Context, hour, minute int) error
	SaveStrategy(ctx context.Context) error
	RunStrategy(ctx context.Context) error
	CaptureMetric(ctx context.Context, name string) (string, error)
}

type Sweeper struct {
	driver  PageDriver
	store   *tools.ResultStore
	limiter *rate.Limiter
	logger  zerolog.Logger
}

func NewSweeper(driver PageDriver, store *tools.ResultStore, limiter *rate.Limiter, logger zerolog.Logger) *Sweeper {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Sweeper{
		driver:  driver,
		store:   store,
		limiter: limiter,
		logger:  logger.With().Str("component", "sweeper").Logger(),
	}
}

// Run executes tuples in order and returns how many were recorded.
// It stops early only when ctx is cancelled, returning ctx's error.
func (s *Sweeper) Run(ctx context.Context, tuples []tools.ParameterTuple) (int, error) {
	executed := 0
	for i, t := range tuples {
		if err := s.limiter.Wait(ctx); err != nil {
			return executed, err
		}

		profit, expectancy := s.runOnce(ctx, t)
		s.store.Record(t, profit, expectancy)
		executed++

		s.logger.Info().
			Int("iteration", i+1).
			Int("of", len(tuples)).
			Int("sl_percent", t.StopLossPercent).
			Str("entry_time", t.EntryTime().String()).
			Str("overall_profit", profit).
			Str("expectancy", expectancy).
			Msg("Iteration complete")

		if err := ctx.Err(); err != nil {
			return executed, err
		}
	}
	return executed, nil
}

// runOnce applies one tuple and captures its metrics. Any failure before the
// run completes yields N/A for both metrics; capture failures are per metric.
func (s *Sweeper) runOnce(ctx context.Context, t tools.ParameterTuple) (string, string) {
	logger := s.logger.With().
		Int("sl_percent", t.StopLossPercent).
		Str("entry_time", t.EntryTime().String()).
		Logger()

	steps := []struct {
		name string
		do   func() error
	}{
		{"edit", func() error { return s.driver.EditStrategy(ctx) }},
		{"set L1 SL", func() error { return s.driver.SetStrategyParameter(ctx, tools.LegL1, t.StopLossPercent) }},
		{"set L2 SL", func() error { return s.driver.SetStrategyParameter(ctx, tools.LegL2, t.StopLossPercent) }},
		{"set entry time", func() error { return s.driver.SetEntryTime(ctx, t.EntryHour, t.EntryMinute) }},
		{"save", func() error { return s.driver.SaveStrategy(ctx) }},
		{"run", func() error { return s.driver.RunStrategy(ctx) }},
	}
	for _, step := range steps {
		if err := step.do(); err != nil {
			logger.Warn().Err(err).Str("step", step.name).Msg("Iteration failed, recording N/A")
			return tools.NotAvailable, tools.NotAvailable
		}
	}

	return s.capture(ctx, logger, config.MetricOverallProfit), s.capture(ctx, logger, config.MetricExpectancy)
}

func (s *Sweeper) capture(ctx context.Context, logger zerolog.Logger, metric string) string {
	value, err := s.driver.CaptureMetric(ctx, metric)
	if err != nil || value == "" {
		logger.Warn().Err(err).Str("metric", metric).Msg("Could not capture metric")
		return tools.NotAvailable
	}
	return value
}
