// Package jobs holds the concrete scheduled jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/equimetrics/backend/internal/contracts"
	"github.com/equimetrics/backend/pkg/config"
	"github.com/equimetrics/backend/pkg/logger"
)

// RefreshJob warms the provider caches for a fixed ticker list so the
// first API request of the day is served from cache, not from FMP.
type RefreshJob struct {
	provider contracts.DataProvider
	tickers  []string
	schedule string
	logger   *logger.Logger
}

// NewRefreshJob creates a refresh job from the scheduler config.
func NewRefreshJob(provider contracts.DataProvider, cfg *config.Config, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		provider: provider,
		tickers:  cfg.Refresh.Tickers,
		schedule: cfg.Refresh.Schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "cache_refresh"
}

// Schedule returns the cron schedule from config
func (j *RefreshJob) Schedule() string {
	return j.schedule
}

// Run fetches every series for every configured ticker. A failing
// ticker is logged and skipped; the job fails only when every ticker
// failed, so one delisted symbol cannot starve the rest.
func (j *RefreshJob) Run(ctx context.Context) error {
	if len(j.tickers) == 0 {
		j.logger.Debug("No refresh tickers configured, nothing to do")
		return nil
	}

	failed := 0
	for _, ticker := range j.tickers {
		if err := j.refreshTicker(ctx, ticker); err != nil {
			failed++
			j.logger.WithError(err).WithField("ticker", ticker).Warn("Ticker refresh failed")
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"tickers": len(j.tickers),
		"failed":  failed,
	}).Info("Cache refresh completed")

	if failed == len(j.tickers) {
		return fmt.Errorf("all %d tickers failed to refresh", failed)
	}
	return nil
}

// refreshTicker pulls every series once so the cache layer stores it.
func (j *RefreshJob) refreshTicker(ctx context.Context, ticker string) error {
	fetches := []struct {
		name string
		fn   func() error
	}{
		{"quarterly_actuals", func() error { _, err := j.provider.QuarterlyActuals(ctx, ticker); return err }},
		{"quarterly_estimates", func() error { _, err := j.provider.QuarterlyEstimates(ctx, ticker); return err }},
		{"annual_actuals", func() error { _, err := j.provider.AnnualActuals(ctx, ticker); return err }},
		{"annual_estimates", func() error { _, err := j.provider.AnnualEstimates(ctx, ticker); return err }},
		{"snapshot", func() error { _, err := j.provider.Snapshot(ctx, ticker); return err }},
	}

	for _, f := range fetches {
		if err := f.fn(); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}
	return nil
}
