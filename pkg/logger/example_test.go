package logger_test

import (
	"errors"

	"github.com/equimetrics/backend/pkg/config"
	"github.com/equimetrics/backend/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	log := logger.New(cfg)

	// Basic logging
	log.Debug("This won't appear (level is info)")
	log.Info("Application started")
	log.Warn("Estimate history is thin")
	log.Error("Failed to connect")

	// Formatted logging
	log.Infof("Computed metrics for %s", "AAPL")
	log.Warnf("Retry attempt %d of %d", 3, 5)

}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Add single field
	tickerLog := log.WithField("ticker", "MSFT")
	tickerLog.Info("Fetching quarterly estimates")

	// Add multiple fields
	metricLog := log.WithFields(map[string]interface{}{
		"ticker":   "MSFT",
		"metric":   "current_year_eps_growth",
		"strategy": "median",
		"factor":   1.079,
	})
	metricLog.Info("Metric computed")

}

// Example_withError demonstrates error logging
func Example_withError() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	err := errors.New("provider request timeout")
	log.WithError(err).Error("Failed to fetch income statements")

	log.WithError(err).
		WithFields(map[string]interface{}{
			"retry_count": 3,
			"timeout_ms":  5000,
		}).
		Error("Connection failed after retries")

}
