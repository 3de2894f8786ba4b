package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	os.Setenv("FMP_API_KEY", "test-key")
	defer os.Unsetenv("FMP_API_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8086" {
		t.Errorf("Expected Port to be 8086, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Metrics.Strategy != "median" {
		t.Errorf("Expected default strategy to be median, got %s", cfg.Metrics.Strategy)
	}

	if cfg.FMP.QuarterLimit != 40 {
		t.Errorf("Expected FMP QuarterLimit to be 40, got %d", cfg.FMP.QuarterLimit)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("FMP_API_KEY", "test-key")
	os.Setenv("RECONCILE_STRATEGY", "ratio")
	os.Setenv("REFRESH_TICKERS", "aapl, msft ,GOOG")
	os.Setenv("LOG_LEVEL", "info")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("FMP_API_KEY")
		os.Unsetenv("RECONCILE_STRATEGY")
		os.Unsetenv("REFRESH_TICKERS")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Metrics.Strategy != "ratio" {
		t.Errorf("Expected strategy to be ratio, got %s", cfg.Metrics.Strategy)
	}

	want := []string{"AAPL", "MSFT", "GOOG"}
	if len(cfg.Refresh.Tickers) != len(want) {
		t.Fatalf("Expected %d tickers, got %d", len(want), len(cfg.Refresh.Tickers))
	}
	for i, ticker := range want {
		if cfg.Refresh.Tickers[i] != ticker {
			t.Errorf("Ticker %d = %s, want %s", i, cfg.Refresh.Tickers[i], ticker)
		}
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to be info, got %s", cfg.LogLevel)
	}
}

func TestValidateMissingAPIKey(t *testing.T) {
	os.Unsetenv("FMP_API_KEY")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when FMP_API_KEY is missing, got nil")
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("FMP_API_KEY", "test-key")
	os.Setenv("ENV", "invalid")

	defer func() {
		os.Unsetenv("FMP_API_KEY")
		os.Unsetenv("ENV")
	}()

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateInvalidStrategy(t *testing.T) {
	os.Setenv("FMP_API_KEY", "test-key")
	os.Setenv("RECONCILE_STRATEGY", "harmonic")

	defer func() {
		os.Unsetenv("FMP_API_KEY")
		os.Unsetenv("RECONCILE_STRATEGY")
	}()

	_, err := Load()
	if err == nil {
		t.Error("Expected error for unknown reconcile strategy, got nil")
	}
}

func TestValidateDatabaseURLRequiredWhenEnabled(t *testing.T) {
	os.Setenv("FMP_API_KEY", "test-key")
	os.Setenv("DB_ENABLED", "true")
	os.Unsetenv("DATABASE_URL")

	defer func() {
		os.Unsetenv("FMP_API_KEY")
		os.Unsetenv("DB_ENABLED")
	}()

	_, err := Load()
	if err == nil {
		t.Error("Expected error when DB_ENABLED=true without DATABASE_URL, got nil")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2h")
	defer os.Unsetenv("TEST_DURATION")

	duration := getEnvAsDuration("TEST_DURATION", "1h")
	expected := 2 * time.Hour

	if duration != expected {
		t.Errorf("Expected duration to be %v, got %v", expected, duration)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	os.Setenv("TEST_INT", "100")
	defer os.Unsetenv("TEST_INT")

	value := getEnvAsInt("TEST_INT", 50)
	if value != 100 {
		t.Errorf("Expected value to be 100, got %d", value)
	}
}

func TestGetEnvAsList(t *testing.T) {
	os.Setenv("TEST_LIST", "a, b,, c ")
	defer os.Unsetenv("TEST_LIST")

	value := getEnvAsList("TEST_LIST", nil)
	if len(value) != 3 || value[0] != "A" || value[1] != "B" || value[2] != "C" {
		t.Errorf("Expected [A B C], got %v", value)
	}
}
