package httputil_test

import (
	"context"
	"fmt"
	"time"

	"github.com/equimetrics/backend/pkg/config"
	"github.com/equimetrics/backend/pkg/httputil"
	"github.com/equimetrics/backend/pkg/logger"
)

// Example_basic demonstrates basic HTTP client usage
func Example_basic() {
	cfg := &config.Config{
		Env:      "production",
		LogLevel: "info",
	}
	log := logger.New(cfg)

	client := httputil.New(cfg, log)

	ctx := context.Background()
	resp, err := client.Get(ctx, "https://api.example.com/data")
	if err != nil {
		fmt.Printf("Request failed: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Printf("Status: %d\n", resp.StatusCode)
}

// Example_getJSON demonstrates decoding a JSON API response
func Example_getJSON() {
	cfg := &config.Config{
		Env:      "production",
		LogLevel: "info",
	}
	log := logger.New(cfg)

	client := httputil.New(cfg, log).
		WithRetry(5, 2*time.Second) // 5 retries, 2s initial delay

	var statements []struct {
		Date string  `json:"date"`
		EPS  float64 `json:"eps"`
	}

	ctx := context.Background()
	if err := client.GetJSON(ctx, "https://api.example.com/income-statement/AAPL", &statements); err != nil {
		fmt.Printf("Request failed after retries: %v\n", err)
		return
	}

	fmt.Printf("Fetched %d quarters\n", len(statements))
}

// Example_timeout demonstrates custom timeout
func Example_timeout() {
	cfg := &config.Config{
		Env:      "production",
		LogLevel: "info",
	}
	log := logger.New(cfg)

	// Create client with 5 second timeout
	client := httputil.NewWithTimeout(cfg, log, 5*time.Second)

	ctx := context.Background()
	resp, err := client.Get(ctx, "https://api.example.com/slow-endpoint")
	if err != nil {
		fmt.Printf("Request timeout: %v\n", err)
		return
	}
	defer resp.Body.Close()

	fmt.Println("Request completed within timeout")
}
