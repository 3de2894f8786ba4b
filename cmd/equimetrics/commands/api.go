package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/equimetrics/backend/internal/api"
	"github.com/equimetrics/backend/internal/api/handlers"
	"github.com/equimetrics/backend/internal/scheduler"
	"github.com/equimetrics/backend/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                 - Health check
  GET  /api/metrics/{ticker}   - Full valuation metric map
  GET  /api/growth/{ticker}    - Growth method comparison

Example:
  go run ./cmd/equimetrics api
  go run ./cmd/equimetrics api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Wire dependencies
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	// 2. Create handler and router
	metricsHandler := handlers.NewMetricsHandler(a.service, a.log)
	router := api.NewRouter(metricsHandler, a.log)

	// 3. Create server
	server := api.New(a.cfg, a.log, router)

	// 4. Start the refresh scheduler when enabled
	var sched *scheduler.Scheduler
	if a.cfg.Refresh.Enabled && len(a.cfg.Refresh.Tickers) > 0 {
		sched = scheduler.New(a.log)
		if err := sched.AddJob(jobs.NewRefreshJob(a.provider, a.cfg, a.log)); err != nil {
			return fmt.Errorf("schedule refresh job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// 5. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			a.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	a.log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
