package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/equimetrics/backend/internal/scheduler/jobs"
)

// refreshCmd warms provider caches once, outside the schedule
var refreshCmd = &cobra.Command{
	Use:   "refresh [tickers...]",
	Short: "Warm provider caches for the configured tickers",
	Long: `Fetches every data series for the given tickers (or REFRESH_TICKERS
when none are given) so later requests hit the cache.

Example:
  go run ./cmd/equimetrics refresh
  go run ./cmd/equimetrics refresh AAPL MSFT NVDA`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	if len(args) > 0 {
		a.cfg.Refresh.Tickers = args
	}
	if len(a.cfg.Refresh.Tickers) == 0 {
		return fmt.Errorf("no tickers given and REFRESH_TICKERS is empty")
	}

	job := jobs.NewRefreshJob(a.provider, a.cfg, a.log)
	if err := job.Run(cmd.Context()); err != nil {
		return err
	}

	fmt.Printf("Refreshed %d tickers\n", len(a.cfg.Refresh.Tickers))
	return nil
}
