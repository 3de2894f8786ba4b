package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/equimetrics/backend/internal/contracts"
)

// metricsCmd computes the full metric map for one ticker
var metricsCmd = &cobra.Command{
	Use:   "metrics [ticker]",
	Short: "Compute valuation metrics for a ticker",
	Long: `Computes the full valuation metric map for one ticker and prints
each metric with its value or failure reason.

Example:
  go run ./cmd/equimetrics metrics AAPL
  go run ./cmd/equimetrics metrics AAPL --as-of 2025-08-15`,
	Args: cobra.ExactArgs(1),
	RunE: runMetrics,
}

var asOfFlag string

func init() {
	rootCmd.AddCommand(metricsCmd)

	metricsCmd.Flags().StringVar(&asOfFlag, "as-of", "", "valuation date YYYY-MM-DD (default today)")
}

// parseAsOf resolves the shared --as-of flag.
func parseAsOf() (time.Time, error) {
	if asOfFlag == "" {
		return time.Now().UTC(), nil
	}
	asOf, err := time.Parse("2006-01-02", asOfFlag)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --as-of %q: %w", asOfFlag, err)
	}
	return asOf, nil
}

func runMetrics(cmd *cobra.Command, args []string) error {
	asOf, err := parseAsOf()
	if err != nil {
		return err
	}

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	ticker := args[0]
	results := a.service.ComputeMetrics(cmd.Context(), ticker, asOf)

	fmt.Printf("Metrics for %s as of %s (strategy: %s)\n\n", ticker, asOf.Format("2006-01-02"), a.cfg.Metrics.Strategy)
	for _, key := range contracts.MetricKeys {
		fmt.Printf("  %-30s %s\n", key, results[key])
	}
	fmt.Printf("\n%d/%d metrics computed\n", results.SuccessCount(), len(contracts.MetricKeys))

	return nil
}
