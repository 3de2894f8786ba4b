package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// growthCmd runs every calculation method side by side
var growthCmd = &cobra.Command{
	Use:   "growth [ticker]",
	Short: "Compare growth calculation methods for a ticker",
	Long: `Runs every reconciliation strategy and window variant side by side
so the methods can be compared for one ticker.

Example:
  go run ./cmd/equimetrics growth AAPL
  go run ./cmd/equimetrics growth AAPL --as-of 2025-08-15`,
	Args: cobra.ExactArgs(1),
	RunE: runGrowth,
}

func init() {
	rootCmd.AddCommand(growthCmd)

	growthCmd.Flags().StringVar(&asOfFlag, "as-of", "", "valuation date YYYY-MM-DD (default today)")
}

func runGrowth(cmd *cobra.Command, args []string) error {
	asOf, err := parseAsOf()
	if err != nil {
		return err
	}

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	report := a.service.ComputeGrowth(cmd.Context(), args[0], asOf)

	fmt.Printf("Growth variants for %s, fiscal year %d, as of %s\n\n", report.Ticker, report.Year, report.AsOf.Format("2006-01-02"))

	fmt.Println("Growth (EPS / revenue):")
	for _, v := range report.Variants {
		fmt.Printf("  %-35s %-28s %s\n", v.Name, v.EPS, v.Revenue)
	}

	fmt.Println("\nForward P/E:")
	for _, v := range report.PE {
		fmt.Printf("  %-35s %s\n", v.Name, v.Result)
	}

	return nil
}
