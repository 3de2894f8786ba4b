package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	env        string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "equimetrics",
	Short: "Equimetrics - equity valuation metrics engine",
	Long: `Equimetrics CLI

Computes valuation metrics (P/E, P/S, margins, growth rates) from
reported statements reconciled against analyst estimates.

Usage:
  go run ./cmd/equimetrics [command]

Examples:
  go run ./cmd/equimetrics api
  go run ./cmd/equimetrics metrics AAPL
  go run ./cmd/equimetrics growth AAPL --as-of 2025-08-15
  go run ./cmd/equimetrics refresh`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
