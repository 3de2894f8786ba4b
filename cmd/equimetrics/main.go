package main

import (
	"os"

	"github.com/equimetrics/backend/cmd/equimetrics/commands"
)

// main is the entry point for the equimetrics CLI:
// go run ./cmd/equimetrics [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
