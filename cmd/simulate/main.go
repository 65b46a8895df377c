// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Command simulate drives an agent-based simulation loop over a columnar shared-state batch,
// re-filtering and re-aggregating the population through the output pipeline every tick.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Ontograph agent-loop driver: columnar shared state plus the output pipeline",
	Long: `simulate steps a fixed population of agents forward tick by tick, writing each
agent's state into an Arrow-backed columnar batch and running the index-filter /
aggregator pipeline over it every tick to report a population summary.`,
}

func main() {
	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
