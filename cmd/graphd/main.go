// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Command graphd serves C1/C2/C6: subgraph resolution over postgres-backed graph and policy
// stores, gated by the authorization checker, over the RPC session transport.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "graphd",
	Short: "Ontograph graph daemon: subgraph resolution over an RPC session transport",
	Long: `graphd serves authorization-gated subgraph resolution requests against a
postgres-backed graph store and policy store, accepting connections over the
ontograph RPC session protocol.`,
}

func main() {
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
