// Package main provides the entry point for the distinct CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/distinct/cmd/distinct/commands"
	"github.com/Sumatoshi-tech/distinct/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "distinct",
		Short: "Distinct - approximate distinct counting with HyperLogLog",
		Long: `Distinct estimates the number of distinct elements in large streams
using the HyperLogLog probabilistic counting algorithm.

Commands:
  simulate  Feed a deterministic pseudo-random stream and compare against ground truth
  sweep     Run simulations across cardinalities and render an error chart
  config    Show the effective configuration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress output")

	rootCmd.AddCommand(commands.NewSimulateCommand())
	rootCmd.AddCommand(commands.NewSweepCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintln(os.Stdout, version.String())
		},
	}
}
