package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

const defaultConfigPath = "foreman.yaml"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fm",
		Short: "Foreman: construction resource allocation reports",
		Long: "Foreman synthesizes a construction project task table, analyzes cost, " +
			"duration and team workload, and writes charts and CSV reports.",
		SilenceUsage: true,
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newScheduleCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fm %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
