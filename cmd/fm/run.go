package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/foreman/internal/config"
	"github.com/zulandar/foreman/internal/db"
	"github.com/zulandar/foreman/internal/pipeline"
	"gorm.io/gorm"
)

type runFlags struct {
	configPath string
	anchor     string
	seed       uint64
	noCharts   bool
	noLedger   bool
}

func newRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate, analyze and report on the project task table",
		Long: `Synthesizes the task table, writes it to the raw CSV and reloads it,
derives total cost and duration, prints summary statistics and team totals,
renders the cost and timeline charts, and writes the analysis CSVs.

Without a config file the stock six-task project is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", defaultConfigPath, "path to Foreman config file (optional)")
	cmd.Flags().StringVar(&f.anchor, "anchor", "", "project start time, RFC3339 or YYYY-MM-DD (default now)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "override the random seed from config")
	cmd.Flags().BoolVar(&f.noCharts, "no-charts", false, "skip chart rendering")
	cmd.Flags().BoolVar(&f.noLedger, "no-ledger", false, "do not record the run in the ledger database")
	return cmd
}

func runRun(cmd *cobra.Command, f runFlags) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadOrDefault(f.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if f.seed != 0 {
		cfg.Seed = f.seed
	}
	anchor, err := parseAnchor(f.anchor, time.Now)
	if err != nil {
		return err
	}

	var gormDB *gorm.DB
	if !f.noLedger {
		gormDB, err = db.Connect(cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close(gormDB)
	}

	res, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Config:   cfg,
		Anchor:   anchor,
		Out:      out,
		NoCharts: f.noCharts,
		DB:       gormDB,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Raw table:     %s\n", cfg.Paths.Raw)
	fmt.Fprintf(out, "Analysis:      %s\n", res.Outputs.Analysis)
	fmt.Fprintf(out, "Team summary:  %s\n", res.Outputs.TeamSummary)
	for _, p := range res.Outputs.Charts {
		fmt.Fprintf(out, "Chart:         %s\n", p)
	}
	if res.RunID != 0 {
		fmt.Fprintf(out, "Recorded run #%d\n", res.RunID)
	}
	return nil
}

// parseAnchor parses an RFC3339 timestamp or a bare date. An empty string
// yields now() in UTC. The result is truncated to microseconds, the
// precision of the CSV date columns.
func parseAnchor(s string, now func() time.Time) (time.Time, error) {
	if s == "" {
		return now().UTC().Truncate(time.Microsecond), nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Microsecond), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --anchor %q: want RFC3339 or YYYY-MM-DD", s)
}
