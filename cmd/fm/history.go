package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/foreman/internal/analysis"
	"github.com/zulandar/foreman/internal/config"
	"github.com/zulandar/foreman/internal/db"
	"gorm.io/gorm"
)

func newHistoryCmd() *cobra.Command {
	var (
		configPath string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, configPath, limit)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Foreman config file (optional)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of runs to list (0 for all)")
	return cmd
}

func runHistory(cmd *cobra.Command, configPath string, limit int) error {
	gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	runs, err := db.ListRuns(gormDB, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tSEED\tTASKS\tLABOR\tTOTAL COST")
	for _, r := range runs {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Seed, r.TaskCount, r.LaborHours, r.TotalCost)
	}
	return w.Flush()
}

func newShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the tasks and team summary of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}
			return runShow(cmd, configPath, uint(id))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Foreman config file (optional)")
	return cmd
}

func runShow(cmd *cobra.Command, configPath string, id uint) error {
	gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	run, err := db.GetRun(gormDB, id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run #%d  seed %d  anchor %s  recorded %s\n\n",
		run.ID, run.Seed, run.Anchor.Format("2006-01-02"), run.CreatedAt.Format("2006-01-02 15:04:05"))

	tasks := db.TaskRecords(run)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tSTART\tEND\tDAYS\tTEAM\tLABOR\tMATERIAL\tEQUIPMENT\tTOTAL")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%d\t%d\t%d\n",
			t.TaskName, t.StartDate.Format("2006-01-02"), t.EndDate.Format("2006-01-02"), t.DurationDays,
			t.AssignedTeam, t.LaborHours, t.MaterialCost, t.EquipmentCost, t.TotalCost)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	return analysis.FormatTeams(out, db.TeamSummaries(run))
}

// connectFromConfig loads config (or defaults) and opens the ledger.
func connectFromConfig(configPath string) (*gorm.DB, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return db.Connect(cfg.Database)
}
