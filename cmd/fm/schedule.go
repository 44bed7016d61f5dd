package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/zulandar/foreman/internal/config"
	"github.com/zulandar/foreman/internal/db"
	"github.com/zulandar/foreman/internal/pipeline"
	"gorm.io/gorm"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow)
// plus descriptors such as @daily.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

func newScheduleCmd() *cobra.Command {
	var (
		configPath string
		expr       string
		noCharts   bool
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Re-run the pipeline on a cron schedule",
		Long: `Runs the pipeline every time the cron expression fires, anchored at the
fire time. A run that is still in progress when the next one is due causes
that next run to be skipped. Stops on interrupt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, configPath, expr, noCharts)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to Foreman config file (optional)")
	cmd.Flags().StringVar(&expr, "cron", "@daily", "cron expression (5-field or descriptor)")
	cmd.Flags().BoolVar(&noCharts, "no-charts", false, "skip chart rendering")
	return cmd
}

func runSchedule(cmd *cobra.Command, configPath, expr string, noCharts bool) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return fmt.Errorf("invalid --cron %q: %w", expr, err)
	}
	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := newScheduler(sched, scheduledJob(ctx, cfg, gormDB, noCharts, out))
	c.Start()
	fmt.Fprintf(out, "Scheduled %q, next run at %s\n", expr, sched.Next(time.Now()).Format(time.RFC3339))

	<-ctx.Done()
	<-c.Stop().Done()
	fmt.Fprintln(out, "Scheduler stopped.")
	return nil
}

// newScheduler returns a cron runner that skips a tick while job is still running.
func newScheduler(sched cron.Schedule, job func()) *cron.Cron {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	c.Schedule(sched, cron.FuncJob(job))
	return c
}

// scheduledJob runs the pipeline once, anchored at the current time.
func scheduledJob(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, noCharts bool, out io.Writer) func() {
	return func() {
		anchor := time.Now().UTC().Truncate(time.Microsecond)
		res, err := pipeline.Run(ctx, pipeline.Options{
			Config:   cfg,
			Anchor:   anchor,
			Out:      io.Discard,
			NoCharts: noCharts,
			DB:       gormDB,
		})
		if err != nil {
			log.Printf("schedule: run failed: %v", err)
			return
		}
		fmt.Fprintf(out, "%s run #%d complete (%d tasks)\n", anchor.Format(time.RFC3339), res.RunID, len(res.Analysis.Tasks))
	}
}
