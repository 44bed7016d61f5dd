// Package pipeline runs the four Foreman stages in order: synthesize the
// task table, round-trip it through the raw CSV, analyze the reloaded copy,
// and write the reports.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/zulandar/foreman/internal/analysis"
	"github.com/zulandar/foreman/internal/config"
	"github.com/zulandar/foreman/internal/db"
	"github.com/zulandar/foreman/internal/notify"
	"github.com/zulandar/foreman/internal/report"
	"github.com/zulandar/foreman/internal/synth"
	"github.com/zulandar/foreman/internal/table"
	"gorm.io/gorm"
)

// Options configures one pipeline run.
type Options struct {
	Config   *config.Config
	Anchor   time.Time
	Out      io.Writer
	NoCharts bool
	// DB is the run ledger. A nil DB skips recording.
	DB *gorm.DB
}

// Result is the outcome of a run.
type Result struct {
	Analysis *analysis.Result
	Outputs  *report.Outputs
	RunID    uint
}

// Run executes the pipeline. Ledger and notification failures are logged
// and do not fail the run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	records, err := synth.Generate(synth.NewRand(cfg.Seed), opts.Anchor, synth.ParamsFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	reloaded, err := table.RoundTrip(cfg.Paths.Raw, records)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	res, err := analysis.Analyze(reloaded, cfg.LaborRate)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	if err := analysis.Print(out, res); err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	ropts := report.OptionsFromConfig(cfg)
	ropts.NoCharts = opts.NoCharts
	outputs, err := report.Write(ropts, res.Tasks, res.Teams)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	result := &Result{Analysis: res, Outputs: outputs}

	if opts.DB != nil {
		run := db.NewRun(cfg.Seed, opts.Anchor, cfg.Paths.Raw, res.Tasks, res.Teams)
		if err := db.RecordRun(opts.DB.WithContext(ctx), run); err != nil {
			log.Printf("pipeline: ledger: %v", err)
		} else {
			result.RunID = run.ID
		}
	}

	if cfg.Notify.SlackWebhook != "" || cfg.Notify.DiscordWebhook != "" {
		summary := notify.Summary(res.ByCost, res.Teams)
		if err := notify.Slack(ctx, cfg.Notify.SlackWebhook, summary); err != nil {
			log.Printf("pipeline: %v", err)
		}
		if err := notify.Discord(ctx, cfg.Notify.DiscordWebhook, summary); err != nil {
			log.Printf("pipeline: %v", err)
		}
	}

	return result, nil
}
