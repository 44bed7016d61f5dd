// Package report writes the charts and derived CSV files for an analyzed
// task table.
package report

import (
	"fmt"

	"github.com/zulandar/foreman/internal/chart"
	"github.com/zulandar/foreman/internal/config"
	"github.com/zulandar/foreman/internal/models"
	"github.com/zulandar/foreman/internal/table"
)

// Options controls which outputs are produced.
type Options struct {
	Paths     config.Paths
	ChartDir  string
	ChartSize chart.Size
	NoCharts  bool
}

// Outputs lists the files written by Write.
type Outputs struct {
	Charts      []string
	Analysis    string
	TeamSummary string
}

// OptionsFromConfig builds report options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Paths:     cfg.Paths,
		ChartDir:  cfg.Charts.Dir,
		ChartSize: chart.Size{Width: cfg.Charts.Width, Height: cfg.Charts.Height},
	}
}

// Write renders the charts, then writes the analysis table and the team
// summary. Any failure stops the remaining outputs.
func Write(opts Options, tasks []models.TaskRecord, teams []models.TeamSummary) (*Outputs, error) {
	out := &Outputs{}
	if !opts.NoCharts {
		paths, err := chart.Render(opts.ChartDir, opts.ChartSize, tasks)
		if err != nil {
			return nil, fmt.Errorf("report: %w", err)
		}
		out.Charts = paths
	}
	if err := table.WriteAnalysis(opts.Paths.Analysis, tasks); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	out.Analysis = opts.Paths.Analysis
	if err := table.WriteTeamSummary(opts.Paths.TeamSummary, teams); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	out.TeamSummary = opts.Paths.TeamSummary
	return out, nil
}
