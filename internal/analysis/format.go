package analysis

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/zulandar/foreman/internal/models"
)

// FormatStats writes the statistics as a table with one column per numeric
// field and one row per statistic.
func FormatStats(out io.Writer, stats []ColumnStats) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "\t")
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t", s.Column)
	}
	fmt.Fprintln(w)

	rows := []struct {
		label string
		get   func(ColumnStats) float64
	}{
		{"count", func(s ColumnStats) float64 { return float64(s.Count) }},
		{"mean", func(s ColumnStats) float64 { return s.Mean }},
		{"std", func(s ColumnStats) float64 { return s.Std }},
		{"min", func(s ColumnStats) float64 { return s.Min }},
		{"25%", func(s ColumnStats) float64 { return s.Q25 }},
		{"50%", func(s ColumnStats) float64 { return s.Q50 }},
		{"75%", func(s ColumnStats) float64 { return s.Q75 }},
		{"max", func(s ColumnStats) float64 { return s.Max }},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t", row.label)
		for _, s := range stats {
			fmt.Fprintf(w, "%s\t", strconv.FormatFloat(row.get(s), 'f', 6, 64))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// FormatCostRanking writes task_name and total_cost for each task in order.
func FormatCostRanking(out io.Writer, tasks []models.TaskRecord) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TASK\tTOTAL COST")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%d\n", t.TaskName, t.TotalCost)
	}
	return w.Flush()
}

// FormatTeams writes one line per team summary.
func FormatTeams(out io.Writer, teams []models.TeamSummary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TEAM\tLABOR HOURS\tTOTAL COST")
	for _, t := range teams {
		fmt.Fprintf(w, "%s\t%d\t%d\n", t.AssignedTeam, t.LaborHours, t.TotalCost)
	}
	return w.Flush()
}

// Print writes the four console sections in order: statistics, cost
// ranking, team summary, team summary by labor.
func Print(out io.Writer, res *Result) error {
	sections := []struct {
		title string
		write func() error
	}{
		{"Summary statistics", func() error { return FormatStats(out, res.Stats) }},
		{"Tasks by total cost", func() error { return FormatCostRanking(out, res.ByCost) }},
		{"Team summary", func() error { return FormatTeams(out, res.Teams) }},
		{"Team summary by labor hours", func() error { return FormatTeams(out, res.TeamsByLabor) }},
	}
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s:\n", s.title)
		if err := s.write(); err != nil {
			return fmt.Errorf("analysis: print %s: %w", s.title, err)
		}
	}
	return nil
}
