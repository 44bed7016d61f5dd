// Package analysis derives cost and duration columns from a task table and
// produces the descriptive statistics, rankings and team aggregates printed
// after each run.
package analysis

import (
	"cmp"
	"errors"
	"math"
	"slices"

	"github.com/zulandar/foreman/internal/models"
)

// ErrEmpty is returned when analysis is requested for a table with no rows.
var ErrEmpty = errors.New("analysis: empty task table")

// Result bundles every output of Analyze.
type Result struct {
	Tasks        []models.TaskRecord
	Stats        []ColumnStats
	ByCost       []models.TaskRecord
	Teams        []models.TeamSummary
	TeamsByLabor []models.TeamSummary
}

// Analyze derives the computed columns of records in place, then computes
// statistics, the cost ranking and the team summaries.
func Analyze(records []models.TaskRecord, laborRate int) (*Result, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	Derive(records, laborRate)
	stats, err := Describe(records)
	if err != nil {
		return nil, err
	}
	teams := GroupByTeam(records)
	return &Result{
		Tasks:        records,
		Stats:        stats,
		ByCost:       SortByCost(records),
		Teams:        teams,
		TeamsByLabor: SortByLabor(teams),
	}, nil
}

// Derive sets TotalCost and DurationDays on every record. Calling it again
// recomputes the same values.
func Derive(records []models.TaskRecord, laborRate int) {
	for i := range records {
		r := &records[i]
		r.TotalCost = r.LaborHours*laborRate + r.MaterialCost + r.EquipmentCost
		r.DurationDays = int(math.Floor(r.EndDate.Sub(r.StartDate).Hours() / 24))
	}
}

// SortByCost returns a copy of records ordered by TotalCost, highest first.
// Ties keep their table order.
func SortByCost(records []models.TaskRecord) []models.TaskRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b models.TaskRecord) int {
		return cmp.Compare(b.TotalCost, a.TotalCost)
	})
	return out
}

// GroupByTeam sums labor hours and total cost per team. Rows are ordered by
// team name.
func GroupByTeam(records []models.TaskRecord) []models.TeamSummary {
	idx := make(map[string]int)
	var teams []models.TeamSummary
	for _, r := range records {
		i, ok := idx[r.AssignedTeam]
		if !ok {
			i = len(teams)
			idx[r.AssignedTeam] = i
			teams = append(teams, models.TeamSummary{AssignedTeam: r.AssignedTeam})
		}
		teams[i].LaborHours += r.LaborHours
		teams[i].TotalCost += r.TotalCost
	}
	slices.SortFunc(teams, func(a, b models.TeamSummary) int {
		return cmp.Compare(a.AssignedTeam, b.AssignedTeam)
	})
	return teams
}

// SortByLabor returns a copy of teams ordered by LaborHours, lowest first.
func SortByLabor(teams []models.TeamSummary) []models.TeamSummary {
	out := slices.Clone(teams)
	slices.SortStableFunc(out, func(a, b models.TeamSummary) int {
		return cmp.Compare(a.LaborHours, b.LaborHours)
	})
	return out
}
