package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/zulandar/foreman/internal/models"
	"gorm.io/gorm"
)

// ErrRunNotFound is returned by GetRun for an unknown ID.
var ErrRunNotFound = errors.New("db: run not found")

// NewRun builds a ledger entry from an analyzed table.
func NewRun(seed uint64, anchor time.Time, rawPath string, tasks []models.TaskRecord, teams []models.TeamSummary) *models.Run {
	run := &models.Run{
		Seed:      seed,
		Anchor:    anchor,
		TaskCount: len(tasks),
		RawPath:   rawPath,
		Tasks:     make([]models.RunTask, len(tasks)),
		Teams:     make([]models.RunTeam, len(teams)),
	}
	for i, t := range tasks {
		run.TotalCost += t.TotalCost
		run.LaborHours += t.LaborHours
		run.Tasks[i] = models.RunTask{
			Position:      i,
			TaskName:      t.TaskName,
			StartDate:     t.StartDate,
			EndDate:       t.EndDate,
			LaborHours:    t.LaborHours,
			MaterialCost:  t.MaterialCost,
			EquipmentCost: t.EquipmentCost,
			AssignedTeam:  t.AssignedTeam,
			TotalCost:     t.TotalCost,
			DurationDays:  t.DurationDays,
		}
	}
	for i, t := range teams {
		run.Teams[i] = models.RunTeam{
			AssignedTeam: t.AssignedTeam,
			LaborHours:   t.LaborHours,
			TotalCost:    t.TotalCost,
		}
	}
	return run
}

// RecordRun inserts run together with its tasks and teams.
func RecordRun(db *gorm.DB, run *models.Run) error {
	if err := db.Create(run).Error; err != nil {
		return fmt.Errorf("db: record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first, without their rows.
// A limit of zero or less returns all runs.
func ListRuns(db *gorm.DB, limit int) ([]models.Run, error) {
	q := db.Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var runs []models.Run
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("db: list runs: %w", err)
	}
	return runs, nil
}

// GetRun loads one run with its tasks (table order) and teams.
func GetRun(db *gorm.DB, id uint) (*models.Run, error) {
	var run models.Run
	err := db.
		Preload("Tasks", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
		Preload("Teams", func(tx *gorm.DB) *gorm.DB { return tx.Order("assigned_team ASC") }).
		First(&run, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("db: get run %d: %w", id, err)
	}
	return &run, nil
}

// TaskRecords converts the stored tasks of run back to TaskRecords.
func TaskRecords(run *models.Run) []models.TaskRecord {
	out := make([]models.TaskRecord, len(run.Tasks))
	for i, t := range run.Tasks {
		out[i] = models.TaskRecord{
			TaskName:      t.TaskName,
			StartDate:     t.StartDate,
			EndDate:       t.EndDate,
			LaborHours:    t.LaborHours,
			MaterialCost:  t.MaterialCost,
			EquipmentCost: t.EquipmentCost,
			AssignedTeam:  t.AssignedTeam,
			TotalCost:     t.TotalCost,
			DurationDays:  t.DurationDays,
		}
	}
	return out
}

// TeamSummaries converts the stored teams of run back to TeamSummaries.
func TeamSummaries(run *models.Run) []models.TeamSummary {
	out := make([]models.TeamSummary, len(run.Teams))
	for i, t := range run.Teams {
		out[i] = models.TeamSummary{AssignedTeam: t.AssignedTeam, LaborHours: t.LaborHours, TotalCost: t.TotalCost}
	}
	return out
}
