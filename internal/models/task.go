package models

import "time"

// TaskRecord is one construction task row. TotalCost and DurationDays are
// zero until the analysis stage derives them; they are never written to the
// raw table.
type TaskRecord struct {
	TaskName      string
	StartDate     time.Time
	EndDate       time.Time
	LaborHours    int
	MaterialCost  int
	EquipmentCost int
	AssignedTeam  string

	TotalCost    int
	DurationDays int
}

// TeamSummary aggregates labor hours and total cost for one team.
type TeamSummary struct {
	AssignedTeam string
	LaborHours   int
	TotalCost    int
}
