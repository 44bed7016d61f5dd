package models

import "time"

// Run records one execution of the pipeline in the ledger.
type Run struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	Seed       uint64    `gorm:"not null"`
	Anchor     time.Time `gorm:"not null"`
	TaskCount  int       `gorm:"not null"`
	TotalCost  int       `gorm:"not null"`
	LaborHours int       `gorm:"not null"`
	RawPath    string    `gorm:"size:256"`
	CreatedAt  time.Time `gorm:"index"`

	Tasks []RunTask `gorm:"foreignKey:RunID"`
	Teams []RunTeam `gorm:"foreignKey:RunID"`
}

// RunTask is one analyzed task stored with its run.
type RunTask struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	RunID         uint   `gorm:"not null;index"`
	Position      int    `gorm:"not null"`
	TaskName      string `gorm:"size:64;not null"`
	StartDate     time.Time
	EndDate       time.Time
	LaborHours    int
	MaterialCost  int
	EquipmentCost int
	AssignedTeam  string `gorm:"size:64;index"`
	TotalCost     int
	DurationDays  int
}

// RunTeam is one team summary row stored with its run.
type RunTeam struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	RunID        uint   `gorm:"not null;index"`
	AssignedTeam string `gorm:"size:64;not null"`
	LaborHours   int
	TotalCost    int
}
