package db

import (
	"fmt"

	"github.com/zulandar/foreman/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the ledger models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.Run{},
		&models.RunTask{},
		&models.RunTeam{},
	}
}

// AutoMigrate creates or updates all ledger tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
