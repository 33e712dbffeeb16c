package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"daylog/models"
)

// InitDB opens the Postgres connection and migrates the schema. The
// handle is returned, not stashed in a package global, so callers wire
// it into services explicitly.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the tables. Split out so tests can run it
// against their own database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.DailyEntry{},
		&models.Meal{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
