package database

import (
	"fmt"

	gormadapter "github.com/casbin/gorm-adapter/v3"
	"github.com/you/elearnauth/internal/infrastructure/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open creates a new database connection
func Open(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	return gorm.Open(postgres.Open(dsn), config)
}

// AutoMigrate creates the accounts table and the casbin policy table
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBAccount{}); err != nil {
		return fmt.Errorf("failed to migrate accounts table: %w", err)
	}

	// the adapter creates casbin_rule on construction
	if _, err := gormadapter.NewAdapterByDB(db); err != nil {
		return fmt.Errorf("failed to initialize Casbin GORM adapter: %w", err)
	}
	return nil
}
