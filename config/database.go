package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"atelier-api/models"
)

// Connect opens the database for the given configuration and migrates the
// schema. With no DATABASE_URL the store lives in an in-memory SQLite
// database and disappears on restart, which is the intended mode for this
// mock backend; a PostgreSQL URL switches drivers the same way the rest of
// the deployment tooling expects.
func Connect(cfg *Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.DatabaseURL != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Println("Database connection established (postgres)")
	} else {
		db, err = gorm.Open(sqlite.Open(":memory:"), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open in-memory database: %w", err)
		}
		// Each sqlite :memory: connection is its own database, so the
		// pool must stay at a single connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
		log.Println("Database connection established (sqlite :memory:)")
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate auto-migrates the domain models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Customer{}, &models.Order{}, &models.OrderItem{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
