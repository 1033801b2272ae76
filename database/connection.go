package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Ananth-NQI/tokopesan-backend/internal/config"
	"github.com/Ananth-NQI/tokopesan-backend/internal/models"
)

// Connect opens the postgres database backing the local inventory
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.InstanceConnectionName != "" {
		log.Printf("Connecting to Cloud SQL via socket: %s", cfg.InstanceConnectionName)
	} else {
		log.Printf("Connecting to PostgreSQL at %s:%d", cfg.Host, cfg.Port)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("✅ Database connected successfully!")
	return db, nil
}

// Migrate creates or updates the inventory tables
func Migrate(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("✅ Database migrations completed!")
	return nil
}

// Ping reports whether the database answers
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
