package config

import (
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pilinks/logger"
	"pilinks/models"
)

// DatabaseConfigured rejects empty and placeholder values so a half-filled
// deployment template degrades to the in-memory store instead of crashing.
func DatabaseConfigured(dsn string) bool {
	return dsn != "" &&
		!strings.Contains(dsn, "placeholder") &&
		(strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host="))
}

// InitDB opens the Postgres connection described by DATABASE_URL and runs
// migrations. It returns nil when the store is unconfigured or unreachable,
// which switches the application to mock mode.
func InitDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if !DatabaseConfigured(dsn) {
		return nil
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.WithError(err).Warn("database unreachable, falling back to in-memory store")
		return nil
	}

	if err := db.AutoMigrate(&models.User{}, &models.Post{}); err != nil {
		logger.Log.WithError(err).Fatal("database migration failed")
	}

	return db
}
