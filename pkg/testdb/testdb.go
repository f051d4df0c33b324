// Package testdb opens throwaway in-memory SQLite databases for tests.
package testdb

import (
	"testing"

	"biblioteca/pkg/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a migrated in-memory database that is closed when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db := Open(t)
	if err := db.AutoMigrate(&models.Author{}, &models.Book{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// Open returns an empty in-memory database without any schema.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get test database instance: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}
