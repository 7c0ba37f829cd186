package testutil

import (
	"testing"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database with every model migrated.
// A single connection keeps the in-memory database alive and shared, so code running inside
// a transaction must use the transaction handle only.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormConfig := database.NewGormConfig(NewTestConfig())
	gormConfig.Logger = logger.Default.LogMode(logger.Silent) // Silent mode for tests

	db, err := gorm.Open(sqlite.Open(":memory:"), gormConfig)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		CleanupTestDB(t, db)
	})

	return db
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("Failed to get database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		t.Errorf("Failed to close database: %v", err)
	}
}

// MustCreate inserts fixtures or fails the test
func MustCreate(t *testing.T, db *gorm.DB, values ...interface{}) {
	t.Helper()

	for _, v := range values {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("Failed to create fixture %T: %v", v, err)
		}
	}
}
