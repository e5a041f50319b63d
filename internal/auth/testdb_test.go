package auth

import (
	"path/filepath"
	"testing"

	"github.com/myutami16/camp-store/internal/config"
	"github.com/myutami16/camp-store/internal/database"

	"gorm.io/gorm"
)

// setupTestDB opens an isolated sqlite database under t.TempDir.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Path:    filepath.Join(t.TempDir(), "auth_test.db"),
		LogMode: false,
	}

	db, err := database.Init(cfg)
	if err != nil {
		t.Fatalf("Init test database failed: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}
