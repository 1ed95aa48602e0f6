// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"blog/internal/db"
)

// DefaultCategories are seeded into every test database, IDs 1..n in order.
var DefaultCategories = []string{"Programming", "Science", "Travel"}

// New returns a migrated in-memory database with roles and DefaultCategories seeded.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// a single connection keeps the in-memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb, false); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.SeedReference(gdb, DefaultCategories); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return gdb
}
