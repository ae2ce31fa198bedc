package database

import (
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the upload history database at the given path and runs AutoMigrate.
// Exits the process on failure (unrecoverable at startup).
func New(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("database: failed to open %s: %v", path, err)
	}

	// SQLite serializes writers anyway, and ":memory:" is per connection.
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Upload{}); err != nil {
		log.Fatalf("database: migration failed: %v", err)
	}

	return db
}
