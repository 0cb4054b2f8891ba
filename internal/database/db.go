package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Open connects to the database and migrates the collections table.
// driver is "sqlite" or "postgres".
func Open(driver, dsn string) (*gorm.DB, error) {
	dialect := driver
	if driver == "sqlite" {
		dialect = "sqlite3"
	}
	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", driver, err)
	}
	if dialect == "sqlite3" {
		// one connection so ":memory:" databases are shared and writes serialize
		db.DB().SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&collectionRecord{}).Error; err != nil {
		db.Close()
		return nil, fmt.Errorf("database: migrate: %w", err)
	}
	return db, nil
}
