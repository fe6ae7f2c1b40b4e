// Package database opens the relational store backing the durable order ledger.
package database

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Open connects to the configured database. Supported dialects are
// "sqlite3" and "postgres".
func Open(dialect, dsn string) (*gorm.DB, error) {
	switch dialect {
	case "sqlite3", "postgres":
	default:
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}

	db, err := gorm.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.LogMode(false)

	// Configure connection pool
	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	return db, nil
}
