package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver

	"github.com/SpynitterMina/DayWiseV2/internal/infrastructure/config"
)

// NewConnection opens the SQLite database and ensures the schema is up to
// date. The returned cleanup function closes the connection.
func NewConnection(cfg *config.Config) (*sql.DB, func(), error) {
	db, err := sql.Open("sqlite3", cfg.DatabaseDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	// A single local writer; more connections just invite SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	return db, func() { _ = db.Close() }, nil
}

// Migrate applies the schema, creating any missing tables and indexes.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
