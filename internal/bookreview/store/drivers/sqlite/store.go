// Package sqlite opens the embedded SQLite database used for single-node
// deployments and tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/store/drivers/sqldb"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// NewStore opens dsn, which may be a file path, a file: URI or ":memory:".
func NewStore(dsn string) (*sqldb.Store, error) {
	memory := strings.Contains(dsn, ":memory:")
	if !memory && !strings.Contains(dsn, "_pragma=") {
		// Pragmas in the DSN apply to every pooled connection.
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// An in-memory database lives and dies with its connection.
	if memory {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return sqldb.New(db, sqldb.Config{
		Dialect:           sqldb.SQLite,
		IsUniqueViolation: isUniqueViolation,
		Migrate:           migrateUp,
	}), nil
}

func isUniqueViolation(err error) bool {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
