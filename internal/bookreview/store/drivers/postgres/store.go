// Package postgres opens a PostgreSQL database through a pgx connection
// pool exposed as database/sql.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/store/drivers/sqldb"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const uniqueViolation = "23505"

// NewStore connects to url (postgres://...) and verifies the connection.
func NewStore(ctx context.Context, url string) (*sqldb.Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	db := stdlib.OpenDBFromPool(pool)

	return sqldb.New(db, sqldb.Config{
		Dialect:           sqldb.Postgres,
		IsUniqueViolation: isUniqueViolation,
		Migrate:           migrateUp,
		OnClose:           pool.Close,
	}), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
