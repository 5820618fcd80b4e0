// Package sqldb implements store.Store on database/sql. The sqlite and
// postgres drivers open the connection and supply dialect specifics.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
)

// Config carries the driver specifics.
type Config struct {
	Dialect Dialect

	// IsUniqueViolation reports whether err is a unique constraint failure.
	IsUniqueViolation func(error) bool

	// Migrate applies the driver's embedded migrations to db.
	Migrate func(db *sql.DB) error

	// OnClose runs after the database handle is closed.
	OnClose func()

	// Now overrides the clock used for created_at/updated_at.
	Now func() time.Time
}

type Store struct {
	db  *sql.DB
	cfg Config
}

var _ store.Store = (*Store)(nil)

func New(db *sql.DB, cfg Config) *Store {
	if cfg.IsUniqueViolation == nil {
		cfg.IsUniqueViolation = func(error) bool { return false }
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Store{db: db, cfg: cfg}
}

// DB exposes the handle for driver-level tasks such as migrations.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error {
	err := s.db.Close()
	if s.cfg.OnClose != nil {
		s.cfg.OnClose()
	}
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) ApplyMigrations() error {
	if s.cfg.Migrate == nil {
		return errors.New("sqldb: no migrations configured")
	}
	if err := s.cfg.Migrate(s.db); err != nil {
		return fmt.Errorf("sqldb: migrate %s: %w", s.cfg.Dialect, err)
	}
	return nil
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, conn: s.conn(tx)}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users                 { return &usersRepo{s.conn(s.db)} }
func (s *Store) Books() store.Books                 { return &booksRepo{s.conn(s.db)} }
func (s *Store) Reviews() store.Reviews             { return &reviewsRepo{s.conn(s.db)} }
func (s *Store) Tags() store.Tags                   { return &tagsRepo{s.conn(s.db)} }
func (s *Store) OneTimeTokens() store.OneTimeTokens { return &tokensRepo{s.conn(s.db)} }

func (s *Store) conn(q querier) conn {
	return conn{q: q, cfg: s.cfg}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// conn binds a querier to the dialect so repositories can be shared between
// the plain store and transactions.
type conn struct {
	q   querier
	cfg Config
}

func (c conn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := c.q.ExecContext(ctx, c.cfg.Dialect.Rebind(query), args...)
	if err != nil {
		return nil, c.mapWriteErr(err)
	}
	return res, nil
}

// execOne is exec for statements that must touch exactly one row.
func (c conn) execOne(ctx context.Context, query string, args ...any) error {
	res, err := c.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (c conn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.q.QueryContext(ctx, c.cfg.Dialect.Rebind(query), args...)
}

func (c conn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return c.q.QueryRowContext(ctx, c.cfg.Dialect.Rebind(query), args...)
}

func (c conn) now() int64 { return c.cfg.Now().Unix() }

func (c conn) mapWriteErr(err error) error {
	if c.cfg.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %w", store.ErrAlreadyExists, err)
	}
	return err
}

// collect drains rows through scan.
func collect[T any](rows *sql.Rows, err error, scan func(scanner) (T, error)) ([]T, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func fromUnix(n int64) time.Time {
	return time.Unix(n, 0).UTC()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func page(p store.Page) (int, int) {
	if p.Limit <= 0 {
		p.Limit = store.DefaultPage.Limit
	}
	return p.Limit, max(p.Offset, 0)
}
