package sqldb

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/bookreview/internal/bookreview/store"
)

type txStore struct {
	tx   *sql.Tx
	conn conn
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the caller commits or rolls back and the DB stays open.
func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(context.Context) error { return nil }

// Nested transactions are not supported.
func (t *txStore) Tx(context.Context) (store.Tx, error) { return nil, sql.ErrTxDone }

func (t *txStore) WithTx(context.Context, func(store.Tx) error) error { return sql.ErrTxDone }

// ApplyMigrations is a no-op inside a transaction.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) Users() store.Users                 { return &usersRepo{t.conn} }
func (t *txStore) Books() store.Books                 { return &booksRepo{t.conn} }
func (t *txStore) Reviews() store.Reviews             { return &reviewsRepo{t.conn} }
func (t *txStore) Tags() store.Tags                   { return &tagsRepo{t.conn} }
func (t *txStore) OneTimeTokens() store.OneTimeTokens { return &tokensRepo{t.conn} }
