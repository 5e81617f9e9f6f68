package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// txKey is a context key type for storing database transactions.
type txKey struct{}

// connKey is a context key type for storing a pinned connection.
type connKey struct{}

// Querier represents a database query executor (*sql.DB, *sql.Conn or *sql.Tx).
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager scopes units of work.
//
// WithConn pins a single pooled connection to the context (a read session) and releases
// it when fn returns. WithTx opens a transaction that commits when fn returns nil and
// rolls back otherwise. Both are re-entrant: nested calls reuse whatever the context
// already carries, so one logical operation never holds two independent transactions.
type TxManager interface {
	WithConn(ctx context.Context, fn func(ctx context.Context) error) error
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	WithTxOptions(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error
}

// sqlTxManager implements TxManager for SQL databases.
type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager creates a new TxManager for the given database.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

// WithConn executes fn with a dedicated connection bound to the context.
func (m *sqlTxManager) WithConn(ctx context.Context, fn func(ctx context.Context) error) error {
	if hasTx(ctx) || hasConn(ctx) {
		return fn(ctx)
	}

	conn, err := m.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()

	return fn(context.WithValue(ctx, connKey{}, conn))
}

// WithTx executes fn within a database transaction using the driver default isolation.
func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.WithTxOptions(ctx, nil, fn)
}

// WithTxOptions executes fn within a database transaction opened with opts.
// When the context already carries a transaction, fn joins it and opts are ignored.
func (m *sqlTxManager) WithTxOptions(
	ctx context.Context,
	opts *sql.TxOptions,
	fn func(ctx context.Context) error,
) (err error) {
	if hasTx(ctx) {
		return fn(ctx)
	}

	var tx *sql.Tx
	if conn, ok := ctx.Value(connKey{}).(*sql.Conn); ok {
		tx, err = conn.BeginTx(ctx, opts)
	} else {
		tx, err = m.db.BeginTx(ctx, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTx returns the transaction carried by ctx, else the pinned connection, else db.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	if conn, ok := ctx.Value(connKey{}).(*sql.Conn); ok {
		return conn
	}
	return db
}

func hasTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*sql.Tx)
	return ok
}

func hasConn(ctx context.Context) bool {
	_, ok := ctx.Value(connKey{}).(*sql.Conn)
	return ok
}
