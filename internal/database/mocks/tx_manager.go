// Package mocks provides mock implementations of the database package for testing.
package mocks

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager.
// When the expectation returns a nil error, fn is executed with the caller's context.
type MockTxManager struct {
	mock.Mock
}

// WithConn mocks the WithConn method.
func (m *MockTxManager) WithConn(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// WithTx mocks the WithTx method.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// WithTxOptions mocks the WithTxOptions method.
func (m *MockTxManager) WithTxOptions(
	ctx context.Context,
	opts *sql.TxOptions,
	fn func(ctx context.Context) error,
) error {
	args := m.Called(ctx, opts, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}
