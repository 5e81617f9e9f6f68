// Package mocks provides mock implementations of the auth use case dependencies for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
)

// MockAuthClient is a mock implementation of AuthClient.
type MockAuthClient struct {
	mock.Mock
}

// GetUsers mocks the GetUsers method.
func (m *MockAuthClient) GetUsers(ctx context.Context, query authDomain.UsersQuery) ([]authDomain.AuthUser, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]authDomain.AuthUser), args.Error(1)
}

// GetCompany mocks the GetCompany method.
func (m *MockAuthClient) GetCompany(ctx context.Context, companyID int64) (*authDomain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Company), args.Error(1)
}

// MockCompanyCache is a mock implementation of CompanyCache.
type MockCompanyCache struct {
	mock.Mock
}

// Get mocks the Get method.
func (m *MockCompanyCache) Get(ctx context.Context, companyID int64) (*authDomain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Company), args.Error(1)
}

// Set mocks the Set method.
func (m *MockCompanyCache) Set(ctx context.Context, company *authDomain.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

// MockAccountUseCase is a mock implementation of AccountUseCase.
type MockAccountUseCase struct {
	mock.Mock
}

// GetUsers mocks the GetUsers method.
func (m *MockAccountUseCase) GetUsers(
	ctx context.Context,
	query authDomain.UsersQuery,
) ([]authDomain.AuthUser, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]authDomain.AuthUser), args.Error(1)
}

// GetCompany mocks the GetCompany method.
func (m *MockAccountUseCase) GetCompany(ctx context.Context, companyID int64) (*authDomain.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Company), args.Error(1)
}
