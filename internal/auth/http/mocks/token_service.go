// Package mocks provides mock implementations for testing HTTP middleware.
package mocks

import (
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
)

// MockTokenService is a mock implementation of TokenService for testing.
type MockTokenService struct {
	mock.Mock
}

// ParseUser mocks the ParseUser method of TokenService.
func (m *MockTokenService) ParseUser(token string) (*authDomain.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.User), args.Error(1)
}

// IssueInternalToken mocks the IssueInternalToken method of TokenService.
func (m *MockTokenService) IssueInternalToken() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
