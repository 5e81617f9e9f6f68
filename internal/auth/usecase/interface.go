// Package usecase defines the account lookups served on behalf of the authentication service.
package usecase

import (
	"context"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
)

// AuthClient is the remote authentication service.
type AuthClient interface {
	GetUsers(ctx context.Context, query authDomain.UsersQuery) ([]authDomain.AuthUser, error)
	GetCompany(ctx context.Context, companyID int64) (*authDomain.Company, error)
}

// CompanyCache stores company reference data for a bounded time.
type CompanyCache interface {
	// Get returns nil without error on a miss.
	Get(ctx context.Context, companyID int64) (*authDomain.Company, error)
	Set(ctx context.Context, company *authDomain.Company) error
}

// AccountUseCase resolves users and companies through the authentication service.
type AccountUseCase interface {
	// GetUsers lists the users of a company.
	GetUsers(ctx context.Context, query authDomain.UsersQuery) ([]authDomain.AuthUser, error)

	// GetCompany returns a company, served from cache while the entry is fresh.
	// Returns ErrCompanyNotFound when the authentication service does not know it.
	GetCompany(ctx context.Context, companyID int64) (*authDomain.Company, error)
}
