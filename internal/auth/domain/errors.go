package domain

import (
	"github.com/allisson/recommendations/internal/errors"
)

// Authentication errors.
var (
	// ErrInvalidToken indicates the authorization token could not be decoded or verified.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "can't decode authorization token")

	// ErrInvalidUser indicates the token claims do not describe a user.
	ErrInvalidUser = errors.Wrap(errors.ErrUnauthorized, "can't parse user from token")

	// ErrNoFinancialAccess indicates the user may not see financial data.
	ErrNoFinancialAccess = errors.Wrap(errors.ErrUnauthorized, "user doesn't have financial access")

	// ErrCompanyNotFound indicates the authentication service has no such company.
	ErrCompanyNotFound = errors.Wrap(errors.ErrNotFound, "company not found")
)
