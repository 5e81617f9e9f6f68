// Package service provides the token handling used to authenticate API callers and to
// call the authentication service on behalf of this one.
package service

import (
	authDomain "github.com/allisson/recommendations/internal/auth/domain"
)

// TokenService decodes internal authorization tokens and issues the internal admin token.
type TokenService interface {
	// ParseUser verifies an HS256 token and builds the user from its claims.
	// Returns ErrInvalidToken when the signature or encoding is wrong and ErrInvalidUser
	// when the claims carry no user id.
	ParseUser(token string) (*authDomain.User, error)

	// IssueInternalToken signs the empty-payload token sent to the authentication service.
	IssueInternalToken() (string, error)
}
