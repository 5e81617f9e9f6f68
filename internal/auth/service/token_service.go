package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	apperrors "github.com/allisson/recommendations/internal/errors"
)

// userClaims mirrors the payload of the internal authorization token.
type userClaims struct {
	ID                 *int64 `json:"id"`
	Email              string `json:"email"`
	CompanyID          int64  `json:"company_id"`
	FirstName          string `json:"first_name"`
	LastName           string `json:"last_name"`
	HasFinancialAccess bool   `json:"has_financial_access"`
	jwt.RegisteredClaims
}

// tokenService implements TokenService with HS256 JWTs.
type tokenService struct {
	userKey     []byte
	internalKey []byte
	parser      *jwt.Parser
}

// NewTokenService creates a TokenService. userKey verifies caller tokens and internalKey
// signs the internal admin token.
func NewTokenService(userKey, internalKey string) TokenService {
	return &tokenService{
		userKey:     []byte(userKey),
		internalKey: []byte(internalKey),
		parser:      jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}
}

// ParseUser verifies token and maps its claims to a user.
func (t *tokenService) ParseUser(token string) (*authDomain.User, error) {
	var claims userClaims
	_, err := t.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return t.userKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", authDomain.ErrInvalidToken, err)
	}

	if claims.ID == nil {
		return nil, authDomain.ErrInvalidUser
	}

	return &authDomain.User{
		ID:                 *claims.ID,
		CompanyID:          claims.CompanyID,
		Email:              claims.Email,
		FirstName:          claims.FirstName,
		LastName:           claims.LastName,
		HasFinancialAccess: claims.HasFinancialAccess,
	}, nil
}

// IssueInternalToken signs an empty claim set with the internal key.
func (t *tokenService) IssueInternalToken() (string, error) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{}).SignedString(t.internalKey)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign internal token")
	}
	return token, nil
}
