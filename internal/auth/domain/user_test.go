package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/recommendations/internal/errors"
)

func TestUser_CheckAccess(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr error
	}{
		{
			name: "financial access granted",
			user: User{ID: 1, CompanyID: 261, HasFinancialAccess: true},
		},
		{
			name:    "financial access missing",
			user:    User{ID: 1, CompanyID: 261},
			wantErr: ErrNoFinancialAccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.CheckAccess()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		})
	}
}

func TestErrors_WrapSentinels(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidToken, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, ErrInvalidUser, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, ErrCompanyNotFound, apperrors.ErrNotFound)
}
