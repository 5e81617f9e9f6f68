package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	"github.com/allisson/recommendations/internal/auth/http/mocks"
	"github.com/allisson/recommendations/internal/httputil"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthRouter(tokenService *mocks.MockTokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(AuthenticationMiddleware(tokenService, newTestLogger()))
	router.GET("/test", func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": user.ID, "company_id": user.CompanyID})
	})
	return router
}

func TestAuthenticationMiddleware_Success(t *testing.T) {
	tokenService := &mocks.MockTokenService{}
	user := &authDomain.User{ID: 8110, CompanyID: 261, HasFinancialAccess: true}
	tokenService.On("ParseUser", "valid-token").Return(user, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(httputil.AuthorizationHeader, "valid-token")
	w := httptest.NewRecorder()
	newAuthRouter(tokenService).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]int64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(8110), body["user_id"])
	assert.Equal(t, int64(261), body["company_id"])
	tokenService.AssertExpectations(t)
}

func TestAuthenticationMiddleware_Failures(t *testing.T) {
	tests := []struct {
		name   string
		header string
		setup  func(m *mocks.MockTokenService)
	}{
		{
			name:   "missing header",
			header: "",
			setup:  func(m *mocks.MockTokenService) {},
		},
		{
			name:   "undecodable token",
			header: "garbage",
			setup: func(m *mocks.MockTokenService) {
				m.On("ParseUser", "garbage").Return(nil, authDomain.ErrInvalidToken).Once()
			},
		},
		{
			name:   "claims without user id",
			header: "anonymous",
			setup: func(m *mocks.MockTokenService) {
				m.On("ParseUser", "anonymous").Return(nil, authDomain.ErrInvalidUser).Once()
			},
		},
		{
			name:   "no financial access",
			header: "restricted",
			setup: func(m *mocks.MockTokenService) {
				m.On("ParseUser", "restricted").
					Return(&authDomain.User{ID: 1, CompanyID: 261}, nil).
					Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenService := &mocks.MockTokenService{}
			tt.setup(tokenService)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set(httputil.AuthorizationHeader, tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(tokenService).ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "unauthorized")
			tokenService.AssertExpectations(t)
		})
	}
}

func TestGetUser_WithoutUser(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	user, ok := GetUser(req.Context())
	assert.False(t, ok)
	assert.Nil(t, user)

	user, ok = GetUser(WithUser(req.Context(), nil))
	assert.False(t, ok)
	assert.Nil(t, user)
}
