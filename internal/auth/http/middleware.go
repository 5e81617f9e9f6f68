package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/recommendations/internal/auth/service"
	apperrors "github.com/allisson/recommendations/internal/errors"
	"github.com/allisson/recommendations/internal/httputil"
)

// AuthenticationMiddleware authenticates callers through the X-Internal-Authorization header.
//
// The header carries an HS256 JWT whose claims describe the user. The request is rejected
// with 401 when the header is missing, the token cannot be decoded, the claims carry no
// user id or the user has no financial access. On success the user is stored in the
// request context and can be read with GetUser.
func AuthenticationMiddleware(tokenService authService.TokenService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(httputil.AuthorizationHeader)
		if token == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		user, err := tokenService.ParseUser(token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		if err := user.CheckAccess(); err != nil {
			logger.Debug("authentication failed: no financial access",
				slog.Int64("user_id", user.ID),
				slog.Int64("company_id", user.CompanyID))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))

		logger.Debug("authentication successful",
			slog.Int64("user_id", user.ID),
			slog.Int64("company_id", user.CompanyID))

		c.Next()
	}
}
