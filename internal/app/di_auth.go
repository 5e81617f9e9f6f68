package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	authClient "github.com/allisson/recommendations/internal/auth/client"
	authHTTP "github.com/allisson/recommendations/internal/auth/http"
	authRepository "github.com/allisson/recommendations/internal/auth/repository"
	authService "github.com/allisson/recommendations/internal/auth/service"
	authUseCase "github.com/allisson/recommendations/internal/auth/usecase"
)

// TokenService returns the token service for authentication operations.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService(c.config.JWTSecretKey, c.config.AuthInternalTokenKey)
	})
	return c.tokenService
}

// CompanyCache returns the redis backed company cache.
func (c *Container) CompanyCache() authUseCase.CompanyCache {
	c.companyCacheInit.Do(func() {
		c.companyCache = authRepository.NewRedisCompanyCache(c.RedisClient(), c.config.CompanyCacheTTL)
	})
	return c.companyCache
}

// AccountUseCase returns the account use case.
func (c *Container) AccountUseCase() (authUseCase.AccountUseCase, error) {
	var err error
	c.accountUseCaseInit.Do(func() {
		c.accountUseCase, err = c.initAccountUseCase()
		if err != nil {
			c.initErrors["accountUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

// AuthenticationMiddleware returns the middleware that decodes the internal authorization header.
func (c *Container) AuthenticationMiddleware() gin.HandlerFunc {
	return authHTTP.AuthenticationMiddleware(c.TokenService(), c.Logger())
}

// RateLimitMiddleware returns the per user rate limiter, or nil when rate limiting is disabled.
func (c *Container) RateLimitMiddleware() gin.HandlerFunc {
	if !c.config.RateLimitEnabled {
		return nil
	}
	return authHTTP.RateLimitMiddleware(c.config.RateLimitRequestsPerSec, c.config.RateLimitBurst, c.Logger())
}

// initAccountUseCase creates the account use case with all its dependencies.
func (c *Container) initAccountUseCase() (authUseCase.AccountUseCase, error) {
	client := authClient.New(c.config.AuthAPIURL, c.config.AuthAPITimeout, c.TokenService())

	baseUseCase := authUseCase.NewAccountUseCase(client, c.CompanyCache(), c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for account use case: %w", err)
		}
		return authUseCase.NewAccountUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}
