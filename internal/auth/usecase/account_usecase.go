package usecase

import (
	"context"
	"log/slog"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
)

// accountUseCase implements AccountUseCase with a cache-aside company lookup.
// Cache failures are logged and never fail a lookup.
type accountUseCase struct {
	client AuthClient
	cache  CompanyCache
	logger *slog.Logger
}

// NewAccountUseCase creates an AccountUseCase.
func NewAccountUseCase(client AuthClient, cache CompanyCache, logger *slog.Logger) AccountUseCase {
	return &accountUseCase{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

func (a *accountUseCase) GetUsers(
	ctx context.Context,
	query authDomain.UsersQuery,
) ([]authDomain.AuthUser, error) {
	return a.client.GetUsers(ctx, query)
}

func (a *accountUseCase) GetCompany(ctx context.Context, companyID int64) (*authDomain.Company, error) {
	company, err := a.cache.Get(ctx, companyID)
	if err != nil {
		a.logger.Warn("company cache lookup failed",
			slog.Int64("company_id", companyID),
			slog.Any("error", err))
	}
	if company != nil {
		return company, nil
	}

	company, err = a.client.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if err := a.cache.Set(ctx, company); err != nil {
		a.logger.Warn("company cache store failed",
			slog.Int64("company_id", companyID),
			slog.Any("error", err))
	}

	return company, nil
}
