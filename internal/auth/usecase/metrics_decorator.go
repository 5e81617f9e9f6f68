package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	"github.com/allisson/recommendations/internal/metrics"
)

// accountUseCaseWithMetrics decorates AccountUseCase with metrics instrumentation.
type accountUseCaseWithMetrics struct {
	next    AccountUseCase
	metrics metrics.BusinessMetrics
}

// NewAccountUseCaseWithMetrics wraps an AccountUseCase with metrics recording.
func NewAccountUseCaseWithMetrics(useCase AccountUseCase, m metrics.BusinessMetrics) AccountUseCase {
	return &accountUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// GetUsers records metrics for user listing.
func (a *accountUseCaseWithMetrics) GetUsers(
	ctx context.Context,
	query authDomain.UsersQuery,
) ([]authDomain.AuthUser, error) {
	start := time.Now()
	users, err := a.next.GetUsers(ctx, query)
	metrics.Track(ctx, a.metrics, metrics.DomainAuth, "users_get", start, err)
	return users, err
}

// GetCompany records metrics for company lookups.
func (a *accountUseCaseWithMetrics) GetCompany(ctx context.Context, companyID int64) (*authDomain.Company, error) {
	start := time.Now()
	company, err := a.next.GetCompany(ctx, companyID)
	metrics.Track(ctx, a.metrics, metrics.DomainAuth, "company_get", start, err)
	return company, err
}
