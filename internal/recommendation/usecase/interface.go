// Package usecase implements the recommendation lifecycle: paginated reads scoped to the
// caller's company, accept and reject decisions, and ingestion of stream events.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// RecommendationRepository persists recommendations.
type RecommendationRepository interface {
	Create(ctx context.Context, rec *domain.Recommendation) error
	Get(ctx context.Context, id int64) (*domain.Recommendation, error)
	// GetForUpdate is Get holding a row lock; it must run inside a transaction.
	GetForUpdate(ctx context.Context, id int64) (*domain.Recommendation, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*domain.Recommendation, error)
	GetLastIDForJourney(ctx context.Context, journeyID int64) (int64, error)
	List(
		ctx context.Context,
		filter domain.ListFilter,
		sortBy domain.SortBy,
		offset, limit int,
	) ([]*domain.Recommendation, error)
	Count(ctx context.Context, filter domain.ListFilter) (int64, error)
	ExistsActive(ctx context.Context, accountID int64, journeyID *int64) (bool, error)
	Update(ctx context.Context, id int64, update domain.RecommendationUpdate) error
	ExpireActive(ctx context.Context, accountID, journeyID int64) (int64, error)
}

// PlatformStatusRepository persists platform execution feedback.
type PlatformStatusRepository interface {
	Create(ctx context.Context, status *domain.PlatformStatus) error
	List(ctx context.Context, filter domain.PlatformStatusFilter) ([]*domain.PlatformStatus, error)
}

// GoalUpdateRepository persists goal updates. Get, Update and Delete return nil without
// error when the id is unknown.
type GoalUpdateRepository interface {
	Create(ctx context.Context, goalUpdate *domain.GoalUpdate) error
	Get(ctx context.Context, id int64) (*domain.GoalUpdate, error)
	Update(ctx context.Context, id, journeyID int64) (*domain.GoalUpdate, error)
	Delete(ctx context.Context, id int64) (*domain.GoalUpdate, error)
}

// RecommendationUseCase serves recommendations to authenticated users.
// Every operation is scoped to user.CompanyID; recommendations of other companies are
// reported as ErrRecommendationNotFound.
type RecommendationUseCase interface {
	// GetPage lists one page of recommendations with their platform statuses.
	GetPage(ctx context.Context, user *authDomain.User, query domain.PageQuery) (*domain.RecommendationPage, error)

	// GetPageState reports whether an ACTIVE recommendation exists, optionally within one journey.
	GetPageState(
		ctx context.Context,
		user *authDomain.User,
		journeyID *int64,
	) (*domain.RecommendationPageState, error)

	// Get returns a single recommendation.
	Get(ctx context.Context, user *authDomain.User, id int64) (*domain.RecommendationView, error)

	// Accept moves the recommendation to ACCEPTING. Recommendations that cannot be
	// accepted are returned unchanged.
	Accept(ctx context.Context, user *authDomain.User, id int64) (*domain.RecommendationView, error)

	// Reject moves the recommendation to REJECTED. An empty reason is treated as absent and
	// an absent reason leaves the stored one untouched.
	Reject(
		ctx context.Context,
		user *authDomain.User,
		id int64,
		reason *string,
	) (*domain.RecommendationView, error)
}

// IngestionUseCase stores the events read from the stream.
type IngestionUseCase interface {
	// ConsumeRecommendation stores a new ACTIVE recommendation and expires the live ones of
	// the same account journey. A uuid that is already stored is ignored.
	ConsumeRecommendation(ctx context.Context, input *domain.RecommendationInput) error

	// ConsumePlatformStatus stores platform feedback. Events without a recommendation id are ignored.
	ConsumePlatformStatus(ctx context.Context, input *domain.PlatformStatusInput) error

	// ConsumeGoalUpdate stores a goal update.
	ConsumeGoalUpdate(ctx context.Context, input *domain.GoalUpdateInput) (*domain.GoalUpdate, error)
}

// GoalUpdateUseCase maintains goal updates from the command line.
type GoalUpdateUseCase interface {
	Get(ctx context.Context, id int64) (*domain.GoalUpdate, error)
	Update(ctx context.Context, id, journeyID int64) (*domain.GoalUpdate, error)
	Delete(ctx context.Context, id int64) (*domain.GoalUpdate, error)
}
