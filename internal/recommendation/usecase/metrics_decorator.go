package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	"github.com/allisson/recommendations/internal/metrics"
	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// recommendationUseCaseWithMetrics decorates RecommendationUseCase with metrics instrumentation.
type recommendationUseCaseWithMetrics struct {
	next    RecommendationUseCase
	metrics metrics.BusinessMetrics
}

// NewRecommendationUseCaseWithMetrics wraps a RecommendationUseCase with metrics recording.
func NewRecommendationUseCaseWithMetrics(
	useCase RecommendationUseCase,
	m metrics.BusinessMetrics,
) RecommendationUseCase {
	return &recommendationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// GetPage records metrics for recommendation listing.
func (r *recommendationUseCaseWithMetrics) GetPage(
	ctx context.Context,
	user *authDomain.User,
	query domain.PageQuery,
) (*domain.RecommendationPage, error) {
	start := time.Now()
	page, err := r.next.GetPage(ctx, user, query)
	metrics.Track(ctx, r.metrics, metrics.DomainRecommendations, "recommendation_page", start, err)
	return page, err
}

// GetPageState records metrics for the listing state.
func (r *recommendationUseCaseWithMetrics) GetPageState(
	ctx context.Context,
	user *authDomain.User,
	journeyID *int64,
) (*domain.RecommendationPageState, error) {
	start := time.Now()
	state, err := r.next.GetPageState(ctx, user, journeyID)
	metrics.Track(ctx, r.metrics, metrics.DomainRecommendations, "recommendation_page_state", start, err)
	return state, err
}

// Get records metrics for single recommendation reads.
func (r *recommendationUseCaseWithMetrics) Get(
	ctx context.Context,
	user *authDomain.User,
	id int64,
) (*domain.RecommendationView, error) {
	start := time.Now()
	view, err := r.next.Get(ctx, user, id)
	metrics.Track(ctx, r.metrics, metrics.DomainRecommendations, "recommendation_get", start, err)
	return view, err
}

// Accept records metrics for accept decisions.
func (r *recommendationUseCaseWithMetrics) Accept(
	ctx context.Context,
	user *authDomain.User,
	id int64,
) (*domain.RecommendationView, error) {
	start := time.Now()
	view, err := r.next.Accept(ctx, user, id)
	metrics.Track(ctx, r.metrics, metrics.DomainRecommendations, "recommendation_accept", start, err)
	return view, err
}

// Reject records metrics for reject decisions.
func (r *recommendationUseCaseWithMetrics) Reject(
	ctx context.Context,
	user *authDomain.User,
	id int64,
	reason *string,
) (*domain.RecommendationView, error) {
	start := time.Now()
	view, err := r.next.Reject(ctx, user, id, reason)
	metrics.Track(ctx, r.metrics, metrics.DomainRecommendations, "recommendation_reject", start, err)
	return view, err
}

// ingestionUseCaseWithMetrics decorates IngestionUseCase with metrics instrumentation.
type ingestionUseCaseWithMetrics struct {
	next    IngestionUseCase
	metrics metrics.BusinessMetrics
}

// NewIngestionUseCaseWithMetrics wraps an IngestionUseCase with metrics recording.
func NewIngestionUseCaseWithMetrics(useCase IngestionUseCase, m metrics.BusinessMetrics) IngestionUseCase {
	return &ingestionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// ConsumeRecommendation records metrics for recommendation ingestion.
func (i *ingestionUseCaseWithMetrics) ConsumeRecommendation(
	ctx context.Context,
	input *domain.RecommendationInput,
) error {
	start := time.Now()
	err := i.next.ConsumeRecommendation(ctx, input)
	metrics.Track(ctx, i.metrics, metrics.DomainIngestion, "recommendation_ingest", start, err)
	return err
}

// ConsumePlatformStatus records metrics for platform status ingestion.
func (i *ingestionUseCaseWithMetrics) ConsumePlatformStatus(
	ctx context.Context,
	input *domain.PlatformStatusInput,
) error {
	start := time.Now()
	err := i.next.ConsumePlatformStatus(ctx, input)
	metrics.Track(ctx, i.metrics, metrics.DomainIngestion, "platform_status_ingest", start, err)
	return err
}

// ConsumeGoalUpdate records metrics for goal update ingestion.
func (i *ingestionUseCaseWithMetrics) ConsumeGoalUpdate(
	ctx context.Context,
	input *domain.GoalUpdateInput,
) (*domain.GoalUpdate, error) {
	start := time.Now()
	goalUpdate, err := i.next.ConsumeGoalUpdate(ctx, input)
	metrics.Track(ctx, i.metrics, metrics.DomainIngestion, "goal_update_ingest", start, err)
	return goalUpdate, err
}
