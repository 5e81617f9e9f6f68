package usecase

import (
	"context"
	"log/slog"
	"time"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	"github.com/allisson/recommendations/internal/database"
	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// recommendationUseCase implements RecommendationUseCase.
type recommendationUseCase struct {
	txManager          database.TxManager
	recommendationRepo RecommendationRepository
	assembler          statusAssembler
	logger             *slog.Logger
	now                func() time.Time
}

// NewRecommendationUseCase creates a RecommendationUseCase.
func NewRecommendationUseCase(
	txManager database.TxManager,
	recommendationRepo RecommendationRepository,
	platformStatusRepo PlatformStatusRepository,
	logger *slog.Logger,
) RecommendationUseCase {
	return &recommendationUseCase{
		txManager:          txManager,
		recommendationRepo: recommendationRepo,
		assembler:          statusAssembler{platformStatusRepo: platformStatusRepo},
		logger:             logger,
		now:                func() time.Time { return time.Now().UTC() },
	}
}

// GetPage lists and counts with the same filter inside one pinned connection.
func (r *recommendationUseCase) GetPage(
	ctx context.Context,
	user *authDomain.User,
	query domain.PageQuery,
) (*domain.RecommendationPage, error) {
	var page *domain.RecommendationPage
	err := r.txManager.WithConn(ctx, func(connCtx context.Context) error {
		filter := query.Filter(user.CompanyID)

		recs, err := r.recommendationRepo.List(connCtx, filter, query.SortBy, query.Offset(), query.PageSize)
		if err != nil {
			return err
		}

		total, err := r.recommendationRepo.Count(connCtx, filter)
		if err != nil {
			return err
		}

		items, err := r.assembler.attach(connCtx, recs)
		if err != nil {
			return err
		}

		page = &domain.RecommendationPage{
			Page:  query.Page,
			Pages: domain.TotalPages(query.PageSize, total),
			Items: items,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return page, nil
}

func (r *recommendationUseCase) GetPageState(
	ctx context.Context,
	user *authDomain.User,
	journeyID *int64,
) (*domain.RecommendationPageState, error) {
	exists, err := r.recommendationRepo.ExistsActive(ctx, user.CompanyID, journeyID)
	if err != nil {
		return nil, err
	}
	return &domain.RecommendationPageState{ActiveExists: exists}, nil
}

func (r *recommendationUseCase) Get(
	ctx context.Context,
	user *authDomain.User,
	id int64,
) (*domain.RecommendationView, error) {
	var view *domain.RecommendationView
	err := r.txManager.WithConn(ctx, func(connCtx context.Context) error {
		rec, err := r.getOwned(connCtx, user, id, false)
		if err != nil {
			return err
		}

		view, err = r.assembler.attachOne(connCtx, rec)
		return err
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (r *recommendationUseCase) Accept(
	ctx context.Context,
	user *authDomain.User,
	id int64,
) (*domain.RecommendationView, error) {
	return r.decide(ctx, user, id, func(rec *domain.Recommendation) *domain.RecommendationUpdate {
		if !rec.Status.CanAccept() {
			return nil
		}
		status := domain.StatusAccepting
		decisionTime := r.now()
		return &domain.RecommendationUpdate{
			Status:       &status,
			UserID:       &user.ID,
			DecisionTime: &decisionTime,
		}
	})
}

func (r *recommendationUseCase) Reject(
	ctx context.Context,
	user *authDomain.User,
	id int64,
	reason *string,
) (*domain.RecommendationView, error) {
	if reason != nil && *reason == "" {
		reason = nil
	}

	return r.decide(ctx, user, id, func(rec *domain.Recommendation) *domain.RecommendationUpdate {
		if !rec.Status.CanReject() {
			return nil
		}
		status := domain.StatusRejected
		decisionTime := r.now()
		return &domain.RecommendationUpdate{
			Status:       &status,
			UserID:       &user.ID,
			DecisionTime: &decisionTime,
			Reason:       reason,
		}
	})
}

// decide locks the recommendation inside a transaction and writes the update returned by
// transition. A nil update leaves the recommendation unchanged. Concurrent decisions and
// ingestion expiring the same row are serialized on the row lock, so transition always sees
// the committed status.
func (r *recommendationUseCase) decide(
	ctx context.Context,
	user *authDomain.User,
	id int64,
	transition func(rec *domain.Recommendation) *domain.RecommendationUpdate,
) (*domain.RecommendationView, error) {
	var view *domain.RecommendationView
	err := r.txManager.WithTx(ctx, func(txCtx context.Context) error {
		rec, err := r.getOwned(txCtx, user, id, true)
		if err != nil {
			return err
		}

		if update := transition(rec); update != nil {
			if err := r.recommendationRepo.Update(txCtx, rec.ID, *update); err != nil {
				return err
			}
			rec.Apply(*update)
		}

		view, err = r.assembler.attachOne(txCtx, rec)
		return err
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// getOwned hides recommendations of other companies behind ErrRecommendationNotFound.
// With lock set the row stays locked until the surrounding transaction ends.
func (r *recommendationUseCase) getOwned(
	ctx context.Context,
	user *authDomain.User,
	id int64,
	lock bool,
) (*domain.Recommendation, error) {
	load := r.recommendationRepo.Get
	if lock {
		load = r.recommendationRepo.GetForUpdate
	}

	rec, err := load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !rec.OwnedBy(user.CompanyID) {
		r.logger.Debug("recommendation belongs to another company",
			slog.Int64("recommendation_id", rec.ID),
			slog.Int64("recommendation_account_id", rec.AccountID),
			slog.Int64("user_company_id", user.CompanyID))
		return nil, domain.ErrRecommendationNotFound
	}

	return rec, nil
}
