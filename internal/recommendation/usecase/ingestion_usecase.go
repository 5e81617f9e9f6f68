package usecase

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/allisson/recommendations/internal/database"
	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// ingestionUseCase implements IngestionUseCase.
type ingestionUseCase struct {
	txManager          database.TxManager
	recommendationRepo RecommendationRepository
	platformStatusRepo PlatformStatusRepository
	goalUpdateRepo     GoalUpdateRepository
	logger             *slog.Logger
}

// NewIngestionUseCase creates an IngestionUseCase.
func NewIngestionUseCase(
	txManager database.TxManager,
	recommendationRepo RecommendationRepository,
	platformStatusRepo PlatformStatusRepository,
	goalUpdateRepo GoalUpdateRepository,
	logger *slog.Logger,
) IngestionUseCase {
	return &ingestionUseCase{
		txManager:          txManager,
		recommendationRepo: recommendationRepo,
		platformStatusRepo: platformStatusRepo,
		goalUpdateRepo:     goalUpdateRepo,
		logger:             logger,
	}
}

// ConsumeRecommendation expires and inserts in one serializable transaction so that
// concurrent consumers never leave two live recommendations for the same journey.
func (i *ingestionUseCase) ConsumeRecommendation(ctx context.Context, input *domain.RecommendationInput) error {
	return i.txManager.WithConn(ctx, func(connCtx context.Context) error {
		_, err := i.recommendationRepo.GetByUUID(connCtx, input.UUID)
		if err == nil {
			i.logger.Info("skip duplicated recommendation", slog.String("uuid", input.UUID.String()))
			return nil
		}
		if !errors.Is(err, domain.ErrRecommendationNotFound) {
			return err
		}

		rec := input.Recommendation()
		opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
		err = i.txManager.WithTxOptions(connCtx, opts, func(txCtx context.Context) error {
			expired, err := i.recommendationRepo.ExpireActive(txCtx, rec.AccountID, rec.JourneyID)
			if err != nil {
				return err
			}
			if expired > 0 {
				i.logger.Debug("expired live recommendations",
					slog.Int64("account_id", rec.AccountID),
					slog.Int64("journey_id", rec.JourneyID),
					slog.Int64("expired", expired))
			}
			return i.recommendationRepo.Create(txCtx, rec)
		})
		if err != nil {
			return err
		}

		i.logger.Info("recommendation stored",
			slog.Int64("id", rec.ID),
			slog.String("uuid", rec.UUID.String()),
			slog.Int64("account_id", rec.AccountID),
			slog.Int64("journey_id", rec.JourneyID),
			slog.String("type", rec.Type))
		return nil
	})
}

func (i *ingestionUseCase) ConsumePlatformStatus(ctx context.Context, input *domain.PlatformStatusInput) error {
	if !input.HasRecommendationID() {
		i.logger.Warn("skip platform status without recommendation id", slog.String("platform", input.Platform))
		return nil
	}

	status := input.PlatformStatus()
	return i.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return i.platformStatusRepo.Create(txCtx, status)
	})
}

func (i *ingestionUseCase) ConsumeGoalUpdate(
	ctx context.Context,
	input *domain.GoalUpdateInput,
) (*domain.GoalUpdate, error) {
	goalUpdate := input.GoalUpdate()
	err := i.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return i.goalUpdateRepo.Create(txCtx, goalUpdate)
	})
	if err != nil {
		return nil, err
	}

	lastID, err := i.recommendationRepo.GetLastIDForJourney(ctx, goalUpdate.JourneyID)
	switch {
	case err == nil:
		i.logger.Debug("goal update stored",
			slog.Int64("id", goalUpdate.ID),
			slog.Int64("journey_id", goalUpdate.JourneyID),
			slog.Int64("last_recommendation_id", lastID))
	case errors.Is(err, domain.ErrRecommendationNotFound):
		i.logger.Debug("goal update stored for journey without recommendations",
			slog.Int64("id", goalUpdate.ID),
			slog.Int64("journey_id", goalUpdate.JourneyID))
	default:
		i.logger.Warn("failed to read last recommendation of journey",
			slog.Int64("journey_id", goalUpdate.JourneyID),
			slog.Any("error", err))
	}

	return goalUpdate, nil
}
