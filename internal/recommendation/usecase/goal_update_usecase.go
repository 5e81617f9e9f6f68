package usecase

import (
	"context"

	"github.com/allisson/recommendations/internal/database"
	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// goalUpdateUseCase implements GoalUpdateUseCase.
type goalUpdateUseCase struct {
	txManager      database.TxManager
	goalUpdateRepo GoalUpdateRepository
}

// NewGoalUpdateUseCase creates a GoalUpdateUseCase.
func NewGoalUpdateUseCase(txManager database.TxManager, goalUpdateRepo GoalUpdateRepository) GoalUpdateUseCase {
	return &goalUpdateUseCase{
		txManager:      txManager,
		goalUpdateRepo: goalUpdateRepo,
	}
}

func (g *goalUpdateUseCase) Get(ctx context.Context, id int64) (*domain.GoalUpdate, error) {
	goalUpdate, err := g.goalUpdateRepo.Get(ctx, id)
	return orNotFound(goalUpdate, err)
}

func (g *goalUpdateUseCase) Update(ctx context.Context, id, journeyID int64) (*domain.GoalUpdate, error) {
	var goalUpdate *domain.GoalUpdate
	err := g.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		goalUpdate, err = orNotFound(g.goalUpdateRepo.Update(txCtx, id, journeyID))
		return err
	})
	if err != nil {
		return nil, err
	}
	return goalUpdate, nil
}

func (g *goalUpdateUseCase) Delete(ctx context.Context, id int64) (*domain.GoalUpdate, error) {
	var goalUpdate *domain.GoalUpdate
	err := g.txManager.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		goalUpdate, err = orNotFound(g.goalUpdateRepo.Delete(txCtx, id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return goalUpdate, nil
}

func orNotFound(goalUpdate *domain.GoalUpdate, err error) (*domain.GoalUpdate, error) {
	if err != nil {
		return nil, err
	}
	if goalUpdate == nil {
		return nil, domain.ErrGoalUpdateNotFound
	}
	return goalUpdate, nil
}
