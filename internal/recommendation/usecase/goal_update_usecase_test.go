package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	databaseMocks "github.com/allisson/recommendations/internal/database/mocks"
	"github.com/allisson/recommendations/internal/recommendation/domain"
	"github.com/allisson/recommendations/internal/recommendation/usecase"
	usecaseMocks "github.com/allisson/recommendations/internal/recommendation/usecase/mocks"
)

func TestGoalUpdateUseCase(t *testing.T) {
	ctx := context.Background()
	goalUpdate := &domain.GoalUpdate{
		ID:        9,
		JourneyID: 8110,
		UpdatedAt: time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
	}

	t.Run("Get", func(t *testing.T) {
		repo := &usecaseMocks.MockGoalUpdateRepository{}
		uc := usecase.NewGoalUpdateUseCase(&databaseMocks.MockTxManager{}, repo)
		repo.On("Get", ctx, int64(9)).Return(goalUpdate, nil).Once()

		got, err := uc.Get(ctx, 9)

		require.NoError(t, err)
		assert.Equal(t, goalUpdate, got)
		repo.AssertExpectations(t)
	})

	t.Run("Get unknown id", func(t *testing.T) {
		repo := &usecaseMocks.MockGoalUpdateRepository{}
		uc := usecase.NewGoalUpdateUseCase(&databaseMocks.MockTxManager{}, repo)
		repo.On("Get", ctx, int64(404)).Return(nil, nil).Once()

		got, err := uc.Get(ctx, 404)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrGoalUpdateNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		txManager := &databaseMocks.MockTxManager{}
		repo := &usecaseMocks.MockGoalUpdateRepository{}
		uc := usecase.NewGoalUpdateUseCase(txManager, repo)
		updated := &domain.GoalUpdate{ID: 9, JourneyID: 42, UpdatedAt: goalUpdate.UpdatedAt}
		txManager.On("WithTx", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		repo.On("Update", ctx, int64(9), int64(42)).Return(updated, nil).Once()

		got, err := uc.Update(ctx, 9, 42)

		require.NoError(t, err)
		assert.Equal(t, int64(42), got.JourneyID)
		txManager.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("Update unknown id", func(t *testing.T) {
		txManager := &databaseMocks.MockTxManager{}
		repo := &usecaseMocks.MockGoalUpdateRepository{}
		uc := usecase.NewGoalUpdateUseCase(txManager, repo)
		txManager.On("WithTx", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		repo.On("Update", ctx, int64(404), int64(42)).Return(nil, nil).Once()

		got, err := uc.Update(ctx, 404, 42)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrGoalUpdateNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		txManager := &databaseMocks.MockTxManager{}
		repo := &usecaseMocks.MockGoalUpdateRepository{}
		uc := usecase.NewGoalUpdateUseCase(txManager, repo)
		txManager.On("WithTx", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		repo.On("Delete", ctx, int64(9)).Return(goalUpdate, nil).Once()

		got, err := uc.Delete(ctx, 9)

		require.NoError(t, err)
		assert.Equal(t, goalUpdate, got)
	})

	t.Run("Delete repository error", func(t *testing.T) {
		txManager := &databaseMocks.MockTxManager{}
		repo := &usecaseMocks.MockGoalUpdateRepository{}
		uc := usecase.NewGoalUpdateUseCase(txManager, repo)
		txManager.On("WithTx", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		repo.On("Delete", ctx, int64(9)).Return(nil, assert.AnError).Once()

		got, err := uc.Delete(ctx, 9)

		assert.Nil(t, got)
		assert.Equal(t, assert.AnError, err)
	})
}
