package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	databaseMocks "github.com/allisson/recommendations/internal/database/mocks"
	"github.com/allisson/recommendations/internal/recommendation/domain"
	"github.com/allisson/recommendations/internal/recommendation/usecase"
	usecaseMocks "github.com/allisson/recommendations/internal/recommendation/usecase/mocks"
)

const txFunc = "func(context.Context) error"

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUser() *authDomain.User {
	return &authDomain.User{ID: 7, CompanyID: 261, Email: "jane@example.com", HasFinancialAccess: true}
}

func newRecommendation(id int64, status domain.Status) *domain.Recommendation {
	return &domain.Recommendation{
		ID:        id,
		AccountID: 261,
		JourneyID: 8110,
		Type:      domain.TypeBudget,
		Status:    status,
	}
}

func statusFilter(ids ...int64) domain.PlatformStatusFilter {
	return domain.PlatformStatusFilter{RecommendationIDs: append([]int64{}, ids...)}
}

type recommendationFixture struct {
	txManager          *databaseMocks.MockTxManager
	recommendationRepo *usecaseMocks.MockRecommendationRepository
	platformStatusRepo *usecaseMocks.MockPlatformStatusRepository
	useCase            usecase.RecommendationUseCase
}

func newRecommendationFixture() *recommendationFixture {
	f := &recommendationFixture{
		txManager:          &databaseMocks.MockTxManager{},
		recommendationRepo: &usecaseMocks.MockRecommendationRepository{},
		platformStatusRepo: &usecaseMocks.MockPlatformStatusRepository{},
	}
	f.useCase = usecase.NewRecommendationUseCase(
		f.txManager,
		f.recommendationRepo,
		f.platformStatusRepo,
		newTestLogger(),
	)
	return f
}

func (f *recommendationFixture) assertExpectations(t *testing.T) {
	f.txManager.AssertExpectations(t)
	f.recommendationRepo.AssertExpectations(t)
	f.platformStatusRepo.AssertExpectations(t)
}

func TestRecommendationUseCase_GetPage(t *testing.T) {
	ctx := context.Background()
	user := newTestUser()
	journeyID := int64(8110)
	query := domain.PageQuery{JourneyID: &journeyID, Page: 2, PageSize: 20, SortBy: domain.SortByStatusDate}
	filter := query.Filter(261)

	t.Run("assembles statuses and pages", func(t *testing.T) {
		f := newRecommendationFixture()
		recs := []*domain.Recommendation{
			newRecommendation(30, domain.StatusActive),
			newRecommendation(20, domain.StatusExpired),
		}
		statuses := []*domain.PlatformStatus{
			{ID: 1, RecommendationID: 30, Platform: "facebook", Data: []domain.PlatformStatusData{
				{ObjectID: "1", ObjectType: "campaign", Status: domain.PlatformItemPending},
			}},
			{ID: 3, RecommendationID: 30, Platform: "facebook", Data: []domain.PlatformStatusData{
				{ObjectID: "1", ObjectType: "campaign", Status: domain.PlatformItemSuccess},
			}},
			{ID: 2, RecommendationID: 30, Platform: "google", Data: []domain.PlatformStatusData{}},
		}

		f.txManager.On("WithConn", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		f.recommendationRepo.On("List", ctx, filter, domain.SortByStatusDate, 20, 20).Return(recs, nil).Once()
		f.recommendationRepo.On("Count", ctx, filter).Return(int64(41), nil).Once()
		f.platformStatusRepo.On("List", ctx, statusFilter(30, 20)).Return(statuses, nil).Once()

		page, err := f.useCase.GetPage(ctx, user, query)

		require.NoError(t, err)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 3, page.Pages)
		require.Len(t, page.Items, 2)

		first := page.Items[0]
		assert.Equal(t, int64(30), first.ID)
		require.Len(t, first.PlatformStatuses, 2)
		assert.Equal(t, int64(3), first.PlatformStatuses[0].ID)
		assert.Equal(t, int64(1), first.PlatformStatuses[1].ID)

		second := page.Items[1]
		assert.NotNil(t, second.PlatformStatuses)
		assert.Empty(t, second.PlatformStatuses)
		f.assertExpectations(t)
	})

	t.Run("empty page has one page", func(t *testing.T) {
		f := newRecommendationFixture()

		f.txManager.On("WithConn", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		f.recommendationRepo.On("List", ctx, filter, domain.SortByStatusDate, 20, 20).
			Return([]*domain.Recommendation{}, nil).
			Once()
		f.recommendationRepo.On("Count", ctx, filter).Return(int64(0), nil).Once()
		f.platformStatusRepo.On("List", ctx, statusFilter()).Return([]*domain.PlatformStatus{}, nil).Once()

		page, err := f.useCase.GetPage(ctx, user, query)

		require.NoError(t, err)
		assert.Equal(t, 1, page.Pages)
		assert.Empty(t, page.Items)
		f.assertExpectations(t)
	})

	t.Run("count error", func(t *testing.T) {
		f := newRecommendationFixture()

		f.txManager.On("WithConn", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		f.recommendationRepo.On("List", ctx, filter, domain.SortByStatusDate, 20, 20).
			Return([]*domain.Recommendation{}, nil).
			Once()
		f.recommendationRepo.On("Count", ctx, filter).Return(int64(0), assert.AnError).Once()

		page, err := f.useCase.GetPage(ctx, user, query)

		assert.Nil(t, page)
		assert.Equal(t, assert.AnError, err)
		f.platformStatusRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestRecommendationUseCase_GetPageState(t *testing.T) {
	ctx := context.Background()
	f := newRecommendationFixture()
	journeyID := int64(8110)

	f.recommendationRepo.On("ExistsActive", ctx, int64(261), &journeyID).Return(true, nil).Once()

	state, err := f.useCase.GetPageState(ctx, newTestUser(), &journeyID)

	require.NoError(t, err)
	assert.True(t, state.ActiveExists)
	f.assertExpectations(t)
}

func TestRecommendationUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("owned recommendation", func(t *testing.T) {
		f := newRecommendationFixture()
		rec := newRecommendation(15, domain.StatusActive)

		f.txManager.On("WithConn", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		f.recommendationRepo.On("Get", ctx, int64(15)).Return(rec, nil).Once()
		f.platformStatusRepo.On("List", ctx, statusFilter(15)).Return([]*domain.PlatformStatus{}, nil).Once()

		view, err := f.useCase.Get(ctx, newTestUser(), 15)

		require.NoError(t, err)
		assert.Same(t, rec, view.Recommendation)
		f.assertExpectations(t)
	})

	t.Run("other company is not found", func(t *testing.T) {
		f := newRecommendationFixture()
		rec := newRecommendation(15, domain.StatusActive)
		rec.AccountID = 999

		f.txManager.On("WithConn", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		f.recommendationRepo.On("Get", ctx, int64(15)).Return(rec, nil).Once()

		view, err := f.useCase.Get(ctx, newTestUser(), 15)

		assert.Nil(t, view)
		assert.ErrorIs(t, err, domain.ErrRecommendationNotFound)
		f.platformStatusRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("missing recommendation", func(t *testing.T) {
		f := newRecommendationFixture()

		f.txManager.On("WithConn", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		f.recommendationRepo.On("Get", ctx, int64(404)).Return(nil, domain.ErrRecommendationNotFound).Once()

		_, err := f.useCase.Get(ctx, newTestUser(), 404)

		assert.ErrorIs(t, err, domain.ErrRecommendationNotFound)
	})
}

func TestRecommendationUseCase_Accept(t *testing.T) {
	ctx := context.Background()
	user := newTestUser()

	acceptable := []domain.Status{domain.StatusActive, domain.StatusError, domain.StatusExpired}
	for _, status := range acceptable {
		t.Run("from "+status.String(), func(t *testing.T) {
			f := newRecommendationFixture()
			rec := newRecommendation(1, status)

			f.txManager.On("WithTx", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
			f.recommendationRepo.On("GetForUpdate", ctx, int64(1)).Return(rec, nil).Once()
			f.recommendationRepo.On("Update", ctx, int64(1), mock.MatchedBy(func(u domain.RecommendationUpdate) bool {
				return u.Status != nil && *u.Status == domain.StatusAccepting &&
					u.UserID != nil && *u.UserID == 7 &&
					u.DecisionTime != nil && u.Reason == nil
			})).Return(nil).Once()
			f.platformStatusRepo.On("List", ctx, statusFilter(1)).Return([]*domain.PlatformStatus{}, nil).Once()

			view, err := f.useCase.Accept(ctx, user, 1)

			require.NoError(t, err)
			assert.Equal(t, domain.StatusAccepting, view.Status)
			require.NotNil(t, view.UserID)
			assert.Equal(t, int64(7), *view.UserID)
			assert.NotNil(t, view.DecisionTime)
			f.assertExpectations(t)
		})
	}

	unchanged := []domain.Status{domain.StatusRejected, domain.StatusAccepting}
	for _, status := range unchanged {
		t.Run("keeps "+status.String(), func(t *testing.T) {
			f := newRecommendationFixture()
			rec := newRecommendation(1, status)

			f.txManager.On("WithTx", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
			f.recommendationRepo.On("GetForUpdate", ctx, int64(1)).Return(rec, nil).Once()
			f.platformStatusRepo.On("List", ctx, statusFilter(1)).Return([]*domain.PlatformStatus{}, nil).Once()

			view, err := f.useCase.Accept(ctx, user, 1)

			require.NoError(t, err)
			assert.Equal(t, status, view.Status)
			assert.Nil(t, view.DecisionTime)
			f.recommendationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("update error", func(t *testing.T) {
		f := newRecommendationFixture()

		f.txManager.On("WithTx", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		f.recommendationRepo.On("GetForUpdate", ctx, int64(1)).Return(newRecommendation(1, domain.StatusActive), nil).Once()
		f.recommendationRepo.On("Update", ctx, int64(1), mock.Anything).Return(assert.AnError).Once()

		view, err := f.useCase.Accept(ctx, user, 1)

		assert.Nil(t, view)
		assert.Equal(t, assert.AnError, err)
	})

	t.Run("other company is not found", func(t *testing.T) {
		f := newRecommendationFixture()
		rec := newRecommendation(1, domain.StatusActive)
		rec.AccountID = 1

		f.txManager.On("WithTx", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		f.recommendationRepo.On("GetForUpdate", ctx, int64(1)).Return(rec, nil).Once()

		_, err := f.useCase.Accept(ctx, user, 1)

		assert.ErrorIs(t, err, domain.ErrRecommendationNotFound)
		f.recommendationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRecommendationUseCase_Reject(t *testing.T) {
	ctx := context.Background()
	user := newTestUser()

	t.Run("empty reason is absent", func(t *testing.T) {
		f := newRecommendationFixture()
		empty := ""

		f.txManager.On("WithTx", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		f.recommendationRepo.On("GetForUpdate", ctx, int64(1)).Return(newRecommendation(1, domain.StatusActive), nil).Once()
		f.recommendationRepo.On("Update", ctx, int64(1), mock.MatchedBy(func(u domain.RecommendationUpdate) bool {
			return u.Status != nil && *u.Status == domain.StatusRejected && u.Reason == nil && u.DecisionTime != nil
		})).Return(nil).Once()
		f.platformStatusRepo.On("List", ctx, statusFilter(1)).Return([]*domain.PlatformStatus{}, nil).Once()

		view, err := f.useCase.Reject(ctx, user, 1, &empty)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, view.Status)
		assert.Nil(t, view.Reason)
		assert.NotNil(t, view.DecisionTime)
		f.assertExpectations(t)
	})

	t.Run("reason is stored", func(t *testing.T) {
		f := newRecommendationFixture()
		reason := "budget is frozen"

		f.txManager.On("WithTx", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		f.recommendationRepo.On("GetForUpdate", ctx, int64(1)).Return(newRecommendation(1, domain.StatusError), nil).Once()
		f.recommendationRepo.On("Update", ctx, int64(1), mock.MatchedBy(func(u domain.RecommendationUpdate) bool {
			return u.Reason != nil && *u.Reason == reason
		})).Return(nil).Once()
		f.platformStatusRepo.On("List", ctx, statusFilter(1)).Return([]*domain.PlatformStatus{}, nil).Once()

		view, err := f.useCase.Reject(ctx, user, 1, &reason)

		require.NoError(t, err)
		require.NotNil(t, view.Reason)
		assert.Equal(t, reason, *view.Reason)
		f.assertExpectations(t)
	})

	t.Run("decision already committed by another caller", func(t *testing.T) {
		f := newRecommendationFixture()

		f.txManager.On("WithTx", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		f.recommendationRepo.On("GetForUpdate", ctx, int64(1)).
			Return(newRecommendation(1, domain.StatusAccepting), nil).Once()
		f.platformStatusRepo.On("List", ctx, statusFilter(1)).Return([]*domain.PlatformStatus{}, nil).Once()

		view, err := f.useCase.Reject(ctx, user, 1, nil)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAccepting, view.Status)
		f.recommendationRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		f.recommendationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("expired cannot be rejected", func(t *testing.T) {
		f := newRecommendationFixture()

		f.txManager.On("WithTx", ctx, mock.AnythingOfType(txFunc)).Return(nil).Once()
		f.recommendationRepo.On("GetForUpdate", ctx, int64(1)).Return(newRecommendation(1, domain.StatusExpired), nil).Once()
		f.platformStatusRepo.On("List", ctx, statusFilter(1)).Return([]*domain.PlatformStatus{}, nil).Once()

		view, err := f.useCase.Reject(ctx, user, 1, nil)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusExpired, view.Status)
		f.recommendationRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}
