// Package mocks provides mock implementations of the recommendation use cases and their
// repositories for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// MockRecommendationRepository is a mock implementation of RecommendationRepository.
type MockRecommendationRepository struct {
	mock.Mock
}

// Create mocks the Create method. The id is assigned from the second return value when set.
func (m *MockRecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	args := m.Called(ctx, rec)
	if len(args) > 1 {
		rec.ID = args.Get(1).(int64)
	}
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockRecommendationRepository) Get(ctx context.Context, id int64) (*domain.Recommendation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recommendation), args.Error(1)
}

// GetForUpdate mocks the GetForUpdate method.
func (m *MockRecommendationRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Recommendation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recommendation), args.Error(1)
}

// GetByUUID mocks the GetByUUID method.
func (m *MockRecommendationRepository) GetByUUID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Recommendation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recommendation), args.Error(1)
}

// GetLastIDForJourney mocks the GetLastIDForJourney method.
func (m *MockRecommendationRepository) GetLastIDForJourney(ctx context.Context, journeyID int64) (int64, error) {
	args := m.Called(ctx, journeyID)
	return args.Get(0).(int64), args.Error(1)
}

// List mocks the List method.
func (m *MockRecommendationRepository) List(
	ctx context.Context,
	filter domain.ListFilter,
	sortBy domain.SortBy,
	offset, limit int,
) ([]*domain.Recommendation, error) {
	args := m.Called(ctx, filter, sortBy, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Recommendation), args.Error(1)
}

// Count mocks the Count method.
func (m *MockRecommendationRepository) Count(ctx context.Context, filter domain.ListFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// ExistsActive mocks the ExistsActive method.
func (m *MockRecommendationRepository) ExistsActive(
	ctx context.Context,
	accountID int64,
	journeyID *int64,
) (bool, error) {
	args := m.Called(ctx, accountID, journeyID)
	return args.Bool(0), args.Error(1)
}

// Update mocks the Update method.
func (m *MockRecommendationRepository) Update(
	ctx context.Context,
	id int64,
	update domain.RecommendationUpdate,
) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

// ExpireActive mocks the ExpireActive method.
func (m *MockRecommendationRepository) ExpireActive(ctx context.Context, accountID, journeyID int64) (int64, error) {
	args := m.Called(ctx, accountID, journeyID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlatformStatusRepository is a mock implementation of PlatformStatusRepository.
type MockPlatformStatusRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockPlatformStatusRepository) Create(ctx context.Context, status *domain.PlatformStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

// List mocks the List method.
func (m *MockPlatformStatusRepository) List(
	ctx context.Context,
	filter domain.PlatformStatusFilter,
) ([]*domain.PlatformStatus, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.PlatformStatus), args.Error(1)
}

// MockGoalUpdateRepository is a mock implementation of GoalUpdateRepository.
type MockGoalUpdateRepository struct {
	mock.Mock
}

// Create mocks the Create method. The id is assigned from the second return value when set.
func (m *MockGoalUpdateRepository) Create(ctx context.Context, goalUpdate *domain.GoalUpdate) error {
	args := m.Called(ctx, goalUpdate)
	if len(args) > 1 {
		goalUpdate.ID = args.Get(1).(int64)
	}
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockGoalUpdateRepository) Get(ctx context.Context, id int64) (*domain.GoalUpdate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalUpdate), args.Error(1)
}

// Update mocks the Update method.
func (m *MockGoalUpdateRepository) Update(ctx context.Context, id, journeyID int64) (*domain.GoalUpdate, error) {
	args := m.Called(ctx, id, journeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalUpdate), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockGoalUpdateRepository) Delete(ctx context.Context, id int64) (*domain.GoalUpdate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalUpdate), args.Error(1)
}

// MockRecommendationUseCase is a mock implementation of RecommendationUseCase.
type MockRecommendationUseCase struct {
	mock.Mock
}

// GetPage mocks the GetPage method.
func (m *MockRecommendationUseCase) GetPage(
	ctx context.Context,
	user *authDomain.User,
	query domain.PageQuery,
) (*domain.RecommendationPage, error) {
	args := m.Called(ctx, user, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecommendationPage), args.Error(1)
}

// GetPageState mocks the GetPageState method.
func (m *MockRecommendationUseCase) GetPageState(
	ctx context.Context,
	user *authDomain.User,
	journeyID *int64,
) (*domain.RecommendationPageState, error) {
	args := m.Called(ctx, user, journeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecommendationPageState), args.Error(1)
}

// Get mocks the Get method.
func (m *MockRecommendationUseCase) Get(
	ctx context.Context,
	user *authDomain.User,
	id int64,
) (*domain.RecommendationView, error) {
	args := m.Called(ctx, user, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecommendationView), args.Error(1)
}

// Accept mocks the Accept method.
func (m *MockRecommendationUseCase) Accept(
	ctx context.Context,
	user *authDomain.User,
	id int64,
) (*domain.RecommendationView, error) {
	args := m.Called(ctx, user, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecommendationView), args.Error(1)
}

// Reject mocks the Reject method.
func (m *MockRecommendationUseCase) Reject(
	ctx context.Context,
	user *authDomain.User,
	id int64,
	reason *string,
) (*domain.RecommendationView, error) {
	args := m.Called(ctx, user, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecommendationView), args.Error(1)
}

// MockIngestionUseCase is a mock implementation of IngestionUseCase.
type MockIngestionUseCase struct {
	mock.Mock
}

// ConsumeRecommendation mocks the ConsumeRecommendation method.
func (m *MockIngestionUseCase) ConsumeRecommendation(ctx context.Context, input *domain.RecommendationInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

// ConsumePlatformStatus mocks the ConsumePlatformStatus method.
func (m *MockIngestionUseCase) ConsumePlatformStatus(ctx context.Context, input *domain.PlatformStatusInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

// ConsumeGoalUpdate mocks the ConsumeGoalUpdate method.
func (m *MockIngestionUseCase) ConsumeGoalUpdate(
	ctx context.Context,
	input *domain.GoalUpdateInput,
) (*domain.GoalUpdate, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalUpdate), args.Error(1)
}

// MockGoalUpdateUseCase is a mock implementation of GoalUpdateUseCase.
type MockGoalUpdateUseCase struct {
	mock.Mock
}

// Get mocks the Get method.
func (m *MockGoalUpdateUseCase) Get(ctx context.Context, id int64) (*domain.GoalUpdate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalUpdate), args.Error(1)
}

// Update mocks the Update method.
func (m *MockGoalUpdateUseCase) Update(ctx context.Context, id, journeyID int64) (*domain.GoalUpdate, error) {
	args := m.Called(ctx, id, journeyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalUpdate), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockGoalUpdateUseCase) Delete(ctx context.Context, id int64) (*domain.GoalUpdate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalUpdate), args.Error(1)
}
