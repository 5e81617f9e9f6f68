package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	authHTTP "github.com/allisson/recommendations/internal/auth/http"
	"github.com/allisson/recommendations/internal/recommendation/domain"
	"github.com/allisson/recommendations/internal/recommendation/http/dto"
	"github.com/allisson/recommendations/internal/recommendation/usecase/mocks"
)

var testUser = &authDomain.User{ID: 7, CompanyID: 261, HasFinancialAccess: true}

// setupTestRouter mounts the handler behind a middleware that authenticates testUser.
func setupTestRouter(t *testing.T, authenticated bool) (*gin.Engine, *mocks.MockRecommendationUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := &mocks.MockRecommendationUseCase{}
	t.Cleanup(func() { mockUseCase.AssertExpectations(t) })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewRecommendationHandler(mockUseCase, logger)

	router := gin.New()
	if authenticated {
		router.Use(func(c *gin.Context) {
			c.Request = c.Request.WithContext(authHTTP.WithUser(c.Request.Context(), testUser))
			c.Next()
		})
	}
	router.GET("/list", handler.ListHandler)
	router.GET("/list/state", handler.StateHandler)
	router.GET("/:id", handler.GetHandler)
	router.POST("/:id/accept", handler.AcceptHandler)
	router.POST("/:id/reject", handler.RejectHandler)

	return router, mockUseCase
}

func doRequest(router *gin.Engine, method, target string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, body)
	router.ServeHTTP(w, req)
	return w
}

func newTestView(status domain.Status) *domain.RecommendationView {
	return &domain.RecommendationView{
		Recommendation: &domain.Recommendation{
			ID:           15,
			UUID:         uuid.MustParse("8c7ba0e1-3f0a-4b8e-9d5c-2a1b0c9d8e7f"),
			AccountID:    261,
			JourneyID:    8110,
			Type:         domain.TypeBudget,
			Currency:     "USD",
			CreationDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Status:       status,
		},
		PlatformStatuses: []*domain.PlatformStatus{},
	}
}

func TestRecommendationHandler_ListHandler(t *testing.T) {
	t.Run("Success_Defaults", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t, true)

		expectedQuery := domain.PageQuery{Page: 1, PageSize: 20, SortBy: domain.SortByStatusDate}
		page := &domain.RecommendationPage{
			Page:  1,
			Pages: 1,
			Items: []*domain.RecommendationView{newTestView(domain.StatusActive)},
		}
		mockUseCase.On("GetPage", mock.Anything, testUser, expectedQuery).Return(page, nil).Once()

		w := doRequest(router, http.MethodGet, "/list", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.RecommendationPageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 1, response.Pages)
		require.Len(t, response.Items, 1)
		assert.Equal(t, int64(15), response.Items[0].ID)
	})

	t.Run("Success_Filters", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t, true)

		mockUseCase.On("GetPage", mock.Anything, testUser, mock.MatchedBy(func(q domain.PageQuery) bool {
			return q.Page == 2 && q.PageSize == 50 &&
				q.JourneyID != nil && *q.JourneyID == 8110 &&
				q.Status != nil && *q.Status == domain.StatusExpired &&
				q.DateFrom != nil && q.DateTo != nil &&
				q.SortBy == domain.SortByDate
		})).Return(&domain.RecommendationPage{Page: 2, Pages: 2}, nil).Once()

		w := doRequest(
			router,
			http.MethodGet,
			"/list?page=2&page_size=50&journey_id=8110&status=EXPIRED&date_from=2024-03-01&date_to=2024-03-31&sort_by=date",
			nil,
		)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_InvalidPageSize", func(t *testing.T) {
		router, _ := setupTestRouter(t, true)

		w := doRequest(router, http.MethodGet, "/list?page_size=101", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_InvalidStatus", func(t *testing.T) {
		router, _ := setupTestRouter(t, true)

		w := doRequest(router, http.MethodGet, "/list?status=UNKNOWN", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_Unauthenticated", func(t *testing.T) {
		router, _ := setupTestRouter(t, false)

		w := doRequest(router, http.MethodGet, "/list", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRecommendationHandler_StateHandler(t *testing.T) {
	router, mockUseCase := setupTestRouter(t, true)

	journeyID := int64(8110)
	mockUseCase.On("GetPageState", mock.Anything, testUser, &journeyID).
		Return(&domain.RecommendationPageState{ActiveExists: true}, nil).
		Once()

	w := doRequest(router, http.MethodGet, "/list/state?journey_id=8110", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"active_exists": true}`, w.Body.String())
}

func TestRecommendationHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t, true)
		mockUseCase.On("Get", mock.Anything, testUser, int64(15)).Return(newTestView(domain.StatusActive), nil).Once()

		w := doRequest(router, http.MethodGet, "/15", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var response dto.RecommendationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "ACTIVE", response.Status)
		assert.Equal(t, "8c7ba0e1-3f0a-4b8e-9d5c-2a1b0c9d8e7f", response.UUID)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t, true)
		mockUseCase.On("Get", mock.Anything, testUser, int64(16)).Return(nil, domain.ErrRecommendationNotFound).Once()

		w := doRequest(router, http.MethodGet, "/16", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		router, _ := setupTestRouter(t, true)

		w := doRequest(router, http.MethodGet, "/abc", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestRecommendationHandler_AcceptHandler(t *testing.T) {
	router, mockUseCase := setupTestRouter(t, true)
	mockUseCase.On("Accept", mock.Anything, testUser, int64(15)).Return(newTestView(domain.StatusAccepting), nil).Once()

	w := doRequest(router, http.MethodPost, "/15/accept", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var response dto.RecommendationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ACCEPTING", response.Status)
}

func TestRecommendationHandler_RejectHandler(t *testing.T) {
	t.Run("Success_WithReason", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t, true)
		reason := "budget is frozen"
		mockUseCase.On("Reject", mock.Anything, testUser, int64(15), &reason).
			Return(newTestView(domain.StatusRejected), nil).
			Once()

		w := doRequest(router, http.MethodPost, "/15/reject", bytes.NewBufferString(`{"reason": "budget is frozen"}`))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Success_EmptyReason", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t, true)
		mockUseCase.On("Reject", mock.Anything, testUser, int64(15), (*string)(nil)).
			Return(newTestView(domain.StatusRejected), nil).
			Once()

		w := doRequest(router, http.MethodPost, "/15/reject", bytes.NewBufferString(`{"reason": ""}`))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Success_EmptyBody", func(t *testing.T) {
		router, mockUseCase := setupTestRouter(t, true)
		mockUseCase.On("Reject", mock.Anything, testUser, int64(15), (*string)(nil)).
			Return(newTestView(domain.StatusRejected), nil).
			Once()

		w := doRequest(router, http.MethodPost, "/15/reject", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Error_MalformedBody", func(t *testing.T) {
		router, _ := setupTestRouter(t, true)

		w := doRequest(router, http.MethodPost, "/15/reject", bytes.NewBufferString(`{"reason":`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
