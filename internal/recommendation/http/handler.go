// Package http provides the HTTP handlers of the recommendation API. Every handler runs
// behind the authentication middleware and acts on behalf of the authenticated user.
package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	authHTTP "github.com/allisson/recommendations/internal/auth/http"
	"github.com/allisson/recommendations/internal/httputil"
	"github.com/allisson/recommendations/internal/recommendation/http/dto"
	recommendationUseCase "github.com/allisson/recommendations/internal/recommendation/usecase"
	customValidation "github.com/allisson/recommendations/internal/validation"
)

// RecommendationHandler handles HTTP requests for recommendation reads and decisions.
type RecommendationHandler struct {
	recommendationUseCase recommendationUseCase.RecommendationUseCase
	logger                *slog.Logger
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(
	recommendationUseCase recommendationUseCase.RecommendationUseCase,
	logger *slog.Logger,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationUseCase: recommendationUseCase,
		logger:                logger,
	}
}

// ListHandler lists one page of the user's recommendations.
// GET /list?journey_id&page&page_size&status&date_from&date_to&sort_by
func (h *RecommendationHandler) ListHandler(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}

	page, pageSize, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.ListRecommendationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.recommendationUseCase.GetPage(c.Request.Context(), user, req.ToPageQuery(page, pageSize))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecommendationPageToResponse(result))
}

// StateHandler reports whether the user has an ACTIVE recommendation.
// GET /list/state?journey_id
func (h *RecommendationHandler) StateHandler(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}

	var req dto.PageStateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	state, err := h.recommendationUseCase.GetPageState(c.Request.Context(), user, req.JourneyIDValue())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPageStateToResponse(state))
}

// GetHandler returns one recommendation.
// GET /:id
func (h *RecommendationHandler) GetHandler(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	id, ok := h.recommendationID(c)
	if !ok {
		return
	}

	view, err := h.recommendationUseCase.Get(c.Request.Context(), user, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecommendationToResponse(view))
}

// AcceptHandler accepts a recommendation.
// POST /:id/accept
func (h *RecommendationHandler) AcceptHandler(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	id, ok := h.recommendationID(c)
	if !ok {
		return
	}

	view, err := h.recommendationUseCase.Accept(c.Request.Context(), user, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecommendationToResponse(view))
}

// RejectHandler rejects a recommendation with an optional reason.
// POST /:id/reject with body {"reason": "..."}; an empty body carries no reason.
func (h *RecommendationHandler) RejectHandler(c *gin.Context) {
	user, ok := h.user(c)
	if !ok {
		return
	}
	id, ok := h.recommendationID(c)
	if !ok {
		return
	}

	var req dto.RejectRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	view, err := h.recommendationUseCase.Reject(c.Request.Context(), user, id, req.NormalizedReason())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecommendationToResponse(view))
}

// user returns the authenticated user, answering 401 when the middleware did not set one.
func (h *RecommendationHandler) user(c *gin.Context) (*authDomain.User, bool) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrInvalidUser, h.logger)
		return nil, false
	}
	return user, true
}

func (h *RecommendationHandler) recommendationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid id parameter: must be a positive integer"),
			h.logger,
		)
		return 0, false
	}
	return id, true
}
