// Package httputil maps application errors to JSON responses and parses shared query parameters.
package httputil

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/recommendations/internal/errors"
)

// AuthorizationHeader carries the internal JWT issued by the gateway.
const AuthorizationHeader = "X-Internal-Authorization"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// errorMapping pairs a sentinel with its response. An empty message echoes the error text.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorMappings is checked in order; unmatched errors are internal.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
	{apperrors.ErrConflict, http.StatusConflict, "conflict", "A conflict occurred with existing data"},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, "invalid_input", ""},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized", "Authentication is required"},
	{apperrors.ErrForbidden, http.StatusForbidden, "forbidden", "You don't have permission to access this resource"},
}

var internalError = errorMapping{
	status:  http.StatusInternalServerError,
	code:    "internal_error",
	message: "An internal error occurred",
}

func mapError(err error) (int, ErrorResponse) {
	mapping := internalError
	for _, m := range errorMappings {
		if apperrors.Is(err, m.target) {
			mapping = m
			break
		}
	}

	message := mapping.message
	if message == "" {
		message = err.Error()
	}
	return mapping.status, ErrorResponse{Error: mapping.code, Message: message}
}

// HandleErrorGin writes the response mapped from err. Internal errors never expose their
// text. Caller mistakes are logged at warn and everything else at error.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	status, response := mapError(err)
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logFailure(c, logger, level, "request failed", err,
		slog.Int("status_code", status),
		slog.String("error_code", response.Error),
	)

	c.JSON(status, response)
}

// HandleBadRequestGin writes 400 for malformed parameters or bodies.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	logFailure(c, logger, slog.LevelWarn, "bad request", err)
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: err.Error()})
}

// HandleValidationErrorGin writes 422 for query parameters that fail validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	logFailure(c, logger, slog.LevelWarn, "validation failed", err)
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation_error", Message: err.Error()})
}

func logFailure(c *gin.Context, logger *slog.Logger, level slog.Level, msg string, err error, attrs ...slog.Attr) {
	if logger == nil {
		return
	}
	attrs = append(attrs, slog.Any("error", err))
	ctx := context.Background()
	if c.Request != nil {
		ctx = c.Request.Context()
		if id := requestid.Get(c); id != "" {
			attrs = append(attrs, slog.String("request_id", id))
		}
	}
	logger.LogAttrs(ctx, level, msg, attrs...)
}
