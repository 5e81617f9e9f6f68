package domain

import (
	"github.com/allisson/recommendations/internal/errors"
)

// Recommendation-specific error definitions.
var (
	// ErrRecommendationNotFound indicates the recommendation does not exist or belongs to another company.
	ErrRecommendationNotFound = errors.Wrap(errors.ErrNotFound, "recommendation not found")

	// ErrGoalUpdateNotFound indicates the goal update does not exist.
	ErrGoalUpdateNotFound = errors.Wrap(errors.ErrNotFound, "goal update not found")

	// ErrInvalidQuery indicates a filtered read was attempted without any filter.
	ErrInvalidQuery = errors.Wrap(errors.ErrInvalidInput, "provide at least one filter")

	// ErrMalformedEvent indicates a stream payload could not be decoded or validated.
	ErrMalformedEvent = errors.Wrap(errors.ErrInvalidInput, "malformed event")
)
