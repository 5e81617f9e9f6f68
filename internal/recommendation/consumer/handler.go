// Package consumer turns stream records into ingestion use case calls.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/allisson/recommendations/internal/recommendation/domain"
	"github.com/allisson/recommendations/internal/recommendation/usecase"
	"github.com/allisson/recommendations/internal/stream"
)

// Topics names the topic consumed by each handler.
type Topics struct {
	Recommendations string
	PlatformStatus  string
	GoalsUpdated    string
}

// Handlers holds the stream handlers of the recommendation module.
type Handlers struct {
	ingestion usecase.IngestionUseCase
	logger    *slog.Logger
}

// NewHandlers creates the recommendation stream handlers.
func NewHandlers(ingestion usecase.IngestionUseCase, logger *slog.Logger) *Handlers {
	return &Handlers{
		ingestion: ingestion,
		logger:    logger,
	}
}

// Register binds every handler to its topic.
func (h *Handlers) Register(registry *stream.Registry, topics Topics) error {
	if err := registry.Register(topics.Recommendations, h.Recommendation); err != nil {
		return err
	}
	if err := registry.Register(topics.PlatformStatus, h.PlatformStatus); err != nil {
		return err
	}
	return registry.Register(topics.GoalsUpdated, h.GoalUpdate)
}

// Recommendation ingests recommendation notifications. Other notification types are ignored.
func (h *Handlers) Recommendation(ctx context.Context, record stream.Record) error {
	var notification domain.Notification
	if err := json.Unmarshal(record.Value, &notification); err != nil {
		return h.skipMalformed(record, err)
	}
	if !notification.IsRecommendation() {
		h.logger.Info("ignoring notification", append(record.LogAttrs(), slog.String("type", notification.Type))...)
		return nil
	}

	input, err := domain.ParseRecommendationInput(record.Value)
	if err != nil {
		return h.skipMalformed(record, err)
	}
	if err := input.Validate(); err != nil {
		return h.skipMalformed(record, err)
	}

	return h.ingestion.ConsumeRecommendation(ctx, input)
}

// PlatformStatus ingests platform execution feedback.
func (h *Handlers) PlatformStatus(ctx context.Context, record stream.Record) error {
	input, err := domain.ParsePlatformStatusInput(record.Value)
	if err != nil {
		return h.skipMalformed(record, err)
	}
	if err := input.Validate(); err != nil {
		return h.skipMalformed(record, err)
	}

	return h.ingestion.ConsumePlatformStatus(ctx, input)
}

// GoalUpdate ingests goal update notifications.
func (h *Handlers) GoalUpdate(ctx context.Context, record stream.Record) error {
	input, err := domain.ParseGoalUpdateInput(record.Value)
	if err != nil {
		return h.skipMalformed(record, err)
	}
	if err := input.Validate(); err != nil {
		return h.skipMalformed(record, err)
	}

	_, err = h.ingestion.ConsumeGoalUpdate(ctx, input)
	return err
}

// skipMalformed logs a payload that can never be processed so that its offset is committed.
func (h *Handlers) skipMalformed(record stream.Record, err error) error {
	err = fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	h.logger.Warn("skipping malformed event", append(record.LogAttrs(), slog.Any("error", err))...)
	return nil
}
