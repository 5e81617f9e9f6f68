package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// Publisher sends a message to a stream topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

// RunPublishURLSchema publishes the access schema of the API to topic so that the gateway
// can enforce the required feature.
func RunPublishURLSchema(
	ctx context.Context,
	publisher Publisher,
	logger *slog.Logger,
	writer io.Writer,
	topic string,
	schema domain.URLSchema,
) error {
	value, err := json.Marshal(schema)
	if err != nil {
		return fmt.Errorf("failed to encode url schema: %w", err)
	}

	if err := publisher.Publish(ctx, topic, nil, value); err != nil {
		return fmt.Errorf("failed to publish url schema: %w", err)
	}

	logger.Info("url schema published",
		slog.String("topic", topic),
		slog.String("service", schema.Service),
	)
	_, _ = fmt.Fprintln(writer, "URL schema was published")

	return nil
}
