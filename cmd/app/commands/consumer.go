package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Consumer processes stream records until its context is cancelled.
type Consumer interface {
	Run(ctx context.Context) error
}

// RunConsumer runs the stream consumer next to the given servers, usually the metrics
// server. The process stops when the consumer returns, on failure, or on SIGINT/SIGTERM.
func RunConsumer(
	ctx context.Context,
	logger *slog.Logger,
	shutdownTimeout time.Duration,
	consumer Consumer,
	servers ...Server,
) error {
	logger.Info("starting consumer")

	return run(ctx, logger, shutdownTimeout, servers, func(ctx context.Context) error {
		if err := consumer.Run(ctx); err != nil {
			return fmt.Errorf("consumer error: %w", err)
		}
		return nil
	})
}
