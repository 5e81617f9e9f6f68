package commands

import (
	"context"
	"log/slog"
	"time"
)

// RunServer serves the recommendation API and the metrics endpoint until SIGINT/SIGTERM
// or a server failure. On shutdown every server is stopped within shutdownTimeout.
func RunServer(
	ctx context.Context,
	logger *slog.Logger,
	version string,
	shutdownTimeout time.Duration,
	servers ...Server,
) error {
	logger.Info("starting server", slog.String("version", version))
	return run(ctx, logger, shutdownTimeout, servers)
}
