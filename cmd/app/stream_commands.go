package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/recommendations/cmd/app/commands"
	"github.com/allisson/recommendations/internal/app"
	"github.com/allisson/recommendations/internal/config"
	"github.com/allisson/recommendations/internal/recommendation/domain"
)

func getStreamCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "consumer",
			Usage: "Consume recommendation, platform status and goal update events",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(context.Background()) }()

				consumer, err := container.StreamConsumer()
				if err != nil {
					return fmt.Errorf("failed to initialize stream consumer: %w", err)
				}

				var servers []commands.Server
				metricsServer, err := container.MetricsServer()
				if err != nil {
					return fmt.Errorf("failed to initialize metrics server: %w", err)
				}
				if metricsServer != nil {
					servers = append(servers, metricsServer)
				}

				return commands.RunConsumer(ctx, container.Logger(), cfg.DBConnMaxLifetime, consumer, servers...)
			},
		},
		{
			Name:  "publish-url-schema",
			Usage: "Publish the access schema of the API for the gateway",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunPublishURLSchema(
					ctx,
					container.Producer(),
					container.Logger(),
					commands.DefaultIO().Writer,
					cfg.KafkaTopicURLSchema,
					domain.NewURLSchema(cfg.AppTitle, cfg.BaseAPIPath),
				)
			},
		},
	}
}
