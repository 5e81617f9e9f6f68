package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"

	"github.com/allisson/recommendations/cmd/app/commands"
	"github.com/allisson/recommendations/internal/app"
	"github.com/allisson/recommendations/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				gin.SetMode(cfg.GetGinMode())

				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(context.Background()) }()

				server, err := container.HTTPServer()
				if err != nil {
					return fmt.Errorf("failed to initialize HTTP server: %w", err)
				}

				servers := []commands.Server{server}
				metricsServer, err := container.MetricsServer()
				if err != nil {
					return fmt.Errorf("failed to initialize metrics server: %w", err)
				}
				if metricsServer != nil {
					servers = append(servers, metricsServer)
				}

				return commands.RunServer(ctx, container.Logger(), version, cfg.DBConnMaxLifetime, servers...)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
	}
}
