package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/recommendations/cmd/app/commands"
	"github.com/allisson/recommendations/internal/app"
	"github.com/allisson/recommendations/internal/config"
)

func goalUpdateIDFlag() cli.Flag {
	return &cli.Int64Flag{
		Name:     "id",
		Aliases:  []string{"i"},
		Required: true,
		Usage:    "Goal update ID",
	}
}

func getGoalUpdateCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "get-goal-update",
			Usage: "Show a stored goal update",
			Flags: []cli.Flag{goalUpdateIDFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.GoalUpdateUseCase()
				if err != nil {
					return err
				}

				return commands.RunGetGoalUpdate(
					ctx,
					useCase,
					commands.DefaultIO().Writer,
					cmd.Int64("id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "update-goal-update",
			Usage: "Move a goal update to another journey",
			Flags: []cli.Flag{
				goalUpdateIDFlag(),
				&cli.Int64Flag{
					Name:     "journey-id",
					Aliases:  []string{"j"},
					Required: true,
					Usage:    "New journey ID",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.GoalUpdateUseCase()
				if err != nil {
					return err
				}

				return commands.RunUpdateGoalUpdate(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Int64("id"),
					cmd.Int64("journey-id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "delete-goal-update",
			Usage: "Delete a goal update",
			Flags: []cli.Flag{goalUpdateIDFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				useCase, err := container.GoalUpdateUseCase()
				if err != nil {
					return err
				}

				return commands.RunDeleteGoalUpdate(
					ctx,
					useCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Int64("id"),
					cmd.String("format"),
				)
			},
		},
	}
}
