package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/recommendations/cmd/app/commands"
	"github.com/allisson/recommendations/internal/app"
	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	"github.com/allisson/recommendations/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "get-company",
			Usage: "Show a company from the authentication service",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Company ID",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				return commands.RunGetCompany(
					ctx,
					accountUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.Int64("id"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "list-users",
			Usage: "List the users of a company from the authentication service",
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:     "company-id",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Company ID",
				},
				&cli.StringFlag{
					Name:  "permission-level",
					Usage: "Only users with this permission level",
				},
				&cli.StringFlag{
					Name:  "permissions-feature",
					Usage: "Only users with this feature",
				},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				accountUseCase, err := container.AccountUseCase()
				if err != nil {
					return err
				}

				query := authDomain.UsersQuery{CompanyID: cmd.Int64("company-id")}
				if cmd.IsSet("permission-level") {
					level := cmd.String("permission-level")
					query.PermissionLevel = &level
				}
				if cmd.IsSet("permissions-feature") {
					feature := cmd.String("permissions-feature")
					query.PermissionsFeature = &feature
				}

				return commands.RunListUsers(
					ctx,
					accountUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					query,
					cmd.String("format"),
				)
			},
		},
	}
}
