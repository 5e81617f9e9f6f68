package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authDomain "github.com/allisson/recommendations/internal/auth/domain"
	authUseCase "github.com/allisson/recommendations/internal/auth/usecase"
)

// RunListUsers prints the users of a company known to the authentication service.
func RunListUsers(
	ctx context.Context,
	accountUseCase authUseCase.AccountUseCase,
	logger *slog.Logger,
	writer io.Writer,
	query authDomain.UsersQuery,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	users, err := accountUseCase.GetUsers(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	logger.Debug("users loaded",
		slog.Int64("company_id", query.CompanyID),
		slog.Int("count", len(users)),
	)

	if format == FormatJSON {
		if users == nil {
			users = []authDomain.AuthUser{}
		}
		outputJSON(users, writer)
		return nil
	}

	if len(users) == 0 {
		_, _ = fmt.Fprintln(writer, "No users found")
		return nil
	}
	for _, user := range users {
		_, _ = fmt.Fprintf(writer, "%d\t%s\t%s %s\n", user.ID, user.Email, user.FirstName, user.LastName)
	}
	return nil
}
