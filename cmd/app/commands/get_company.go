package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	authUseCase "github.com/allisson/recommendations/internal/auth/usecase"
)

// RunGetCompany prints a company resolved through the authentication service.
func RunGetCompany(
	ctx context.Context,
	accountUseCase authUseCase.AccountUseCase,
	logger *slog.Logger,
	writer io.Writer,
	companyID int64,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	company, err := accountUseCase.GetCompany(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to get company: %w", err)
	}

	logger.Debug("company loaded", slog.Int64("company_id", company.ID))

	if format == FormatJSON {
		outputJSON(company, writer)
		return nil
	}

	_, _ = fmt.Fprintf(writer, "Company ID: %d\n", company.ID)
	_, _ = fmt.Fprintf(writer, "Name: %s\n", company.Name)
	return nil
}
