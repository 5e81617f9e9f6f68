package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/allisson/recommendations/internal/recommendation/domain"
	recommendationUseCase "github.com/allisson/recommendations/internal/recommendation/usecase"
)

// goalUpdateOutput is the JSON shape of a goal update.
type goalUpdateOutput struct {
	ID        int64     `json:"id"`
	JourneyID int64     `json:"journey_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RunGetGoalUpdate prints a stored goal update.
func RunGetGoalUpdate(
	ctx context.Context,
	useCase recommendationUseCase.GoalUpdateUseCase,
	writer io.Writer,
	id int64,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	goalUpdate, err := useCase.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get goal update: %w", err)
	}

	outputGoalUpdate(goalUpdate, writer, format)
	return nil
}

// RunUpdateGoalUpdate moves a goal update to another journey.
func RunUpdateGoalUpdate(
	ctx context.Context,
	useCase recommendationUseCase.GoalUpdateUseCase,
	logger *slog.Logger,
	writer io.Writer,
	id, journeyID int64,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if journeyID <= 0 {
		return fmt.Errorf("journey id must be a positive number, got: %d", journeyID)
	}

	goalUpdate, err := useCase.Update(ctx, id, journeyID)
	if err != nil {
		return fmt.Errorf("failed to update goal update: %w", err)
	}

	logger.Info("goal update changed",
		slog.Int64("goal_update_id", goalUpdate.ID),
		slog.Int64("journey_id", goalUpdate.JourneyID),
	)

	outputGoalUpdate(goalUpdate, writer, format)
	return nil
}

// RunDeleteGoalUpdate deletes a goal update and prints the removed row.
func RunDeleteGoalUpdate(
	ctx context.Context,
	useCase recommendationUseCase.GoalUpdateUseCase,
	logger *slog.Logger,
	writer io.Writer,
	id int64,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	goalUpdate, err := useCase.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal update: %w", err)
	}

	logger.Info("goal update deleted", slog.Int64("goal_update_id", goalUpdate.ID))

	outputGoalUpdate(goalUpdate, writer, format)
	return nil
}

func outputGoalUpdate(goalUpdate *domain.GoalUpdate, writer io.Writer, format string) {
	if format == FormatJSON {
		outputJSON(goalUpdateOutput{
			ID:        goalUpdate.ID,
			JourneyID: goalUpdate.JourneyID,
			UpdatedAt: goalUpdate.UpdatedAt,
		}, writer)
		return
	}

	_, _ = fmt.Fprintf(writer, "Goal update ID: %d\n", goalUpdate.ID)
	_, _ = fmt.Fprintf(writer, "Journey ID: %d\n", goalUpdate.JourneyID)
	_, _ = fmt.Fprintf(writer, "Updated at: %s\n", goalUpdate.UpdatedAt.Format(time.RFC3339))
}
