package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/recommendations/internal/database"
	apperrors "github.com/allisson/recommendations/internal/errors"
	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// PostgreSQLGoalUpdateRepository implements GoalUpdate persistence for PostgreSQL databases.
// Get, Update and Delete return a nil goal update without error when the id is unknown.
type PostgreSQLGoalUpdateRepository struct {
	db *sql.DB
}

// NewPostgreSQLGoalUpdateRepository creates a new PostgreSQL GoalUpdate repository instance.
func NewPostgreSQLGoalUpdateRepository(db *sql.DB) *PostgreSQLGoalUpdateRepository {
	return &PostgreSQLGoalUpdateRepository{db: db}
}

// Create inserts a goal update and sets its ID.
func (p *PostgreSQLGoalUpdateRepository) Create(ctx context.Context, goalUpdate *domain.GoalUpdate) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO goal_updates (journey_id, updated_at) VALUES ($1, $2) RETURNING id`

	err := querier.QueryRowContext(ctx, query, goalUpdate.JourneyID, goalUpdate.UpdatedAt.UTC()).
		Scan(&goalUpdate.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create goal update")
	}

	return nil
}

// Get retrieves a goal update by its ID.
func (p *PostgreSQLGoalUpdateRepository) Get(ctx context.Context, id int64) (*domain.GoalUpdate, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, journey_id, updated_at FROM goal_updates WHERE id = $1`

	return p.queryOne(querier.QueryRowContext(ctx, query, id), "failed to get goal update")
}

// Update moves the goal update to journeyID and returns the stored row.
func (p *PostgreSQLGoalUpdateRepository) Update(
	ctx context.Context,
	id, journeyID int64,
) (*domain.GoalUpdate, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE goal_updates SET journey_id = $1 WHERE id = $2 RETURNING id, journey_id, updated_at`

	return p.queryOne(querier.QueryRowContext(ctx, query, journeyID, id), "failed to update goal update")
}

// Delete removes the goal update and returns the deleted row.
func (p *PostgreSQLGoalUpdateRepository) Delete(ctx context.Context, id int64) (*domain.GoalUpdate, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM goal_updates WHERE id = $1 RETURNING id, journey_id, updated_at`

	return p.queryOne(querier.QueryRowContext(ctx, query, id), "failed to delete goal update")
}

func (p *PostgreSQLGoalUpdateRepository) queryOne(row *sql.Row, message string) (*domain.GoalUpdate, error) {
	goalUpdate, err := scanGoalUpdate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, message)
	}
	return goalUpdate, nil
}
