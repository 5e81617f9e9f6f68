package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/recommendations/internal/database"
	apperrors "github.com/allisson/recommendations/internal/errors"
	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// MySQLGoalUpdateRepository implements GoalUpdate persistence for MySQL databases.
// Get, Update and Delete return a nil goal update without error when the id is unknown.
// Update and Delete issue two statements and should run inside a transaction.
type MySQLGoalUpdateRepository struct {
	db *sql.DB
}

// NewMySQLGoalUpdateRepository creates a new MySQL GoalUpdate repository instance.
func NewMySQLGoalUpdateRepository(db *sql.DB) *MySQLGoalUpdateRepository {
	return &MySQLGoalUpdateRepository{db: db}
}

// Create inserts a goal update and sets its ID.
func (m *MySQLGoalUpdateRepository) Create(ctx context.Context, goalUpdate *domain.GoalUpdate) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO goal_updates (journey_id, updated_at) VALUES (?, ?)`

	result, err := querier.ExecContext(ctx, query, goalUpdate.JourneyID, goalUpdate.UpdatedAt.UTC())
	if err != nil {
		return apperrors.Wrap(err, "failed to create goal update")
	}

	goalUpdate.ID, err = result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get goal update id")
	}

	return nil
}

// Get retrieves a goal update by its ID.
func (m *MySQLGoalUpdateRepository) Get(ctx context.Context, id int64) (*domain.GoalUpdate, error) {
	return m.get(ctx, id, false)
}

// Update moves the goal update to journeyID and returns the stored row.
func (m *MySQLGoalUpdateRepository) Update(ctx context.Context, id, journeyID int64) (*domain.GoalUpdate, error) {
	goalUpdate, err := m.get(ctx, id, true)
	if err != nil || goalUpdate == nil {
		return nil, err
	}

	querier := database.GetTx(ctx, m.db)
	if _, err := querier.ExecContext(ctx, `UPDATE goal_updates SET journey_id = ? WHERE id = ?`, journeyID, id); err != nil {
		return nil, apperrors.Wrap(err, "failed to update goal update")
	}

	goalUpdate.JourneyID = journeyID
	return goalUpdate, nil
}

// Delete removes the goal update and returns the deleted row.
func (m *MySQLGoalUpdateRepository) Delete(ctx context.Context, id int64) (*domain.GoalUpdate, error) {
	goalUpdate, err := m.get(ctx, id, true)
	if err != nil || goalUpdate == nil {
		return nil, err
	}

	querier := database.GetTx(ctx, m.db)
	if _, err := querier.ExecContext(ctx, `DELETE FROM goal_updates WHERE id = ?`, id); err != nil {
		return nil, apperrors.Wrap(err, "failed to delete goal update")
	}

	return goalUpdate, nil
}

func (m *MySQLGoalUpdateRepository) get(ctx context.Context, id int64, forUpdate bool) (*domain.GoalUpdate, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, journey_id, updated_at FROM goal_updates WHERE id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	goalUpdate, err := scanGoalUpdate(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "failed to get goal update")
	}

	return goalUpdate, nil
}
