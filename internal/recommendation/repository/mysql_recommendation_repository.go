package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/allisson/recommendations/internal/database"
	apperrors "github.com/allisson/recommendations/internal/errors"
	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// MySQLRecommendationRepository implements Recommendation persistence for MySQL databases.
type MySQLRecommendationRepository struct {
	db *sql.DB
}

// NewMySQLRecommendationRepository creates a new MySQL Recommendation repository instance.
func NewMySQLRecommendationRepository(db *sql.DB) *MySQLRecommendationRepository {
	return &MySQLRecommendationRepository{db: db}
}

// Create inserts rec as a new ACTIVE recommendation and sets its ID.
// Status, enabled and decision fields supplied by the caller are overwritten.
func (m *MySQLRecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	querier := database.GetTx(ctx, m.db)

	rec.Status = domain.StatusActive
	rec.Enabled = true
	rec.UserID = nil
	rec.DecisionTime = nil
	rec.Reason = nil

	extra, err := encodeExtra(rec.Extra)
	if err != nil {
		return err
	}

	query := `INSERT INTO recommendations (uuid, account_id, journey_id, journey_name, media_plan_id, type,
			  version, currency, creation_date, enabled, status, extra)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := querier.ExecContext(
		ctx,
		query,
		rec.UUID,
		rec.AccountID,
		rec.JourneyID,
		rec.JourneyName,
		rec.MediaPlanID,
		rec.Type,
		rec.Version,
		rec.Currency,
		rec.CreationDate.UTC(),
		rec.Enabled,
		string(rec.Status),
		extra,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create recommendation")
	}

	rec.ID, err = result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get recommendation id")
	}

	return nil
}

// Get retrieves a recommendation by its ID.
func (m *MySQLRecommendationRepository) Get(ctx context.Context, id int64) (*domain.Recommendation, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE id = ?`

	rec, err := scanRecommendation(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecommendationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get recommendation")
	}

	return rec, nil
}

// GetForUpdate retrieves a recommendation and locks its row until the transaction in ctx
// ends. Concurrent decisions on the same row wait for the lock and then read the committed status.
func (m *MySQLRecommendationRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Recommendation, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE id = ? FOR UPDATE`

	rec, err := scanRecommendation(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecommendationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to lock recommendation")
	}

	return rec, nil
}

// GetByUUID retrieves a recommendation by its natural key.
func (m *MySQLRecommendationRepository) GetByUUID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Recommendation, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE uuid = ?`

	rec, err := scanRecommendation(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecommendationNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get recommendation by uuid")
	}

	return rec, nil
}

// GetLastIDForJourney returns the highest recommendation id stored for journeyID.
func (m *MySQLRecommendationRepository) GetLastIDForJourney(ctx context.Context, journeyID int64) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id FROM recommendations WHERE journey_id = ? ORDER BY id DESC LIMIT 1`

	var id int64
	if err := querier.QueryRowContext(ctx, query, journeyID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrRecommendationNotFound
		}
		return 0, apperrors.Wrap(err, "failed to get last recommendation id")
	}

	return id, nil
}

// List retrieves one page of recommendations matching filter.
func (m *MySQLRecommendationRepository) List(
	ctx context.Context,
	filter domain.ListFilter,
	sortBy domain.SortBy,
	offset, limit int,
) ([]*domain.Recommendation, error) {
	querier := database.GetTx(ctx, m.db)

	where, args := buildListWhere(filter, questionPlaceholder)
	query := fmt.Sprintf(
		`SELECT %s FROM recommendations WHERE %s ORDER BY %s LIMIT ? OFFSET ?`,
		recommendationColumns,
		where,
		orderByClause(sortBy),
	)
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list recommendations")
	}
	defer func() {
		_ = rows.Close()
	}()

	recs := make([]*domain.Recommendation, 0, limit)
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan recommendation")
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate recommendations")
	}

	return recs, nil
}

// Count returns the number of recommendations matching filter.
func (m *MySQLRecommendationRepository) Count(ctx context.Context, filter domain.ListFilter) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	where, args := buildListWhere(filter, questionPlaceholder)
	query := `SELECT COUNT(id) FROM recommendations WHERE ` + where

	var total int64
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.Wrap(err, "failed to count recommendations")
	}

	return total, nil
}

// ExistsActive reports whether the account has an ACTIVE recommendation, optionally within one journey.
func (m *MySQLRecommendationRepository) ExistsActive(
	ctx context.Context,
	accountID int64,
	journeyID *int64,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS (SELECT 1 FROM recommendations WHERE account_id = ? AND status = ?`
	args := []any{accountID, string(domain.StatusActive)}
	if journeyID != nil {
		query += ` AND journey_id = ?`
		args = append(args, *journeyID)
	}
	query += `)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check active recommendations")
	}

	return exists, nil
}

// Update writes the non-nil fields of update to the recommendation identified by id.
func (m *MySQLRecommendationRepository) Update(
	ctx context.Context,
	id int64,
	update domain.RecommendationUpdate,
) error {
	if update.IsEmpty() {
		return nil
	}

	querier := database.GetTx(ctx, m.db)

	set, args := buildUpdateSet(update, questionPlaceholder)
	query := fmt.Sprintf(`UPDATE recommendations SET %s WHERE id = ?`, set)
	args = append(args, id)

	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.Wrap(err, "failed to update recommendation")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when the values did not change.
	var found int64
	err = querier.QueryRowContext(ctx, `SELECT id FROM recommendations WHERE id = ?`, id).Scan(&found)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrRecommendationNotFound
		}
		return apperrors.Wrap(err, "failed to get recommendation")
	}

	return nil
}

// ExpireActive moves every live recommendation of the account journey to EXPIRED
// and returns how many rows changed.
func (m *MySQLRecommendationRepository) ExpireActive(
	ctx context.Context,
	accountID, journeyID int64,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	live, liveArgs := statusIn(domain.LiveStatuses(), questionPlaceholder, 3)
	query := `UPDATE recommendations SET status = ?
			  WHERE account_id = ? AND journey_id = ? AND status ` + live
	args := append([]any{string(domain.StatusExpired), accountID, journeyID}, liveArgs...)

	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to expire recommendations")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}

	return affected, nil
}
