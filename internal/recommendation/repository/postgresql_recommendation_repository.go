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

// PostgreSQLRecommendationRepository implements Recommendation persistence for PostgreSQL databases.
type PostgreSQLRecommendationRepository struct {
	db *sql.DB
}

// NewPostgreSQLRecommendationRepository creates a new PostgreSQL Recommendation repository instance.
func NewPostgreSQLRecommendationRepository(db *sql.DB) *PostgreSQLRecommendationRepository {
	return &PostgreSQLRecommendationRepository{db: db}
}

// Create inserts rec as a new ACTIVE recommendation and sets its ID.
// Status, enabled and decision fields supplied by the caller are overwritten.
func (p *PostgreSQLRecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) error {
	querier := database.GetTx(ctx, p.db)

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
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING id`

	err = querier.QueryRowContext(
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
	).Scan(&rec.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create recommendation")
	}

	return nil
}

// Get retrieves a recommendation by its ID.
func (p *PostgreSQLRecommendationRepository) Get(ctx context.Context, id int64) (*domain.Recommendation, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE id = $1`

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
func (p *PostgreSQLRecommendationRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Recommendation, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE id = $1 FOR UPDATE`

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
func (p *PostgreSQLRecommendationRepository) GetByUUID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.Recommendation, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + recommendationColumns + ` FROM recommendations WHERE uuid = $1`

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
func (p *PostgreSQLRecommendationRepository) GetLastIDForJourney(ctx context.Context, journeyID int64) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id FROM recommendations WHERE journey_id = $1 ORDER BY id DESC LIMIT 1`

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
func (p *PostgreSQLRecommendationRepository) List(
	ctx context.Context,
	filter domain.ListFilter,
	sortBy domain.SortBy,
	offset, limit int,
) ([]*domain.Recommendation, error) {
	querier := database.GetTx(ctx, p.db)

	where, args := buildListWhere(filter, dollarPlaceholder)
	query := fmt.Sprintf(
		`SELECT %s FROM recommendations WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		recommendationColumns,
		where,
		orderByClause(sortBy),
		len(args)+1,
		len(args)+2,
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
func (p *PostgreSQLRecommendationRepository) Count(ctx context.Context, filter domain.ListFilter) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	where, args := buildListWhere(filter, dollarPlaceholder)
	query := `SELECT COUNT(id) FROM recommendations WHERE ` + where

	var total int64
	if err := querier.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, apperrors.Wrap(err, "failed to count recommendations")
	}

	return total, nil
}

// ExistsActive reports whether the account has an ACTIVE recommendation, optionally within one journey.
func (p *PostgreSQLRecommendationRepository) ExistsActive(
	ctx context.Context,
	accountID int64,
	journeyID *int64,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (SELECT 1 FROM recommendations WHERE account_id = $1 AND status = $2`
	args := []any{accountID, string(domain.StatusActive)}
	if journeyID != nil {
		query += ` AND journey_id = $3`
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
func (p *PostgreSQLRecommendationRepository) Update(
	ctx context.Context,
	id int64,
	update domain.RecommendationUpdate,
) error {
	if update.IsEmpty() {
		return nil
	}

	querier := database.GetTx(ctx, p.db)

	set, args := buildUpdateSet(update, dollarPlaceholder)
	query := fmt.Sprintf(`UPDATE recommendations SET %s WHERE id = $%d`, set, len(args)+1)
	args = append(args, id)

	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.Wrap(err, "failed to update recommendation")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return domain.ErrRecommendationNotFound
	}

	return nil
}

// ExpireActive moves every live recommendation of the account journey to EXPIRED
// and returns how many rows changed.
func (p *PostgreSQLRecommendationRepository) ExpireActive(
	ctx context.Context,
	accountID, journeyID int64,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	live, liveArgs := statusIn(domain.LiveStatuses(), dollarPlaceholder, 3)
	query := `UPDATE recommendations SET status = $1
			  WHERE account_id = $2 AND journey_id = $3 AND status ` + live
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
