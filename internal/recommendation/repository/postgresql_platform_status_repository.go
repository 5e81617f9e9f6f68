package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/allisson/recommendations/internal/database"
	apperrors "github.com/allisson/recommendations/internal/errors"
	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// PostgreSQLPlatformStatusRepository implements PlatformStatus persistence for PostgreSQL databases.
type PostgreSQLPlatformStatusRepository struct {
	db *sql.DB
}

// NewPostgreSQLPlatformStatusRepository creates a new PostgreSQL PlatformStatus repository instance.
func NewPostgreSQLPlatformStatusRepository(db *sql.DB) *PostgreSQLPlatformStatusRepository {
	return &PostgreSQLPlatformStatusRepository{db: db}
}

// Create appends a platform status and sets its ID.
func (p *PostgreSQLPlatformStatusRepository) Create(ctx context.Context, status *domain.PlatformStatus) error {
	querier := database.GetTx(ctx, p.db)

	data, err := encodePlatformStatusData(status.Data)
	if err != nil {
		return err
	}

	query := `INSERT INTO platform_statuses (recommendation_id, platform, data)
			  VALUES ($1, $2, $3)
			  RETURNING id`

	err = querier.QueryRowContext(ctx, query, status.RecommendationID, status.Platform, data).Scan(&status.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to create platform status")
	}

	return nil
}

// List retrieves the platform statuses matching filter, newest first.
func (p *PostgreSQLPlatformStatusRepository) List(
	ctx context.Context,
	filter domain.PlatformStatusFilter,
) ([]*domain.PlatformStatus, error) {
	if filter.IsEmpty() {
		return nil, domain.ErrInvalidQuery
	}
	if filter.RecommendationIDs != nil && len(filter.RecommendationIDs) == 0 {
		return []*domain.PlatformStatus{}, nil
	}

	var conditions []string
	var args []any
	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.RecommendationID != nil {
		add("recommendation_id = $%d", *filter.RecommendationID)
	}
	if filter.RecommendationIDs != nil {
		add("recommendation_id = ANY($%d)", pq.Array(filter.RecommendationIDs))
	}
	if filter.Platform != nil {
		add("platform = $%d", *filter.Platform)
	}

	query := `SELECT id, recommendation_id, platform, data FROM platform_statuses
			  WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY id DESC`

	return queryPlatformStatuses(ctx, database.GetTx(ctx, p.db), query, args)
}

func queryPlatformStatuses(
	ctx context.Context,
	querier database.Querier,
	query string,
	args []any,
) ([]*domain.PlatformStatus, error) {
	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list platform statuses")
	}
	defer func() {
		_ = rows.Close()
	}()

	statuses := make([]*domain.PlatformStatus, 0)
	for rows.Next() {
		status, err := scanPlatformStatus(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan platform status")
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate platform statuses")
	}

	return statuses, nil
}
