package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/allisson/recommendations/internal/database"
	apperrors "github.com/allisson/recommendations/internal/errors"
	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// MySQLPlatformStatusRepository implements PlatformStatus persistence for MySQL databases.
type MySQLPlatformStatusRepository struct {
	db *sql.DB
}

// NewMySQLPlatformStatusRepository creates a new MySQL PlatformStatus repository instance.
func NewMySQLPlatformStatusRepository(db *sql.DB) *MySQLPlatformStatusRepository {
	return &MySQLPlatformStatusRepository{db: db}
}

// Create appends a platform status and sets its ID.
func (m *MySQLPlatformStatusRepository) Create(ctx context.Context, status *domain.PlatformStatus) error {
	querier := database.GetTx(ctx, m.db)

	data, err := encodePlatformStatusData(status.Data)
	if err != nil {
		return err
	}

	query := `INSERT INTO platform_statuses (recommendation_id, platform, data) VALUES (?, ?, ?)`

	result, err := querier.ExecContext(ctx, query, status.RecommendationID, status.Platform, data)
	if err != nil {
		return apperrors.Wrap(err, "failed to create platform status")
	}

	status.ID, err = result.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to get platform status id")
	}

	return nil
}

// List retrieves the platform statuses matching filter, newest first.
func (m *MySQLPlatformStatusRepository) List(
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

	if filter.RecommendationID != nil {
		conditions = append(conditions, "recommendation_id = ?")
		args = append(args, *filter.RecommendationID)
	}
	if filter.RecommendationIDs != nil {
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(filter.RecommendationIDs)), ", ")
		conditions = append(conditions, "recommendation_id IN ("+marks+")")
		for _, id := range filter.RecommendationIDs {
			args = append(args, id)
		}
	}
	if filter.Platform != nil {
		conditions = append(conditions, "platform = ?")
		args = append(args, *filter.Platform)
	}

	query := `SELECT id, recommendation_id, platform, data FROM platform_statuses
			  WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY id DESC`

	return queryPlatformStatuses(ctx, database.GetTx(ctx, m.db), query, args)
}
