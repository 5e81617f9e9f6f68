package repository

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/allisson/recommendations/internal/recommendation/domain"
)

var recommendationColumnNames = []string{
	"id", "uuid", "account_id", "journey_id", "journey_name", "media_plan_id", "type", "version",
	"currency", "creation_date", "enabled", "status", "user_id", "decision_time", "reason", "extra",
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestRecommendation() *domain.Recommendation {
	mediaPlanID := int64(77)
	return &domain.Recommendation{
		UUID:         uuid.MustParse("8c7ba0e1-6f3a-4a56-9b3b-5b5a4c1e9a01"),
		AccountID:    1,
		JourneyID:    10,
		JourneyName:  "Spring sale",
		MediaPlanID:  &mediaPlanID,
		Type:         domain.TypeBudget,
		Version:      2,
		Currency:     "USD",
		CreationDate: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Extra:        map[string]any{"budget_info": map[string]any{"total": "100"}},
	}
}

func recommendationRow(rec *domain.Recommendation, extra string) []driver.Value {
	var mediaPlanID any
	if rec.MediaPlanID != nil {
		mediaPlanID = *rec.MediaPlanID
	}
	var extraValue any
	if extra != "" {
		extraValue = []byte(extra)
	}
	return []driver.Value{
		rec.ID, rec.UUID.String(), rec.AccountID, rec.JourneyID, rec.JourneyName, mediaPlanID,
		rec.Type, int64(rec.Version), rec.Currency, rec.CreationDate, true, string(rec.Status),
		nil, nil, nil, extraValue,
	}
}
