// Package repository implements persistence for recommendations, platform statuses and
// goal updates on PostgreSQL and MySQL.
package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/allisson/recommendations/internal/recommendation/domain"
)

const recommendationColumns = `id, uuid, account_id, journey_id, journey_name, media_plan_id, type, version,
	currency, creation_date, enabled, status, user_id, decision_time, reason, extra`

// placeholderFunc renders the n-th (1-based) bind parameter for a driver.
type placeholderFunc func(n int) string

func dollarPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func questionPlaceholder(int) string {
	return "?"
}

// statusIn renders an IN list for statuses whose bind parameters follow the first n.
func statusIn(statuses []domain.Status, placeholder placeholderFunc, n int) (string, []any) {
	marks := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, status := range statuses {
		marks[i] = placeholder(n + i + 1)
		args[i] = string(status)
	}
	return "IN (" + strings.Join(marks, ", ") + ")", args
}

// buildListWhere renders the predicate used by both List and Count, so a page and the
// page count always describe the same rows.
func buildListWhere(filter domain.ListFilter, placeholder placeholderFunc) (string, []any) {
	conditions := []string{"account_id = " + placeholder(1)}
	args := []any{filter.AccountID}

	add := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, placeholder(len(args))))
	}

	if filter.JourneyID != nil {
		add("journey_id = %s", *filter.JourneyID)
	}
	if filter.DateFrom != nil {
		add("creation_date >= %s", filter.DateFrom.UTC())
	}
	if filter.DateTo != nil {
		add("creation_date < %s", filter.DateTo.UTC().AddDate(0, 0, 1))
	}
	if filter.Status != nil {
		add("status = %s", string(*filter.Status))
	}

	return strings.Join(conditions, " AND "), args
}

// orderByClause renders the ordering for sortBy. Unknown values fall back to status_date.
func orderByClause(sortBy domain.SortBy) string {
	if sortBy == domain.SortByDate {
		return "creation_date DESC, id DESC"
	}
	return "(status = 'ACTIVE') DESC, creation_date DESC, id DESC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecommendation(row rowScanner) (*domain.Recommendation, error) {
	var rec domain.Recommendation
	var status string
	var extra []byte

	err := row.Scan(
		&rec.ID,
		&rec.UUID,
		&rec.AccountID,
		&rec.JourneyID,
		&rec.JourneyName,
		&rec.MediaPlanID,
		&rec.Type,
		&rec.Version,
		&rec.Currency,
		&rec.CreationDate,
		&rec.Enabled,
		&status,
		&rec.UserID,
		&rec.DecisionTime,
		&rec.Reason,
		&extra,
	)
	if err != nil {
		return nil, err
	}

	rec.Status = domain.Status(status)
	rec.CreationDate = rec.CreationDate.UTC()
	if rec.DecisionTime != nil {
		decisionTime := rec.DecisionTime.UTC()
		rec.DecisionTime = &decisionTime
	}

	rec.Extra, err = decodeExtra(extra)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func scanPlatformStatus(row rowScanner) (*domain.PlatformStatus, error) {
	var status domain.PlatformStatus
	var data []byte

	if err := row.Scan(&status.ID, &status.RecommendationID, &status.Platform, &data); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &status.Data); err != nil {
		return nil, fmt.Errorf("failed to decode platform status data: %w", err)
	}

	return &status, nil
}

func scanGoalUpdate(row rowScanner) (*domain.GoalUpdate, error) {
	var goalUpdate domain.GoalUpdate
	if err := row.Scan(&goalUpdate.ID, &goalUpdate.JourneyID, &goalUpdate.UpdatedAt); err != nil {
		return nil, err
	}
	goalUpdate.UpdatedAt = goalUpdate.UpdatedAt.UTC()
	return &goalUpdate, nil
}

// encodeExtra returns the JSON text stored in the extra column, or nil when there is nothing to keep.
// JSON is bound as a string: lib/pq would send []byte as bytea.
func encodeExtra(extra map[string]any) (any, error) {
	if len(extra) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extra attributes: %w", err)
	}
	return string(data), nil
}

func decodeExtra(data []byte) (map[string]any, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var extra map[string]any
	if err := decoder.Decode(&extra); err != nil {
		return nil, fmt.Errorf("failed to decode extra attributes: %w", err)
	}
	return extra, nil
}

func encodePlatformStatusData(data []domain.PlatformStatusData) (string, error) {
	if data == nil {
		data = []domain.PlatformStatusData{}
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode platform status data: %w", err)
	}
	return string(encoded), nil
}

// buildUpdateSet renders the SET clause for the non-nil fields of update. The returned
// args are followed by the id bound at position len(args)+1.
func buildUpdateSet(update domain.RecommendationUpdate, placeholder placeholderFunc) (string, []any) {
	var assignments []string
	var args []any

	set := func(column string, arg any) {
		args = append(args, arg)
		assignments = append(assignments, column+" = "+placeholder(len(args)))
	}

	if update.Status != nil {
		set("status", string(*update.Status))
	}
	if update.UserID != nil {
		set("user_id", *update.UserID)
	}
	if update.DecisionTime != nil {
		set("decision_time", update.DecisionTime.UTC())
	}
	if update.Reason != nil {
		set("reason", *update.Reason)
	}

	return strings.Join(assignments, ", "), args
}
