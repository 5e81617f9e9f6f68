// Package dto provides data transfer objects for the recommendation endpoints.
package dto

import (
	"strconv"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/allisson/recommendations/internal/recommendation/domain"
	customValidation "github.com/allisson/recommendations/internal/validation"
)

// ListRecommendationsRequest holds the filter query parameters of GET /list.
// Pagination is parsed separately by httputil.ParsePagination.
type ListRecommendationsRequest struct {
	JourneyID string `form:"journey_id"`
	Status    string `form:"status"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
	SortBy    string `form:"sort_by"`
}

// Validate checks the filter parameters. Empty parameters are absent.
func (r *ListRecommendationsRequest) Validate() error {
	statuses := make([]string, 0, len(domain.Statuses))
	for _, status := range domain.Statuses {
		statuses = append(statuses, string(status))
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.JourneyID, customValidation.PositiveID),
		validation.Field(&r.Status, customValidation.OneOf(statuses...)),
		validation.Field(&r.DateFrom, customValidation.Date),
		validation.Field(&r.DateTo, customValidation.Date),
		validation.Field(&r.SortBy, customValidation.OneOf(string(domain.SortByStatusDate), string(domain.SortByDate))),
	)
}

// ToPageQuery converts a validated request into a domain query.
func (r *ListRecommendationsRequest) ToPageQuery(page, pageSize int) domain.PageQuery {
	query := domain.PageQuery{
		JourneyID: parseOptionalID(r.JourneyID),
		Page:      page,
		PageSize:  pageSize,
		DateFrom:  parseOptionalDate(r.DateFrom),
		DateTo:    parseOptionalDate(r.DateTo),
		SortBy:    domain.SortByStatusDate,
	}
	if r.Status != "" {
		status := domain.Status(r.Status)
		query.Status = &status
	}
	if r.SortBy != "" {
		query.SortBy = domain.SortBy(r.SortBy)
	}
	return query
}

// PageStateRequest holds the query parameters of GET /list/state.
type PageStateRequest struct {
	JourneyID string `form:"journey_id"`
}

// Validate checks the journey filter.
func (r *PageStateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.JourneyID, customValidation.PositiveID),
	)
}

// JourneyIDValue returns the journey filter, nil when absent.
func (r *PageStateRequest) JourneyIDValue() *int64 {
	return parseOptionalID(r.JourneyID)
}

// RejectRecommendationRequest is the body of POST /:id/reject.
type RejectRecommendationRequest struct {
	Reason *string `json:"reason"`
}

// NormalizedReason returns the reason, nil when absent or empty.
func (r *RejectRecommendationRequest) NormalizedReason() *string {
	if r.Reason == nil || *r.Reason == "" {
		return nil
	}
	return r.Reason
}

func parseOptionalID(s string) *int64 {
	if s == "" {
		return nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	date, err := time.Parse(customValidation.DateLayout, s)
	if err != nil {
		return nil
	}
	return &date
}
