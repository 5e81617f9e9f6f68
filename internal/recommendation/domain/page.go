package domain

import (
	"math"
	"time"
)

// SortBy selects the ordering of a recommendation listing.
type SortBy string

// Listing orders.
const (
	// SortByStatusDate lists ACTIVE recommendations first, then newest first.
	SortByStatusDate SortBy = "status_date"
	// SortByDate lists newest first.
	SortByDate SortBy = "date"
)

// ListFilter is the predicate shared by listing and counting recommendations.
type ListFilter struct {
	AccountID int64
	JourneyID *int64
	// DateFrom is inclusive.
	DateFrom *time.Time
	// DateTo is inclusive of the whole day.
	DateTo *time.Time
	Status *Status
}

// PageQuery is a listing request made on behalf of a user.
type PageQuery struct {
	JourneyID *int64
	Page      int
	PageSize  int
	Status    *Status
	DateFrom  *time.Time
	DateTo    *time.Time
	SortBy    SortBy
}

// Filter scopes the query to accountID.
func (q PageQuery) Filter(accountID int64) ListFilter {
	return ListFilter{
		AccountID: accountID,
		JourneyID: q.JourneyID,
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
		Status:    q.Status,
	}
}

// Offset returns the number of rows skipped before the requested page. It saturates at
// math.MaxInt instead of overflowing, which yields an empty page.
func (q PageQuery) Offset() int {
	if q.Page < 1 || q.PageSize < 1 {
		return 0
	}
	if q.Page-1 > math.MaxInt/q.PageSize {
		return math.MaxInt
	}
	return (q.Page - 1) * q.PageSize
}

// RecommendationView is a recommendation with its non-void platform statuses, newest first.
type RecommendationView struct {
	*Recommendation
	PlatformStatuses []*PlatformStatus
}

// RecommendationPage is one page of a recommendation listing.
type RecommendationPage struct {
	Page  int
	Pages int
	Items []*RecommendationView
}

// RecommendationPageState summarizes the listing scope.
type RecommendationPageState struct {
	ActiveExists bool
}

// TotalPages returns ceil(total/pageSize), never less than one.
func TotalPages(pageSize int, total int64) int {
	if pageSize < 1 || total <= 0 {
		return 1
	}
	return int((total-1)/int64(pageSize)) + 1
}
