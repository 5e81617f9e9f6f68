package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		pageSize int
		total    int64
		expected int
	}{
		{pageSize: 20, total: 41, expected: 3},
		{pageSize: 20, total: 40, expected: 2},
		{pageSize: 20, total: 1, expected: 1},
		{pageSize: 20, total: 0, expected: 1},
		{pageSize: 100, total: 250, expected: 3},
		{pageSize: 0, total: 10, expected: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, TotalPages(tt.pageSize, tt.total), "pageSize=%d total=%d", tt.pageSize, tt.total)
	}
}

func TestPageQuery(t *testing.T) {
	journeyID := int64(8110)
	status := StatusActive
	query := PageQuery{JourneyID: &journeyID, Page: 3, PageSize: 20, Status: &status, SortBy: SortByDate}

	assert.Equal(t, 40, query.Offset())

	filter := query.Filter(261)
	assert.Equal(t, int64(261), filter.AccountID)
	assert.Equal(t, &journeyID, filter.JourneyID)
	assert.Equal(t, &status, filter.Status)
	assert.Nil(t, filter.DateFrom)

	assert.Equal(t, 0, PageQuery{Page: 0, PageSize: 20}.Offset())
}

func TestPageQuery_OffsetSaturates(t *testing.T) {
	query := PageQuery{Page: math.MaxInt/100 + 2, PageSize: 100}
	assert.Equal(t, math.MaxInt, query.Offset())

	last := PageQuery{Page: math.MaxInt/100 + 1, PageSize: 100}
	assert.GreaterOrEqual(t, last.Offset(), 0)
}
