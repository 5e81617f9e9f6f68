package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/recommendations/internal/errors"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		status    Status
		canAccept bool
		canReject bool
	}{
		{status: StatusActive, canAccept: true, canReject: true},
		{status: StatusAccepting, canAccept: false, canReject: false},
		{status: StatusRejected, canAccept: false, canReject: false},
		{status: StatusExpired, canAccept: true, canReject: false},
		{status: StatusError, canAccept: true, canReject: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.canAccept, tt.status.CanAccept())
			assert.Equal(t, tt.canReject, tt.status.CanReject())
			assert.True(t, tt.status.Valid())
		})
	}
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("REJECTED")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, status)

	_, err = ParseStatus("rejected")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestLiveStatuses(t *testing.T) {
	assert.Equal(t, []Status{StatusActive, StatusAccepting}, LiveStatuses())
}
