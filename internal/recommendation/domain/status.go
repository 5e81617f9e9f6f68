package domain

import (
	"github.com/allisson/recommendations/internal/errors"
)

// Status is the lifecycle state of a recommendation.
type Status string

// Recommendation statuses.
const (
	StatusActive    Status = "ACTIVE"
	StatusAccepting Status = "ACCEPTING"
	StatusRejected  Status = "REJECTED"
	StatusExpired   Status = "EXPIRED"
	StatusError     Status = "ERROR"
)

// Statuses lists every valid status.
var Statuses = []Status{StatusActive, StatusAccepting, StatusRejected, StatusExpired, StatusError}

// ParseStatus converts s into a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", errors.Wrapf(errors.ErrInvalidInput, "unknown recommendation status %q", s)
	}
	return status, nil
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusAccepting, StatusRejected, StatusExpired, StatusError:
		return true
	}
	return false
}

// CanAccept reports whether an accept decision moves s to ACCEPTING.
// ERROR is recoverable and EXPIRED recommendations can still be applied.
func (s Status) CanAccept() bool {
	switch s {
	case StatusActive, StatusError, StatusExpired:
		return true
	}
	return false
}

// CanReject reports whether a reject decision moves s to REJECTED.
func (s Status) CanReject() bool {
	switch s {
	case StatusActive, StatusError:
		return true
	}
	return false
}

// LiveStatuses lists the statuses expired when a newer recommendation arrives for the
// same journey.
func LiveStatuses() []Status {
	return []Status{StatusActive, StatusAccepting}
}

func (s Status) String() string {
	return string(s)
}
