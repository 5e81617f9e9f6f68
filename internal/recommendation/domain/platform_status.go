package domain

import (
	"encoding/json"
	"fmt"

	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/recommendations/internal/validation"
)

// PlatformItemStatus is the execution state of one object on an advertising platform.
type PlatformItemStatus string

// Platform item statuses.
const (
	PlatformItemPending PlatformItemStatus = "pending"
	PlatformItemSuccess PlatformItemStatus = "success"
	PlatformItemError   PlatformItemStatus = "error"
)

// PlatformStatusData describes one platform object touched by a recommendation.
type PlatformStatusData struct {
	ObjectID   string             `json:"object_id"`
	ObjectType string             `json:"object_type"`
	Status     PlatformItemStatus `json:"status"`
	Details    *string            `json:"details"`
}

// Validate checks a single status item.
func (d PlatformStatusData) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ObjectID, validation.Required),
		validation.Field(&d.ObjectType, validation.Required),
		validation.Field(&d.Status, validation.Required, validation.In(
			PlatformItemPending, PlatformItemSuccess, PlatformItemError,
		)),
	)
}

// PlatformStatus is execution feedback from one platform for a recommendation.
// Statuses are append-only; readers reduce them newest first.
type PlatformStatus struct {
	ID               int64
	RecommendationID int64
	Platform         string
	Data             []PlatformStatusData
}

// IsVoid reports whether the status carries no items. Void statuses are never shown.
func (p *PlatformStatus) IsVoid() bool {
	return len(p.Data) == 0
}

// PlatformStatusInput is a platform status event. ID references the recommendation.
type PlatformStatusInput struct {
	ID       *int64               `json:"id"`
	Platform string               `json:"platform"`
	Data     []PlatformStatusData `json:"data"`
}

// ParsePlatformStatusInput decodes a platform status event.
func ParsePlatformStatusInput(data []byte) (*PlatformStatusInput, error) {
	var input PlatformStatusInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to decode platform status: %w", err)
	}
	return &input, nil
}

// HasRecommendationID reports whether the event references a recommendation.
func (i *PlatformStatusInput) HasRecommendationID() bool {
	return i.ID != nil && *i.ID != 0
}

// Validate checks the platform and every item. An empty data list is valid and stored as void.
func (i *PlatformStatusInput) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.Platform, validation.Required, appValidation.NotBlank),
		validation.Field(&i.Data, validation.NotNil),
	)
}

// PlatformStatus builds the row inserted for the event.
func (i *PlatformStatusInput) PlatformStatus() *PlatformStatus {
	var recommendationID int64
	if i.ID != nil {
		recommendationID = *i.ID
	}
	return &PlatformStatus{
		RecommendationID: recommendationID,
		Platform:         i.Platform,
		Data:             i.Data,
	}
}

// PlatformStatusFilter selects platform statuses. At least one field must be set.
// A non-nil empty RecommendationIDs matches nothing.
type PlatformStatusFilter struct {
	RecommendationID  *int64
	RecommendationIDs []int64
	Platform          *string
}

// IsEmpty reports whether no filter is set.
func (f PlatformStatusFilter) IsEmpty() bool {
	return f.RecommendationID == nil && f.RecommendationIDs == nil && f.Platform == nil
}
