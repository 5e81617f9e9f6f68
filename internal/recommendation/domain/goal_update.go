package domain

import (
	"encoding/json"
	"fmt"
	"time"

	validation "github.com/jellydator/validation"
)

// GoalUpdate records when the goals of a journey were changed.
type GoalUpdate struct {
	ID        int64
	JourneyID int64
	UpdatedAt time.Time
}

// GoalUpdateInput is a goal update event. Journeys are called campaign collections upstream.
type GoalUpdateInput struct {
	JourneyID int64
	UpdatedAt time.Time
}

// goalUpdateTimeLayouts are tried in order; timestamps without offset are UTC.
var goalUpdateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON decodes campaign_collection_id and updated_at.
func (i *GoalUpdateInput) UnmarshalJSON(data []byte) error {
	var aux struct {
		CampaignCollectionID int64  `json:"campaign_collection_id"`
		UpdatedAt            string `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	i.JourneyID = aux.CampaignCollectionID
	i.UpdatedAt = time.Time{}
	if aux.UpdatedAt == "" {
		return nil
	}
	for _, layout := range goalUpdateTimeLayouts {
		if t, err := time.Parse(layout, aux.UpdatedAt); err == nil {
			i.UpdatedAt = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid updated_at %q", aux.UpdatedAt)
}

// ParseGoalUpdateInput decodes a goal update event.
func ParseGoalUpdateInput(data []byte) (*GoalUpdateInput, error) {
	var input GoalUpdateInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to decode goal update: %w", err)
	}
	return &input, nil
}

// Validate checks that both the journey and the timestamp are present.
func (i *GoalUpdateInput) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.JourneyID, validation.Required, validation.Min(int64(1))),
		validation.Field(&i.UpdatedAt, validation.Required),
	)
}

// GoalUpdate builds the row inserted for the event.
func (i *GoalUpdateInput) GoalUpdate() *GoalUpdate {
	return &GoalUpdate{JourneyID: i.JourneyID, UpdatedAt: i.UpdatedAt}
}
