// Package domain defines the recommendation lifecycle models: recommendations, the
// platform statuses reported for them and journey goal updates.
//
// A recommendation is created ACTIVE by ingestion. Users move it to ACCEPTING or
// REJECTED, and ingesting a newer recommendation for the same account and journey
// moves every live one to EXPIRED.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
)

// Recommendation types that are ingested. Other notification types share the topic and are ignored.
const (
	TypeBudget      = "budget"
	TypeNewPlatform = "new_platform"
)

// Recommendation is a stored budget or platform suggestion for one journey of an account.
type Recommendation struct {
	ID           int64
	UUID         uuid.UUID
	AccountID    int64
	JourneyID    int64
	JourneyName  string
	MediaPlanID  *int64
	Type         string
	Version      int
	Currency     string
	CreationDate time.Time
	Enabled      bool
	Status       Status
	// UserID, DecisionTime and Reason are set by accept/reject decisions.
	UserID       *int64
	DecisionTime *time.Time
	Reason       *string
	// Extra holds every event attribute outside the typed fields, stored verbatim.
	Extra map[string]any
}

// OwnedBy reports whether the recommendation belongs to companyID.
func (r *Recommendation) OwnedBy(companyID int64) bool {
	return r.AccountID == companyID
}

// RecommendationUpdate is a partial update; nil fields are left untouched.
type RecommendationUpdate struct {
	Status       *Status
	UserID       *int64
	DecisionTime *time.Time
	Reason       *string
}

// IsEmpty reports whether the update would not change any column.
func (u RecommendationUpdate) IsEmpty() bool {
	return u.Status == nil && u.UserID == nil && u.DecisionTime == nil && u.Reason == nil
}

// Apply copies the non-nil fields of u onto r.
func (r *Recommendation) Apply(u RecommendationUpdate) {
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.UserID != nil {
		r.UserID = u.UserID
	}
	if u.DecisionTime != nil {
		r.DecisionTime = u.DecisionTime
	}
	if u.Reason != nil {
		r.Reason = u.Reason
	}
}

// Notification is the envelope shared by every message on the notifications topic.
type Notification struct {
	Type string `json:"type"`
}

// IsRecommendation reports whether the notification carries a recommendation.
func (n Notification) IsRecommendation() bool {
	return n.Type == TypeBudget || n.Type == TypeNewPlatform
}

// BudgetInfo is the budget section of a recommendation event.
type BudgetInfo struct {
	Currency string `json:"currency"`
}

// RecommendationInput is a recommendation event as published by the recommendation engine.
type RecommendationInput struct {
	UUID        uuid.UUID  `json:"uuid"`
	AccountID   int64      `json:"account_id"`
	JourneyID   int64      `json:"journey_id"`
	JourneyName string     `json:"journey_name"`
	MediaPlanID *int64     `json:"media_plan_id"`
	Type        string     `json:"type"`
	Version     int        `json:"version"`
	Timestamp   int64      `json:"timestamp"`
	BudgetInfo  BudgetInfo `json:"budget_info"`

	Extra map[string]any `json:"-"`
}

// coreKeys are decoded into RecommendationInput fields and never copied to Extra.
var coreKeys = []string{
	"uuid", "account_id", "journey_id", "journey_name", "media_plan_id",
	"type", "version", "timestamp", "budget_info",
}

// ParseRecommendationInput decodes a recommendation event. Attributes outside the typed
// core, including unknown budget_info attributes, are kept in Extra.
func ParseRecommendationInput(data []byte) (*RecommendationInput, error) {
	var input RecommendationInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to decode recommendation: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode recommendation: %w", err)
	}

	budgetInfo, _ := raw["budget_info"].(map[string]any)
	for _, key := range coreKeys {
		delete(raw, key)
	}
	delete(budgetInfo, "currency")
	if len(budgetInfo) > 0 {
		raw["budget_info"] = budgetInfo
	}
	if len(raw) > 0 {
		input.Extra = raw
	}

	return &input, nil
}

// Validate checks the fields required to store the recommendation.
func (i *RecommendationInput) Validate() error {
	return validation.ValidateStruct(i,
		validation.Field(&i.UUID, validation.By(notNilUUID)),
		validation.Field(&i.AccountID, validation.Required, validation.Min(int64(1))),
		validation.Field(&i.JourneyID, validation.Required, validation.Min(int64(1))),
		validation.Field(&i.Type, validation.Required),
		validation.Field(&i.Timestamp, validation.Required),
		validation.Field(&i.BudgetInfo),
	)
}

// Validate checks the budget section.
func (b BudgetInfo) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.Currency, validation.Required),
	)
}

// CreationDate converts the epoch timestamp of the event to UTC.
func (i *RecommendationInput) CreationDate() time.Time {
	return time.Unix(i.Timestamp, 0).UTC()
}

// Recommendation builds the row inserted for the event. The status is always ACTIVE.
func (i *RecommendationInput) Recommendation() *Recommendation {
	return &Recommendation{
		UUID:         i.UUID,
		AccountID:    i.AccountID,
		JourneyID:    i.JourneyID,
		JourneyName:  i.JourneyName,
		MediaPlanID:  i.MediaPlanID,
		Type:         i.Type,
		Version:      i.Version,
		Currency:     i.BudgetInfo.Currency,
		CreationDate: i.CreationDate(),
		Enabled:      true,
		Status:       StatusActive,
		Extra:        i.Extra,
	}
}

func notNilUUID(value interface{}) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}
