package dto

import (
	"encoding/json"
	"time"

	"github.com/allisson/recommendations/internal/recommendation/domain"
)

// PlatformStatusDataResponse is one platform object in API responses.
type PlatformStatusDataResponse struct {
	ObjectID   string  `json:"object_id"`
	ObjectType string  `json:"object_type"`
	Status     string  `json:"status"`
	Details    *string `json:"details"`
}

// PlatformStatusResponse is platform feedback in API responses.
type PlatformStatusResponse struct {
	ID               int64                        `json:"id"`
	RecommendationID int64                        `json:"recommendation_id"`
	Platform         string                       `json:"platform"`
	Data             []PlatformStatusDataResponse `json:"data"`
}

// RecommendationResponse represents a recommendation in API responses.
// Extension attributes received at ingestion are emitted next to the typed fields;
// a typed field always wins over an extension attribute with the same name.
type RecommendationResponse struct {
	ID               int64                    `json:"id"`
	UUID             string                   `json:"uuid"`
	AccountID        int64                    `json:"account_id"`
	JourneyID        int64                    `json:"journey_id"`
	JourneyName      string                   `json:"journey_name"`
	MediaPlanID      *int64                   `json:"media_plan_id"`
	Type             string                   `json:"type"`
	Version          int                      `json:"version"`
	CreationDate     time.Time                `json:"creation_date"`
	Enabled          bool                     `json:"enabled"`
	Status           string                   `json:"status"`
	UserID           *int64                   `json:"user_id"`
	DecisionTime     *time.Time               `json:"decision_time"`
	Reason           *string                  `json:"reason"`
	Currency         string                   `json:"currency"`
	PlatformStatuses []PlatformStatusResponse `json:"platform_statuses"`

	Extra map[string]any `json:"-"`
}

// MarshalJSON merges Extra into the typed fields.
func (r RecommendationResponse) MarshalJSON() ([]byte, error) {
	type plain RecommendationResponse
	typed, err := json.Marshal(plain(r))
	if err != nil {
		return nil, err
	}
	if len(r.Extra) == 0 {
		return typed, nil
	}

	merged := make(map[string]json.RawMessage, len(r.Extra)+16)
	for key, value := range r.Extra {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		merged[key] = raw
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(typed, &fields); err != nil {
		return nil, err
	}
	for key, value := range fields {
		merged[key] = value
	}
	return json.Marshal(merged)
}

// RecommendationPageResponse is one page of the recommendation listing.
type RecommendationPageResponse struct {
	Page  int                      `json:"page"`
	Pages int                      `json:"pages"`
	Items []RecommendationResponse `json:"items"`
}

// RecommendationPageStateResponse summarizes the listing scope.
type RecommendationPageStateResponse struct {
	ActiveExists bool `json:"active_exists"`
}

// MapRecommendationToResponse converts a recommendation view to an API response.
func MapRecommendationToResponse(view *domain.RecommendationView) RecommendationResponse {
	rec := view.Recommendation
	statuses := make([]PlatformStatusResponse, 0, len(view.PlatformStatuses))
	for _, status := range view.PlatformStatuses {
		statuses = append(statuses, mapPlatformStatus(status))
	}

	return RecommendationResponse{
		ID:               rec.ID,
		UUID:             rec.UUID.String(),
		AccountID:        rec.AccountID,
		JourneyID:        rec.JourneyID,
		JourneyName:      rec.JourneyName,
		MediaPlanID:      rec.MediaPlanID,
		Type:             rec.Type,
		Version:          rec.Version,
		CreationDate:     rec.CreationDate,
		Enabled:          rec.Enabled,
		Status:           string(rec.Status),
		UserID:           rec.UserID,
		DecisionTime:     rec.DecisionTime,
		Reason:           rec.Reason,
		Currency:         rec.Currency,
		PlatformStatuses: statuses,
		Extra:            rec.Extra,
	}
}

// MapRecommendationPageToResponse converts a listing page to an API response.
func MapRecommendationPageToResponse(page *domain.RecommendationPage) RecommendationPageResponse {
	items := make([]RecommendationResponse, 0, len(page.Items))
	for _, view := range page.Items {
		items = append(items, MapRecommendationToResponse(view))
	}
	return RecommendationPageResponse{
		Page:  page.Page,
		Pages: page.Pages,
		Items: items,
	}
}

// MapPageStateToResponse converts a listing state to an API response.
func MapPageStateToResponse(state *domain.RecommendationPageState) RecommendationPageStateResponse {
	return RecommendationPageStateResponse{ActiveExists: state.ActiveExists}
}

func mapPlatformStatus(status *domain.PlatformStatus) PlatformStatusResponse {
	data := make([]PlatformStatusDataResponse, 0, len(status.Data))
	for _, item := range status.Data {
		data = append(data, PlatformStatusDataResponse{
			ObjectID:   item.ObjectID,
			ObjectType: item.ObjectType,
			Status:     string(item.Status),
			Details:    item.Details,
		})
	}
	return PlatformStatusResponse{
		ID:               status.ID,
		RecommendationID: status.RecommendationID,
		Platform:         status.Platform,
		Data:             data,
	}
}
