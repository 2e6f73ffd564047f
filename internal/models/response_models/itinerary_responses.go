package response_models

// ItinerarySummary is the list-view projection; full documents are returned
// only from the detail and generation endpoints.
type ItinerarySummary struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	DurationDays    int    `json:"duration_days"`
	GenerationStage string `json:"generation_stage"`
	CreatedAt       int64  `json:"created_at"`
}
