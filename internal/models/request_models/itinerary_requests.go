package request_models

// GenerateItineraryRequest carries the trip parameters for a full generation.
// Validation beyond binding tags (origin-or-destination) lives in the service.
type GenerateItineraryRequest struct {
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	DurationDays int      `json:"duration_days"`
	Budget       float64  `json:"budget"`
	TripType     string   `json:"trip_type"`
	Preferences  []string `json:"preferences"`
	Interests    []string `json:"interests"`
	Title        string   `json:"title"`
}
