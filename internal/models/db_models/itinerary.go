package db_models

import (
	"github.com/google/uuid"
)

// GenerationStage tracks how far the incremental enrichment of an itinerary
// has progressed: days first, then hotels and flights by separate calls.
type GenerationStage string

const (
	StageDays      GenerationStage = "days"
	StageHotels    GenerationStage = "hotels"
	StageFlights   GenerationStage = "flights"
	StageCompleted GenerationStage = "completed"
)

// ItineraryDay mirrors the JSON schema the model is instructed to emit.
// Activities are plain text descriptions, at most three per day.
type ItineraryDay struct {
	DayNumber      int      `json:"dayNumber"`
	Title          string   `json:"title"`
	Activities     []string `json:"activities"`
	Meals          []string `json:"meals"`
	TransportNotes string   `json:"transportNotes"`
}

type HotelSuggestion struct {
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Stars        float64  `json:"stars"`
	OpeningHours string   `json:"openingHours"`
	Website      *string  `json:"website"`
	Facilities   []string `json:"facilities"`
	Activities   []string `json:"activities"`
}

type FlightClass struct {
	PriceUSD      float64 `json:"priceUSD"`
	MealsIncluded bool    `json:"mealsIncluded"`
}

type FlightClasses struct {
	Economy  FlightClass `json:"economy"`
	Business FlightClass `json:"business"`
}

type FlightOption struct {
	FlightNumber     string        `json:"flightNumber"`
	Airline          string        `json:"airline"`
	DepartureAirport string        `json:"departureAirport"`
	ArrivalAirport   string        `json:"arrivalAirport"`
	DepartureTime    string        `json:"departureTime"`
	ArrivalTime      string        `json:"arrivalTime"`
	DurationMinutes  int           `json:"durationMinutes"`
	Classes          FlightClasses `json:"classes"`
	Stops            int           `json:"stops"`
	AvailableSeats   int           `json:"availableSeats"`
}

type CostBreakdown struct {
	Flights    float64 `json:"flights"`
	Hotels     float64 `json:"hotels"`
	Food       float64 `json:"food"`
	Transport  float64 `json:"transport"`
	Activities float64 `json:"activities"`
	Other      float64 `json:"other"`
}

// Provenance records which model produced the itinerary and with what prompt.
type Provenance struct {
	ModelName     string `json:"model_name"`
	ModelVersion  string `json:"model_version"`
	PromptSnippet string `json:"prompt_snippet"`
}

type Itinerary struct {
	BaseModel
	UserID       uuid.UUID `gorm:"index" json:"user_id"`
	Title        string    `json:"title"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	DurationDays int       `json:"duration_days"`
	Budget       float64   `json:"budget"`
	TripType     string    `json:"trip_type"`

	Preferences []string `gorm:"serializer:json" json:"preferences"`
	Interests   []string `gorm:"serializer:json" json:"interests"`

	Days             []ItineraryDay    `gorm:"serializer:json" json:"days"`
	HotelSuggestions []HotelSuggestion `gorm:"serializer:json" json:"hotel_suggestions"`
	Flights          []FlightOption    `gorm:"serializer:json" json:"flights"`

	CostBreakdown      CostBreakdown `gorm:"serializer:json" json:"cost_breakdown"`
	TotalEstimatedCost float64       `json:"total_estimated_cost"`

	GeneratedBy Provenance `gorm:"embedded;embeddedPrefix:generated_by_" json:"generated_by"`

	// Raw model response kept for debugging malformed-output incidents.
	// Never surfaced to end users.
	RawAIResponse string `gorm:"type:text" json:"-"`

	GenerationStage GenerationStage `gorm:"default:days" json:"generation_stage"`
}
