package aigateway

import (
	"context"
	"encoding/json"
	"strings"
)

// Simulator returns fixed, valid canned responses without any network call, so
// the full generation flow can run deterministically in development and tests.
// The payload is chosen by the schema markers the prompt builder embeds
// ("hotels" / "flights" envelopes); everything else gets the sample itinerary.
type Simulator struct{}

func NewSimulator() *Simulator {
	return &Simulator{}
}

func (s *Simulator) ModelName() string {
	return "simulator"
}

const simulatedItinerary = `{
  "title": "Simulated 3-day Sample Trip",
  "origin": "Karachi",
  "destination": "Istanbul",
  "durationDays": 3,
  "tripType": "Standard",
  "days": [
    {
      "dayNumber": 1,
      "title": "Arrival & Old City",
      "activities": ["Visit the Blue Mosque", "Shopping and lunch at the Grand Bazaar"],
      "meals": ["Hamdi Restaurant"],
      "transportNotes": "Taxi or tram"
    },
    {
      "dayNumber": 2,
      "title": "Bosphorus cruise",
      "activities": ["Morning Bosphorus cruise", "Walk through Ortakoy"],
      "meals": ["Ciya Sofrasi"],
      "transportNotes": "Ferry"
    },
    {
      "dayNumber": 3,
      "title": "Sultanahmet & Departure",
      "activities": ["Hagia Sophia", "Basilica Cistern"],
      "meals": [],
      "transportNotes": "Tram to airport line"
    }
  ]
}`

const simulatedHotels = `{
  "hotels": [
    {
      "name": "Istanbul Comfort",
      "address": "Old City",
      "stars": 4.2,
      "openingHours": "24/7",
      "website": null,
      "facilities": ["Wi-Fi", "Breakfast"],
      "activities": ["Rooftop yoga"]
    },
    {
      "name": "Bosphorus View Hotel",
      "address": "Karakoy",
      "stars": 4.6,
      "openingHours": "24/7",
      "website": "https://example.com",
      "facilities": ["Gym", "Pool", "Spa"],
      "activities": ["Cooking class"]
    }
  ]
}`

const simulatedFlights = `{
  "flights": [
    {
      "flightNumber": "TK709",
      "airline": "Turkish Airlines",
      "departureAirport": "Jinnah International Airport (KHI)",
      "arrivalAirport": "Istanbul Airport (IST)",
      "departureTime": "2025-11-20T04:45:00",
      "arrivalTime": "2025-11-20T09:10:00",
      "durationMinutes": 385,
      "classes": {
        "economy": { "priceUSD": 520, "mealsIncluded": true },
        "business": { "priceUSD": 1480, "mealsIncluded": true }
      },
      "stops": 0,
      "availableSeats": 42
    }
  ]
}`

func (s *Simulator) Generate(ctx context.Context, prompt string) (*Result, error) {
	payload := simulatedItinerary
	switch {
	case strings.Contains(prompt, `array called "hotels"`):
		payload = simulatedHotels
	case strings.Contains(prompt, `array called "flights"`):
		payload = simulatedFlights
	}

	return &Result{
		Parsed:   json.RawMessage(payload),
		Raw:      "Simulated itinerary JSON",
		Metadata: json.RawMessage(`{"simulated":true}`),
	}, nil
}
