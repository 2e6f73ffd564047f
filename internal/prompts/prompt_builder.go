// Package prompts turns structured trip parameters into model-ready text.
// Everything here is pure: no network, no persistence, no clocks.
package prompts

import (
	"fmt"
	"strings"
)

// Kind selects the instruction template and the JSON schema the model is
// asked to produce. The three kinds share one orchestration shape but differ
// in schema and credit cost.
type Kind string

const (
	KindItinerary Kind = "itinerary"
	KindHotels    Kind = "hotels"
	KindFlights   Kind = "flights"
)

// Input is the superset of parameters the templates draw from. Hotel prompts
// read only Destination; flight prompts read Origin and Destination.
type Input struct {
	Origin       string
	Destination  string
	DurationDays int
	Budget       float64
	TripType     string
	Preferences  []string
	Interests    []string
}

// Build renders the prompt for the given generation kind.
func Build(kind Kind, in Input) string {
	switch kind {
	case KindHotels:
		return buildHotelPrompt(in.Destination)
	case KindFlights:
		return buildFlightPrompt(in.Origin, in.Destination)
	default:
		return buildItineraryPrompt(in)
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func buildItineraryPrompt(in Input) string {
	tripType := in.TripType
	if tripType == "" {
		tripType = "Standard"
	}

	var b strings.Builder
	b.WriteString("You are an expert travel planner AI.\n\n")
	b.WriteString("User details:\n")
	fmt.Fprintf(&b, "- Origin: %s\n", orNA(in.Origin))
	fmt.Fprintf(&b, "- Destination: %s\n", orNA(in.Destination))
	fmt.Fprintf(&b, "- Duration: %d days\n", in.DurationDays)
	fmt.Fprintf(&b, "- Trip type: %s\n", tripType)
	fmt.Fprintf(&b, "- Budget: %.0f (U.S. Dollars (USD $))\n", in.Budget)
	fmt.Fprintf(&b, "- Preferences: %s\n", strings.Join(in.Preferences, ", "))
	fmt.Fprintf(&b, "- Interests: %s\n", strings.Join(in.Interests, ", "))

	b.WriteString(`
Your job:
Generate a complete travel itinerary in valid JSON format only, following this structure:

{
  "title": string,
  "origin": string,
  "destination": string,
  "durationDays": number,
  "tripType": string,
  "days": [
    {
      "dayNumber": number,
      "title": string,
      "activities": [string],
      "meals": [string],
      "transportNotes": string
    }
  ]
}

Important:
- Return strictly valid JSON only.
- The activities array must contain only simple text descriptions (no objects, no extra fields like location, cost, booking).
- Each day can have maximum 3 activities.
- All object keys and arrays must be properly closed with commas.
- If any value is unknown, use null.
- No extra text, markdown, or explanation.
- Return JSON that can be parsed directly.
`)
	return b.String()
}

func buildHotelPrompt(destination string) string {
	var b strings.Builder
	b.WriteString("You are an expert travel planner AI.\n\n")
	fmt.Fprintf(&b, "Destination: %s\n", orNA(destination))
	b.WriteString(`
Generate a list of 5 hotels in valid JSON format only. Each hotel must follow this structure:

{
  "name": string,
  "address": string,
  "stars": number,
  "openingHours": string,
  "website": string or null,
  "facilities": [string],
  "activities": [string]
}

Return strictly valid JSON with an array called "hotels" and no extra text, no markdown. If any value is unknown, use null. Example:

{
  "hotels": [
    {
      "name": "Hotel Name",
      "address": "Full address",
      "stars": 5,
      "openingHours": "24/7",
      "website": "https://example.com",
      "facilities": ["Gym", "Pool"],
      "activities": ["Yoga", "Cooking class"]
    }
  ]
}
`)
	return b.String()
}

func buildFlightPrompt(origin, destination string) string {
	var b strings.Builder
	b.WriteString("You are an expert travel planner AI.\n\n")
	b.WriteString("User travel details:\n")
	fmt.Fprintf(&b, "- Origin: %s\n", orNA(origin))
	fmt.Fprintf(&b, "- Destination: %s\n", orNA(destination))
	b.WriteString(`
Generate a list of 5 available flights in valid JSON format only. Each flight must follow this structure:

{
  "flightNumber": string,
  "airline": string,
  "departureAirport": string,
  "arrivalAirport": string,
  "departureTime": string,
  "arrivalTime": string,
  "durationMinutes": number,
  "classes": {
    "economy": { "priceUSD": number, "mealsIncluded": boolean },
    "business": { "priceUSD": number, "mealsIncluded": boolean }
  },
  "stops": number,
  "availableSeats": number
}

Return strictly valid JSON with an array called "flights". No extra text, no markdown. If any value is unknown, use null.
`)
	return b.String()
}
