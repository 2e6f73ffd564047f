package repositories

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbm "roamly/internal/models/db_models"
)

func TestItineraryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewItineraryRepository(db)
	ctx := t.Context()

	itinerary := &dbm.Itinerary{
		UserID:       uuid.New(),
		Title:        "Istanbul trip",
		Origin:       "Karachi",
		Destination:  "Istanbul",
		DurationDays: 3,
		Budget:       1500,
		TripType:     "Standard",
		Preferences:  []string{"walkable"},
		Interests:    []string{"history", "food"},
		Days: []dbm.ItineraryDay{
			{DayNumber: 1, Title: "Old City", Activities: []string{"Blue Mosque"}, Meals: []string{"Hamdi"}, TransportNotes: "tram"},
		},
		HotelSuggestions: []dbm.HotelSuggestion{},
		Flights:          []dbm.FlightOption{},
		GeneratedBy:      dbm.Provenance{ModelName: "simulator", ModelVersion: "unknown", PromptSnippet: "You are an expert"},
		RawAIResponse:    "raw text",
		GenerationStage:  dbm.StageDays,
	}
	require.NoError(t, repo.Insert(ctx, itinerary))

	got, err := repo.FindByID(ctx, itinerary.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Istanbul trip", got.Title)
	assert.Equal(t, []string{"history", "food"}, got.Interests)
	require.Len(t, got.Days, 1)
	assert.Equal(t, "Old City", got.Days[0].Title)
	assert.Equal(t, "simulator", got.GeneratedBy.ModelName)
	assert.Equal(t, dbm.StageDays, got.GenerationStage)
}

func TestReplaceHotelSuggestions(t *testing.T) {
	db := openTestDB(t)
	repo := NewItineraryRepository(db)
	ctx := t.Context()

	itinerary := &dbm.Itinerary{UserID: uuid.New(), Destination: "Istanbul", GenerationStage: dbm.StageDays}
	require.NoError(t, repo.Insert(ctx, itinerary))

	hotels := []dbm.HotelSuggestion{{Name: "Istanbul Comfort", Stars: 4.2}}
	require.NoError(t, repo.ReplaceHotelSuggestions(ctx, itinerary.ID, hotels, dbm.StageHotels))

	got, err := repo.FindByID(ctx, itinerary.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.HotelSuggestions, 1)
	assert.Equal(t, "Istanbul Comfort", got.HotelSuggestions[0].Name)
	assert.Equal(t, dbm.StageHotels, got.GenerationStage)
}

func TestReplaceFlights(t *testing.T) {
	db := openTestDB(t)
	repo := NewItineraryRepository(db)
	ctx := t.Context()

	itinerary := &dbm.Itinerary{UserID: uuid.New(), Origin: "Karachi", Destination: "Istanbul", GenerationStage: dbm.StageHotels}
	require.NoError(t, repo.Insert(ctx, itinerary))

	flights := []dbm.FlightOption{{FlightNumber: "TK709", Airline: "Turkish Airlines"}}
	require.NoError(t, repo.ReplaceFlights(ctx, itinerary.ID, flights, dbm.StageCompleted))

	got, err := repo.FindByID(ctx, itinerary.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Flights, 1)
	assert.Equal(t, "TK709", got.Flights[0].FlightNumber)
	assert.Equal(t, dbm.StageCompleted, got.GenerationStage)
}

func TestListByUserIDScopedAndOrdered(t *testing.T) {
	db := openTestDB(t)
	repo := NewItineraryRepository(db)
	ctx := t.Context()

	owner, stranger := uuid.New(), uuid.New()
	for _, title := range []string{"first", "second"} {
		require.NoError(t, repo.Insert(ctx, &dbm.Itinerary{UserID: owner, Title: title}))
	}
	require.NoError(t, repo.Insert(ctx, &dbm.Itinerary{UserID: stranger, Title: "other"}))

	got, err := repo.ListByUserID(ctx, owner, 50)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, it := range got {
		assert.Equal(t, owner, it.UserID)
	}

	limited, err := repo.ListByUserID(ctx, owner, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestDeleteItinerary(t *testing.T) {
	db := openTestDB(t)
	repo := NewItineraryRepository(db)
	ctx := t.Context()

	itinerary := &dbm.Itinerary{UserID: uuid.New(), Title: "doomed"}
	require.NoError(t, repo.Insert(ctx, itinerary))

	require.NoError(t, repo.Delete(ctx, itinerary.ID))

	got, err := repo.FindByID(ctx, itinerary.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
