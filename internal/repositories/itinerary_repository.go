package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "roamly/internal/models/db_models"
)

type ItineraryRepository interface {
	Insert(ctx context.Context, itinerary *dbm.Itinerary) error
	FindByID(ctx context.Context, id uuid.UUID) (*dbm.Itinerary, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]dbm.Itinerary, error)
	ReplaceHotelSuggestions(ctx context.Context, id uuid.UUID, hotels []dbm.HotelSuggestion, stage dbm.GenerationStage) error
	ReplaceFlights(ctx context.Context, id uuid.UUID, flights []dbm.FlightOption, stage dbm.GenerationStage) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) Insert(ctx context.Context, itinerary *dbm.Itinerary) error {
	return r.db.WithContext(ctx).Create(itinerary).Error
}

func (r *itineraryRepository) FindByID(ctx context.Context, id uuid.UUID) (*dbm.Itinerary, error) {
	var itinerary dbm.Itinerary
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&itinerary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &itinerary, nil
}

func (r *itineraryRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]dbm.Itinerary, error) {
	var itineraries []dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&itineraries).Error
	if err != nil {
		return nil, err
	}
	return itineraries, nil
}

// The enrichment calls replace their array wholesale; merging is never done.

func (r *itineraryRepository) ReplaceHotelSuggestions(ctx context.Context, id uuid.UUID, hotels []dbm.HotelSuggestion, stage dbm.GenerationStage) error {
	return r.db.WithContext(ctx).
		Model(&dbm.Itinerary{}).
		Where("id = ?", id).
		Select("HotelSuggestions", "GenerationStage").
		Updates(&dbm.Itinerary{HotelSuggestions: hotels, GenerationStage: stage}).Error
}

func (r *itineraryRepository) ReplaceFlights(ctx context.Context, id uuid.UUID, flights []dbm.FlightOption, stage dbm.GenerationStage) error {
	return r.db.WithContext(ctx).
		Model(&dbm.Itinerary{}).
		Where("id = ?", id).
		Select("Flights", "GenerationStage").
		Updates(&dbm.Itinerary{Flights: flights, GenerationStage: stage}).Error
}

func (r *itineraryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&dbm.Itinerary{}).Error
}
