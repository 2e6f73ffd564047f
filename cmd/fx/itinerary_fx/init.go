package itinerary_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"roamly/internal/repositories"
	"roamly/internal/services"
	"roamly/pkg/aigateway"
)

var Module = fx.Provide(
	provideItineraryService, provideItineraryRepo, providePlanRepo)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func providePlanRepo(db *gorm.DB) repositories.PlanRepository {
	return repositories.NewPlanRepository(db)
}

func provideItineraryService(
	accountRepo repositories.AccountRepository,
	planRepo repositories.PlanRepository,
	itineraryRepo repositories.ItineraryRepository,
	gateway aigateway.Gateway,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(accountRepo, planRepo, itineraryRepo, gateway)
}
