package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbm "roamly/internal/models/db_models"
	"roamly/internal/repositories"
	"roamly/pkg/aigateway"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&dbm.User{},
		&dbm.Plan{},
		&dbm.Itinerary{},
		&dbm.Transaction{},
	))
	return db
}

// seedSubscriber creates a user with an active plan holding the given credit
// balance, snapshot included.
func seedSubscriber(t *testing.T, db *gorm.DB, credits int64) (*dbm.User, *dbm.Plan) {
	t.Helper()
	ctx := context.Background()

	accountRepo := repositories.NewAccountRepository(db)
	planRepo := repositories.NewPlanRepository(db)

	user := &dbm.User{
		Username:     "traveler",
		Name:         "Traveler",
		Email:        "traveler@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, accountRepo.Insert(ctx, user))

	plan := &dbm.Plan{
		Name:              "gold",
		AICredits:         credits,
		CreditCostPerTrip: 10,
		UserID:            user.ID,
	}
	require.NoError(t, planRepo.Insert(ctx, plan))

	user.SubscriptionPlanID = &plan.ID
	user.SubscriptionStatus = dbm.SubStatusActive
	user.SubscriptionCredits = credits
	require.NoError(t, db.WithContext(ctx).Save(user).Error)

	return user, plan
}

// stubGateway plays back a scripted result, recording whether it was called.
type stubGateway struct {
	result *aigateway.Result
	err    error
	calls  int
}

func (s *stubGateway) Generate(ctx context.Context, prompt string) (*aigateway.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubGateway) ModelName() string { return "stub" }

func newItineraryService(db *gorm.DB, gw aigateway.Gateway) ItineraryServiceInterface {
	return NewItineraryService(
		repositories.NewAccountRepository(db),
		repositories.NewPlanRepository(db),
		repositories.NewItineraryRepository(db),
		gw,
	)
}
