package repositories

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbm "roamly/internal/models/db_models"
)

// openTestDB gives each test an isolated in-memory database. A single
// connection keeps concurrent writers serialized the way the conditional
// UPDATE expects.
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
