package persistence

import (
	"testing"

	"github.com/hospicetrack/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupCRMTestDB creates an in-memory SQLite database with the full schema
func setupCRMTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.FacilityModel{},
		&models.ContactModel{},
		&models.DealModel{},
		&models.TaskModel{},
		&models.ActivityModel{},
		&models.UserModel{},
	)
	require.NoError(t, err)

	return db
}
