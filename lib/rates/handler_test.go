package rateshandler

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timetrack-backend/models"
	dbmodels "timetrack-backend/models/db"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&dbmodels.Company{},
		&dbmodels.CompanySettings{},
		&dbmodels.EmployeeProjectRate{},
		&dbmodels.ProjectRate{},
		&dbmodels.EmployeeRate{},
	))
	return conn
}

func TestResolve(t *testing.T) {
	conn := setupTestDB(t)
	handler := newImpl(conn)

	company := dbmodels.Company{Name: "Acme " + uuid.NewString()}
	require.NoError(t, conn.Create(&company).Error)
	require.NoError(t, conn.Create(&dbmodels.CompanySettings{
		CompanyID:         company.ID,
		DefaultHourlyRate: 40,
	}).Error)

	userID := uuid.NewString()
	projectID := uuid.NewString()

	t.Run(`company default when nothing more specific exists`, func(t *testing.T) {
		rate, source, err := handler.Resolve(userID, projectID, company.ID)
		require.NoError(t, err)
		require.Equal(t, 40.0, rate)
		require.Equal(t, models.RateSourceCompany, source)
	})

	t.Run(`employee rate beats the company default`, func(t *testing.T) {
		require.NoError(t, conn.Create(&dbmodels.EmployeeRate{UserID: userID, HourlyRate: 55}).Error)
		rate, source, err := handler.Resolve(userID, projectID, company.ID)
		require.NoError(t, err)
		require.Equal(t, 55.0, rate)
		require.Equal(t, models.RateSourceEmployee, source)
	})

	t.Run(`project rate beats the employee rate`, func(t *testing.T) {
		require.NoError(t, conn.Create(&dbmodels.ProjectRate{ProjectID: projectID, HourlyRate: 65}).Error)
		rate, source, err := handler.Resolve(userID, projectID, company.ID)
		require.NoError(t, err)
		require.Equal(t, 65.0, rate)
		require.Equal(t, models.RateSourceProject, source)
	})

	t.Run(`employee-project rate beats everything`, func(t *testing.T) {
		require.NoError(t, conn.Create(&dbmodels.EmployeeProjectRate{UserID: userID, ProjectID: projectID, HourlyRate: 80}).Error)
		rate, source, err := handler.Resolve(userID, projectID, company.ID)
		require.NoError(t, err)
		require.Equal(t, 80.0, rate)
		require.Equal(t, models.RateSourceEmployeeProject, source)
	})

	t.Run(`missing settings fall back to zero`, func(t *testing.T) {
		rate, source, err := handler.Resolve(uuid.NewString(), uuid.NewString(), uuid.NewString())
		require.NoError(t, err)
		require.Equal(t, 0.0, rate)
		require.Equal(t, models.RateSourceCompany, source)
	})
}
