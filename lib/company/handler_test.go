package companyhandler

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timetrack-backend/models"
	companyapimodels "timetrack-backend/models/api/company"
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
		&dbmodels.CompanySettingsAudit{},
	))
	return conn
}

func createCompany(t *testing.T, conn *gorm.DB) dbmodels.Company {
	t.Helper()
	company := dbmodels.Company{Name: "Acme " + uuid.NewString()}
	require.NoError(t, conn.Create(&company).Error)
	require.NoError(t, conn.Create(&dbmodels.CompanySettings{
		CompanyID:             company.ID,
		UnlockWindowDays:      7,
		DailyWarningThreshold: 8,
		EscalationDays:        3,
		EscalationLogic:       models.EscalationLogicOr,
		DefaultHourlyRate:     40,
	}).Error)
	return company
}

func intPtr(v int) *int { return &v }

func TestUpdateSettings(t *testing.T) {
	adminID := uuid.NewString()

	t.Run(`changed fields are updated and audited`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn)
		handler := newImpl(conn)

		logic := models.EscalationLogicAnd
		err := handler.UpdateSettings(company.ID, adminID, companyapimodels.SettingsUpdateData{
			EscalationDays:  intPtr(5),
			EscalationLogic: &logic,
		})
		require.NoError(t, err)

		view, err := handler.GetSettingsView(company.ID)
		require.NoError(t, err)
		require.Equal(t, 5, view.EscalationDays)
		require.Equal(t, models.EscalationLogicAnd, view.EscalationLogic)
		require.Equal(t, 7, view.UnlockWindowDays)

		audits := []dbmodels.CompanySettingsAudit{}
		require.NoError(t, conn.Find(&audits).Error)
		require.Len(t, audits, 2)
		fields := map[string]bool{}
		for _, audit := range audits {
			fields[audit.FieldName] = true
			require.Equal(t, adminID, audit.ChangedByID)
		}
		require.True(t, fields["escalation_days"])
		require.True(t, fields["escalation_logic"])
	})

	t.Run(`no-op update writes no audit rows`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn)
		handler := newImpl(conn)

		err := handler.UpdateSettings(company.ID, adminID, companyapimodels.SettingsUpdateData{
			EscalationDays: intPtr(3),
		})
		require.NoError(t, err)

		var count int64
		require.NoError(t, conn.Model(&dbmodels.CompanySettingsAudit{}).Count(&count).Error)
		require.Zero(t, count)
	})

	t.Run(`invalid logic is refused by validation`, func(t *testing.T) {
		data := companyapimodels.SettingsUpdateData{}
		bad := models.EscalationLogic("MAYBE")
		data.EscalationLogic = &bad
		require.Error(t, data.Validate())
	})
}
