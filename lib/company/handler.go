package companyhandler

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"timetrack-backend/db"
	companystore "timetrack-backend/lib/company/store"
	companyapimodels "timetrack-backend/models/api/company"
	dbmodels "timetrack-backend/models/db"
)

// Provider exposes per-company settings (unlock window, escalation rules) to
// the approval engine and the settings API.
type Provider interface {
	GetByID(companyID string) (rec *dbmodels.Company, err error)
	Settings(companyID string) (rec *dbmodels.CompanySettings, err error)
	GetSettingsView(companyID string) (view companyapimodels.SettingsView, err error)
	UpdateSettings(companyID, userID string, data companyapimodels.SettingsUpdateData) error
}

var Instance Provider

func NewHandler() {
	Instance = newImpl(db.DB)
}

func newImpl(DB *gorm.DB) impl {
	return impl{
		store: companystore.NewInstance(DB),
	}
}

type impl struct {
	store companystore.Provider
}

func (i impl) GetByID(companyID string) (*dbmodels.Company, error) {
	rec, err := i.store.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("company not found")
	}
	return rec, nil
}

func (i impl) Settings(companyID string) (*dbmodels.CompanySettings, error) {
	rec, err := i.store.GetSettings(companyID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("company settings not found")
	}
	return rec, nil
}

func (i impl) GetSettingsView(companyID string) (companyapimodels.SettingsView, error) {
	rec, err := i.Settings(companyID)
	if err != nil {
		return companyapimodels.SettingsView{}, err
	}
	return companyapimodels.SettingsConvert(*rec), nil
}

func (i impl) UpdateSettings(companyID, userID string, data companyapimodels.SettingsUpdateData) error {
	logger := log.
		WithField("company_id", companyID).
		WithField("user_id", userID)
	current, err := i.Settings(companyID)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{}
	audits := []dbmodels.CompanySettingsAudit{}
	addChange := func(field string, oldValue, newValue interface{}) {
		updMap[field] = newValue
		audits = append(audits, dbmodels.CompanySettingsAudit{
			CompanySettingsID: current.ID,
			ChangedByID:       userID,
			FieldName:         field,
			OldValue:          fmt.Sprintf("%v", oldValue),
			NewValue:          fmt.Sprintf("%v", newValue),
		})
	}
	if data.UnlockWindowDays != nil && *data.UnlockWindowDays != current.UnlockWindowDays {
		addChange("unlock_window_days", current.UnlockWindowDays, *data.UnlockWindowDays)
	}
	if data.DailyWarningThreshold != nil && *data.DailyWarningThreshold != current.DailyWarningThreshold {
		addChange("daily_warning_threshold", current.DailyWarningThreshold, *data.DailyWarningThreshold)
	}
	if data.EscalationDays != nil && *data.EscalationDays != current.EscalationDays {
		addChange("escalation_days", current.EscalationDays, *data.EscalationDays)
	}
	if data.EscalationLogic != nil && *data.EscalationLogic != current.EscalationLogic {
		addChange("escalation_logic", current.EscalationLogic, *data.EscalationLogic)
	}
	if data.DefaultHourlyRate != nil && *data.DefaultHourlyRate != current.DefaultHourlyRate {
		addChange("default_hourly_rate", current.DefaultHourlyRate, *data.DefaultHourlyRate)
	}
	if len(updMap) == 0 {
		return nil
	}
	err = i.store.UpdateSettings(companyID, updMap)
	if err != nil {
		logger.WithError(err).Error("settings update error")
		return err
	}
	for _, audit := range audits {
		if err = i.store.CreateAudit(audit); err != nil {
			logger.WithError(err).Error("settings audit write error")
		}
	}
	logger.Info("company settings updated")
	return nil
}
