package companyapimodels

import (
	"github.com/pkg/errors"

	"timetrack-backend/models"
	dbmodels "timetrack-backend/models/db"
)

type SettingsView struct {
	CompanyID             string                 `json:"company_id"`
	UnlockWindowDays      int                    `json:"unlock_window_days"`
	DailyWarningThreshold int                    `json:"daily_warning_threshold"`
	EscalationDays        int                    `json:"escalation_days"`
	EscalationLogic       models.EscalationLogic `json:"escalation_logic"`
	DefaultHourlyRate     float64                `json:"default_hourly_rate"`
}

func SettingsConvert(rec dbmodels.CompanySettings) SettingsView {
	return SettingsView{
		CompanyID:             rec.CompanyID,
		UnlockWindowDays:      rec.UnlockWindowDays,
		DailyWarningThreshold: rec.DailyWarningThreshold,
		EscalationDays:        rec.EscalationDays,
		EscalationLogic:       rec.EscalationLogic,
		DefaultHourlyRate:     rec.DefaultHourlyRate,
	}
}

type SettingsUpdateData struct {
	UnlockWindowDays      *int                    `json:"unlock_window_days,omitempty"`
	DailyWarningThreshold *int                    `json:"daily_warning_threshold,omitempty"`
	EscalationDays        *int                    `json:"escalation_days,omitempty"`
	EscalationLogic       *models.EscalationLogic `json:"escalation_logic,omitempty"`
	DefaultHourlyRate     *float64                `json:"default_hourly_rate,omitempty"`
}

func (r SettingsUpdateData) Validate() error {
	if r.UnlockWindowDays != nil && *r.UnlockWindowDays < 0 {
		return errors.New("unlock window days cannot be negative")
	}
	if r.EscalationDays != nil && *r.EscalationDays < 0 {
		return errors.New("escalation days cannot be negative")
	}
	if r.EscalationLogic != nil && !r.EscalationLogic.IsValid() {
		return errors.New("escalation logic must be OR or AND")
	}
	return nil
}
