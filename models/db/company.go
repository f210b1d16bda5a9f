package dbmodels

import (
	"time"

	"timetrack-backend/models"
)

type Company struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex"`
	// WeekStartDay: 0=Monday .. 6=Sunday
	WeekStartDay int    `gorm:"default:0"`
	Timezone     string `gorm:"type:varchar(50);default:UTC"`
	Settings     *CompanySettings
}

type CompanySettings struct {
	BaseModel
	CompanyID             string                 `gorm:"type:varchar(36);uniqueIndex"`
	UnlockWindowDays      int                    `gorm:"default:7"`
	DailyWarningThreshold int                    `gorm:"default:8"`
	EscalationDays        int                    `gorm:"default:3"`
	EscalationLogic       models.EscalationLogic `gorm:"type:varchar(10);default:OR"`
	DefaultHourlyRate     float64
}

// CompanySettingsAudit keeps the before/after value of every settings change.
// Append-only.
type CompanySettingsAudit struct {
	BaseModel
	CompanySettingsID string `gorm:"type:varchar(36);index"`
	ChangedByID       string `gorm:"type:varchar(36)"`
	FieldName         string `gorm:"type:varchar(100)"`
	OldValue          string
	NewValue          string
}

func (c Company) WeekStartFor(target time.Time) time.Time {
	// time.Weekday has Sunday=0, company setting has Monday=0.
	weekday := (int(target.Weekday()) + 6) % 7
	delta := (weekday - c.WeekStartDay + 7) % 7
	day := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -delta)
}
