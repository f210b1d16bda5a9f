package timeentryapimodels

import (
	"time"

	"github.com/pkg/errors"

	"timetrack-backend/models"
	dbmodels "timetrack-backend/models/db"
)

type EntryData struct {
	ProjectID string  `json:"project_id"`
	EntryDate string  `json:"entry_date"` // 2006-01-02
	Hours     float64 `json:"hours"`
	Note      string  `json:"note,omitempty"`
}

func (d EntryData) Validate() error {
	if d.ProjectID == "" {
		return errors.New("project is required")
	}
	if _, err := time.Parse("2006-01-02", d.EntryDate); err != nil {
		return errors.New("entry date must be in the format 2006-01-02")
	}
	if d.Hours <= 0 {
		return errors.New("hours must be greater than zero")
	}
	if d.Hours > 24 {
		return errors.New("hours cannot exceed 24 per entry")
	}
	return nil
}

func (d EntryData) Date() time.Time {
	date, _ := time.Parse("2006-01-02", d.EntryDate)
	return date
}

type EntryView struct {
	ID          string            `json:"id"`
	TimesheetID string            `json:"timesheet_id"`
	ProjectID   string            `json:"project_id"`
	EntryDate   string            `json:"entry_date"`
	Hours       float64           `json:"hours"`
	Note        string            `json:"note,omitempty"`
	HourlyRate  float64           `json:"hourly_rate"`
	RateSource  models.RateSource `json:"rate_source"`
	Warning     string            `json:"warning,omitempty"`
}

func EntryConvert(rec dbmodels.TimeEntry) EntryView {
	return EntryView{
		ID:          rec.ID,
		TimesheetID: rec.TimesheetID,
		ProjectID:   rec.ProjectID,
		EntryDate:   rec.EntryDate.Format("2006-01-02"),
		Hours:       rec.Hours,
		Note:        rec.Note,
		HourlyRate:  rec.HourlyRate,
		RateSource:  rec.RateSource,
	}
}
