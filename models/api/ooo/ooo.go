package oooapimodels

import (
	"time"

	"github.com/pkg/errors"

	dbmodels "timetrack-backend/models/db"
)

const dateLayout = "2006-01-02"

type OOOPeriodData struct {
	StartDate string `json:"start_date"` // 2006-01-02
	EndDate   string `json:"end_date"`   // 2006-01-02
}

func (r OOOPeriodData) Validate() error {
	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		return errors.New("invalid start date")
	}
	end, err := time.Parse(dateLayout, r.EndDate)
	if err != nil {
		return errors.New("invalid end date")
	}
	if end.Before(start) {
		return errors.New("end date must be on or after start date")
	}
	return nil
}

func (r OOOPeriodData) Range() (start, end time.Time) {
	start, _ = time.Parse(dateLayout, r.StartDate)
	end, _ = time.Parse(dateLayout, r.EndDate)
	return start, end
}

type OOOPeriodView struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func OOOPeriodConvert(rec dbmodels.OOOPeriod) OOOPeriodView {
	return OOOPeriodView{
		ID:        rec.ID,
		UserID:    rec.UserID,
		StartDate: rec.StartDate.Format(dateLayout),
		EndDate:   rec.EndDate.Format(dateLayout),
	}
}

// CategorizedView groups a user's periods relative to today.
type CategorizedView struct {
	Active []OOOPeriodView `json:"active"`
	Future []OOOPeriodView `json:"future"`
	Past   []OOOPeriodView `json:"past"`
}
