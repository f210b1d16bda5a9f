package delegationapimodels

import (
	"time"

	"github.com/pkg/errors"

	dbmodels "timetrack-backend/models/db"
)

const dateLayout = "2006-01-02"

type DelegationData struct {
	DelegateID string `json:"delegate_id"`
	StartDate  string `json:"start_date"` // 2006-01-02
	EndDate    string `json:"end_date"`   // 2006-01-02
}

func (r DelegationData) Validate() error {
	if r.DelegateID == "" {
		return errors.New("delegate is required")
	}
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

func (r DelegationData) Range() (start, end time.Time) {
	start, _ = time.Parse(dateLayout, r.StartDate)
	end, _ = time.Parse(dateLayout, r.EndDate)
	return start, end
}

type DelegationView struct {
	ID          string `json:"id"`
	DelegatorID string `json:"delegator_id"`
	DelegateID  string `json:"delegate_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func DelegationConvert(rec dbmodels.ApprovalDelegation) DelegationView {
	return DelegationView{
		ID:          rec.ID,
		DelegatorID: rec.DelegatorID,
		DelegateID:  rec.DelegateID,
		StartDate:   rec.StartDate.Format(dateLayout),
		EndDate:     rec.EndDate.Format(dateLayout),
	}
}
