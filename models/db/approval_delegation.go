package dbmodels

import "time"

// ApprovalDelegation grants the delegator's approval authority to the
// delegate for the inclusive [StartDate, EndDate] range.
type ApprovalDelegation struct {
	BaseModel
	DelegatorID string    `gorm:"type:varchar(36);index"`
	Delegator   *User     `gorm:"foreignKey:DelegatorID"`
	DelegateID  string    `gorm:"type:varchar(36);index"`
	Delegate    *User     `gorm:"foreignKey:DelegateID"`
	StartDate   time.Time `gorm:"type:date"`
	EndDate     time.Time `gorm:"type:date"`
}

func (d ApprovalDelegation) IsActive(asOf time.Time) bool {
	return !asOf.Before(d.StartDate) && !asOf.After(d.EndDate)
}
