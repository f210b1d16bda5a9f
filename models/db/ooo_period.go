package dbmodels

import "time"

// OOOPeriod is an inclusive [StartDate, EndDate] absence range.
// Constraint (enforced in lib/ooo, not by the schema): at most one period
// covering today and one starting after today per user.
type OOOPeriod struct {
	BaseModel
	UserID    string    `gorm:"type:varchar(36);index"`
	User      *User     `gorm:"foreignKey:UserID"`
	StartDate time.Time `gorm:"type:date"`
	EndDate   time.Time `gorm:"type:date"`
}

// Covers reports whether date falls inside the period, both ends inclusive.
func (p OOOPeriod) Covers(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}
