package dbmodels

import (
	"time"

	"timetrack-backend/models"
)

// Timesheet is the weekly approval unit, one per (user, week start).
type Timesheet struct {
	BaseModel
	UserID    string                 `gorm:"type:varchar(36);uniqueIndex:idx_timesheet_user_week"`
	User      *User                  `gorm:"foreignKey:UserID"`
	WeekStart time.Time              `gorm:"type:date;uniqueIndex:idx_timesheet_user_week"`
	Status    models.TimesheetStatus `gorm:"type:varchar(20);default:DRAFT;index"`

	SubmittedAt  *time.Time
	ApprovedAt   *time.Time
	ApprovedByID *string `gorm:"type:varchar(36)"`
	ApprovedBy   *User   `gorm:"foreignKey:ApprovedByID"`
	LockedAt     *time.Time

	Entries  []TimeEntry        `gorm:"foreignKey:TimesheetID"`
	Comments []TimesheetComment `gorm:"foreignKey:TimesheetID"`
}

type TimeEntry struct {
	BaseModel
	TimesheetID string    `gorm:"type:varchar(36);index"`
	UserID      string    `gorm:"type:varchar(36);index"`
	ProjectID   string    `gorm:"type:varchar(36);index"`
	Project     *Project  `gorm:"foreignKey:ProjectID"`
	EntryDate   time.Time `gorm:"type:date"`
	Hours       float64
	Note        string
	HourlyRate  float64
	RateSource  models.RateSource `gorm:"type:varchar(20)"`
}

// TimesheetComment is the rejection conversation; a comment may point at one
// entry of the same timesheet or at the timesheet as a whole.
type TimesheetComment struct {
	BaseModel
	TimesheetID string  `gorm:"type:varchar(36);index"`
	EntryID     *string `gorm:"type:varchar(36)"`
	AuthorID    string  `gorm:"type:varchar(36)"`
	Author      *User   `gorm:"foreignKey:AuthorID"`
	Text        string
}

// AdminOverride is an append-only audit row for admin unlock/force actions.
type AdminOverride struct {
	BaseModel
	TimesheetID    string                `gorm:"type:varchar(36);index"`
	Timesheet      *Timesheet            `gorm:"foreignKey:TimesheetID"`
	AdminID        string                `gorm:"type:varchar(36);index"`
	Admin          *User                 `gorm:"foreignKey:AdminID"`
	Action         models.OverrideAction `gorm:"type:varchar(20)"`
	Reason         string
	PreviousStatus models.TimesheetStatus `gorm:"type:varchar(20)"`
}
