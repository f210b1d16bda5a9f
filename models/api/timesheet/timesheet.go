package tsapimodels

import (
	"time"

	"github.com/pkg/errors"

	"timetrack-backend/models"
	apimodels "timetrack-backend/models/api"
	dbmodels "timetrack-backend/models/db"
)

type UserView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func UserConvert(rec *dbmodels.User) *UserView {
	if rec == nil {
		return nil
	}
	return &UserView{
		ID:        rec.ID,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
	}
}

type TimesheetView struct {
	ID          string                 `json:"id"`
	User        *UserView              `json:"user"`
	WeekStart   string                 `json:"week_start"`
	Status      models.TimesheetStatus `json:"status"`
	SubmittedAt *time.Time             `json:"submitted_at,omitempty"`
	ApprovedAt  *time.Time             `json:"approved_at,omitempty"`
	ApprovedBy  *UserView              `json:"approved_by,omitempty"`
	LockedAt    *time.Time             `json:"locked_at,omitempty"`
	TotalHours  float64                `json:"total_hours"`
	Comments    []CommentView          `json:"comments,omitempty"`
}

type CommentView struct {
	ID        string    `json:"id"`
	EntryID   *string   `json:"entry_id,omitempty"`
	Author    *UserView `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func TimesheetConvert(rec dbmodels.Timesheet) TimesheetView {
	view := TimesheetView{
		ID:          rec.ID,
		User:        UserConvert(rec.User),
		WeekStart:   rec.WeekStart.Format("2006-01-02"),
		Status:      rec.Status,
		SubmittedAt: rec.SubmittedAt,
		ApprovedAt:  rec.ApprovedAt,
		ApprovedBy:  UserConvert(rec.ApprovedBy),
		LockedAt:    rec.LockedAt,
	}
	for _, entry := range rec.Entries {
		view.TotalHours += entry.Hours
	}
	for _, comment := range rec.Comments {
		view.Comments = append(view.Comments, CommentConvert(comment))
	}
	return view
}

func CommentConvert(rec dbmodels.TimesheetComment) CommentView {
	return CommentView{
		ID:        rec.ID,
		EntryID:   rec.EntryID,
		Author:    UserConvert(rec.Author),
		Text:      rec.Text,
		CreatedAt: rec.CreatedAt,
	}
}

type TsFilter struct {
	apimodels.Pagination
	Status   models.TimesheetStatus `json:"status"`    // optional status filter
	TeamView bool                   `json:"team_view"` // include direct reports (managers only)
}

type RejectData struct {
	Comment string `json:"comment"`
	EntryID string `json:"entry_id,omitempty"`
}

func (r RejectData) Validate() error {
	if r.Comment == "" {
		return errors.New("rejection comment is required")
	}
	return nil
}

type UnlockData struct {
	Reason string `json:"reason"`
}

func (r UnlockData) Validate() error {
	if r.Reason == "" {
		return errors.New("unlock reason is required")
	}
	return nil
}

type CommentData struct {
	Text    string `json:"text"`
	EntryID string `json:"entry_id,omitempty"`
}

func (r CommentData) Validate() error {
	if r.Text == "" {
		return errors.New("comment text cannot be empty")
	}
	return nil
}

type OverrideView struct {
	ID             string                 `json:"id"`
	TimesheetID    string                 `json:"timesheet_id"`
	WeekStart      string                 `json:"week_start,omitempty"`
	Admin          *UserView              `json:"admin"`
	Action         models.OverrideAction  `json:"action"`
	Reason         string                 `json:"reason"`
	PreviousStatus models.TimesheetStatus `json:"previous_status"`
	CreatedAt      time.Time              `json:"created_at"`
}

func OverrideConvert(rec dbmodels.AdminOverride) OverrideView {
	view := OverrideView{
		ID:             rec.ID,
		TimesheetID:    rec.TimesheetID,
		Admin:          UserConvert(rec.Admin),
		Action:         rec.Action,
		Reason:         rec.Reason,
		PreviousStatus: rec.PreviousStatus,
		CreatedAt:      rec.CreatedAt,
	}
	if rec.Timesheet != nil {
		view.WeekStart = rec.Timesheet.WeekStart.Format("2006-01-02")
	}
	return view
}

type AuditFilter struct {
	apimodels.Pagination
	Action    models.OverrideAction `json:"action"`
	AdminID   string                `json:"admin_id"`
	StartDate string                `json:"start_date"` // created_at lower bound, 2006-01-02
	EndDate   string                `json:"end_date"`   // created_at upper bound, 2006-01-02
}
