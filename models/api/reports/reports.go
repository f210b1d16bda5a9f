package reportsapimodels

import (
	"time"

	"github.com/pkg/errors"
)

const (
	GroupByUser    = "user"
	GroupByProject = "project"
)

// ReportFilter bounds a report by date, both ends optional and inclusive.
type ReportFilter struct {
	StartDate string `json:"start_date,omitempty"` // 2006-01-02
	EndDate   string `json:"end_date,omitempty"`   // 2006-01-02
}

func (r ReportFilter) Validate() error {
	if _, _, err := r.Range(); err != nil {
		return err
	}
	return nil
}

func (r ReportFilter) Range() (start *time.Time, end *time.Time, err error) {
	if r.StartDate != "" {
		parsed, err := time.Parse("2006-01-02", r.StartDate)
		if err != nil {
			return nil, nil, errors.New("start_date must be in YYYY-MM-DD format")
		}
		start = &parsed
	}
	if r.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", r.EndDate)
		if err != nil {
			return nil, nil, errors.New("end_date must be in YYYY-MM-DD format")
		}
		end = &parsed
	}
	return start, end, nil
}

type HoursSummaryFilter struct {
	ReportFilter
	GroupBy string `json:"group_by,omitempty"` // "", "user" or "project"
}

func (r HoursSummaryFilter) Validate() error {
	if err := r.ReportFilter.Validate(); err != nil {
		return err
	}
	if r.GroupBy != "" && r.GroupBy != GroupByUser && r.GroupBy != GroupByProject {
		return errors.New("group_by must be either \"user\" or \"project\"")
	}
	return nil
}

type UserHoursView struct {
	UserID     string  `json:"user_id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	TotalHours float64 `json:"total_hours"`
}

type ProjectHoursView struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	TotalHours  float64 `json:"total_hours"`
}

// HoursSummaryView covers approved hours only.
type HoursSummaryView struct {
	TotalHours float64            `json:"total_hours"`
	EntryCount int64              `json:"entry_count"`
	ByUser     []UserHoursView    `json:"by_user,omitempty"`
	ByProject  []ProjectHoursView `json:"by_project,omitempty"`
}

type ApprovalMetricsView struct {
	TotalTimesheets int64   `json:"total_timesheets"`
	DraftCount      int64   `json:"draft_count"`
	SubmittedCount  int64   `json:"submitted_count"`
	ApprovedCount   int64   `json:"approved_count"`
	RejectedCount   int64   `json:"rejected_count"`
	ApprovalRate    float64 `json:"approval_rate"` // approved share of decided, percent
}

type UtilizationFilter struct {
	ReportFilter
	UserID              string  `json:"user_id,omitempty"`
	ExpectedWeeklyHours float64 `json:"expected_weekly_hours,omitempty"` // defaults to 40
}

func (r UtilizationFilter) Validate() error {
	if err := r.ReportFilter.Validate(); err != nil {
		return err
	}
	if r.ExpectedWeeklyHours < 0 {
		return errors.New("expected_weekly_hours cannot be negative")
	}
	return nil
}

type UserUtilizationView struct {
	UserID             string  `json:"user_id"`
	Email              string  `json:"email"`
	Name               string  `json:"name"`
	TotalHours         float64 `json:"total_hours"`
	ExpectedHours      float64 `json:"expected_hours"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

type UtilizationView struct {
	UtilizationData     []UserUtilizationView `json:"utilization_data"`
	ExpectedWeeklyHours float64               `json:"expected_weekly_hours"`
}
