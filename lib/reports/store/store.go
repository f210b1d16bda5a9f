package reportsstore

import (
	"time"

	"gorm.io/gorm"

	"timetrack-backend/models"
	dbmodels "timetrack-backend/models/db"
)

// Scope limits a report to one company and, for non-admin callers, to the
// manager's direct reports plus the manager themselves (ManagerID set).
type Scope struct {
	CompanyID string
	ManagerID *string
}

type UserHoursRow struct {
	UserID     string
	Email      string
	FirstName  string
	LastName   string
	TotalHours float64
}

type ProjectHoursRow struct {
	ProjectID   string
	ProjectName string
	TotalHours  float64
}

type StatusCountRow struct {
	Status models.TimesheetStatus
	Count  int64
}

type Provider interface {
	ApprovedHoursTotal(scope Scope, start, end *time.Time) (total float64, count int64, err error)
	ApprovedHoursByUser(scope Scope, start, end *time.Time) (rows []UserHoursRow, err error)
	ApprovedHoursByProject(scope Scope, start, end *time.Time) (rows []ProjectHoursRow, err error)
	CountTimesheetsByStatus(scope Scope, start, end *time.Time) (rows []StatusCountRow, err error)
	ListActiveUsers(scope Scope, userID string) (list []dbmodels.User, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// approvedEntries joins time entries to their timesheet and owner, keeping
// only entries of approved timesheets inside the scope.
func (i impl) approvedEntries(scope Scope, start, end *time.Time) *gorm.DB {
	q := i.db.
		Model(&dbmodels.TimeEntry{}).
		Joins("JOIN timesheets ON timesheets.id = time_entries.timesheet_id").
		Joins("JOIN users ON users.id = time_entries.user_id").
		Where("timesheets.status = ?", models.TimesheetStatusApproved).
		Where("users.company_id = ?", scope.CompanyID)
	if scope.ManagerID != nil {
		q = q.Where("users.manager_id = ? OR users.id = ?", *scope.ManagerID, *scope.ManagerID)
	}
	if start != nil {
		q = q.Where("time_entries.entry_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("time_entries.entry_date <= ?", *end)
	}
	return q
}

func (i impl) ApprovedHoursTotal(scope Scope, start, end *time.Time) (total float64, count int64, err error) {
	err = i.approvedEntries(scope, start, end).
		Count(&count).
		Error
	if err != nil {
		return 0, 0, err
	}
	err = i.approvedEntries(scope, start, end).
		Select("COALESCE(SUM(time_entries.hours), 0)").
		Scan(&total).
		Error
	if err != nil {
		return 0, 0, err
	}
	return total, count, nil
}

func (i impl) ApprovedHoursByUser(scope Scope, start, end *time.Time) (rows []UserHoursRow, err error) {
	rows = []UserHoursRow{}
	err = i.approvedEntries(scope, start, end).
		Select("users.id AS user_id, users.email, users.first_name, users.last_name, SUM(time_entries.hours) AS total_hours").
		Group("users.id, users.email, users.first_name, users.last_name").
		Order("total_hours DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (i impl) ApprovedHoursByProject(scope Scope, start, end *time.Time) (rows []ProjectHoursRow, err error) {
	rows = []ProjectHoursRow{}
	err = i.approvedEntries(scope, start, end).
		Joins("JOIN projects ON projects.id = time_entries.project_id").
		Select("projects.id AS project_id, projects.name AS project_name, SUM(time_entries.hours) AS total_hours").
		Group("projects.id, projects.name").
		Order("total_hours DESC").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountTimesheetsByStatus counts timesheets per status, bounded by week_start.
func (i impl) CountTimesheetsByStatus(scope Scope, start, end *time.Time) (rows []StatusCountRow, err error) {
	q := i.db.
		Model(&dbmodels.Timesheet{}).
		Joins("JOIN users ON users.id = timesheets.user_id").
		Where("users.company_id = ?", scope.CompanyID)
	if scope.ManagerID != nil {
		q = q.Where("users.manager_id = ? OR users.id = ?", *scope.ManagerID, *scope.ManagerID)
	}
	if start != nil {
		q = q.Where("timesheets.week_start >= ?", *start)
	}
	if end != nil {
		q = q.Where("timesheets.week_start <= ?", *end)
	}
	rows = []StatusCountRow{}
	err = q.
		Select("timesheets.status AS status, COUNT(*) AS count").
		Group("timesheets.status").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (i impl) ListActiveUsers(scope Scope, userID string) (list []dbmodels.User, err error) {
	q := i.db.
		Where("company_id = ?", scope.CompanyID).
		Where("is_active = ?", true)
	if scope.ManagerID != nil {
		q = q.Where("manager_id = ? OR id = ?", *scope.ManagerID, *scope.ManagerID)
	}
	if userID != "" {
		q = q.Where("id = ?", userID)
	}
	list = []dbmodels.User{}
	err = q.
		Order("email").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
