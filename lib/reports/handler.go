package reportshandler

import (
	"math"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"timetrack-backend/db"
	reportsstore "timetrack-backend/lib/reports/store"
	usersstore "timetrack-backend/lib/users/store"
	"timetrack-backend/models"
	reportsapimodels "timetrack-backend/models/api/reports"
)

const defaultExpectedWeeklyHours = 40

// Reports cover approved work only. Admins see the whole company, managers
// see their direct reports plus themselves.
type Provider interface {
	HoursSummary(actorID string, filter reportsapimodels.HoursSummaryFilter) (view reportsapimodels.HoursSummaryView, err error)
	ApprovalMetrics(actorID string, filter reportsapimodels.ReportFilter) (view reportsapimodels.ApprovalMetricsView, err error)
	Utilization(actorID string, filter reportsapimodels.UtilizationFilter) (view reportsapimodels.UtilizationView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = newImpl(db.DB)
}

func newImpl(DB *gorm.DB) impl {
	return impl{
		store:      reportsstore.NewInstance(DB),
		usersStore: usersstore.NewInstance(DB),
	}
}

type impl struct {
	store      reportsstore.Provider
	usersStore usersstore.Provider
}

func (i impl) scopeFor(actorID string) (reportsstore.Scope, error) {
	actor, err := i.usersStore.GetByID(actorID)
	if err != nil {
		return reportsstore.Scope{}, errors.Wrap(err, "actor lookup error")
	}
	if actor == nil {
		return reportsstore.Scope{}, errors.New("user not found")
	}
	scope := reportsstore.Scope{CompanyID: actor.CompanyID}
	if !actor.Role.IsAdmin() {
		scope.ManagerID = &actor.ID
	}
	return scope, nil
}

func (i impl) HoursSummary(actorID string, filter reportsapimodels.HoursSummaryFilter) (reportsapimodels.HoursSummaryView, error) {
	logger := log.WithField("user_id", actorID)
	if err := filter.Validate(); err != nil {
		return reportsapimodels.HoursSummaryView{}, err
	}
	scope, err := i.scopeFor(actorID)
	if err != nil {
		return reportsapimodels.HoursSummaryView{}, err
	}
	start, end, _ := filter.Range()

	total, count, err := i.store.ApprovedHoursTotal(scope, start, end)
	if err != nil {
		logger.WithError(err).Error("hours summary query error")
		return reportsapimodels.HoursSummaryView{}, err
	}
	view := reportsapimodels.HoursSummaryView{
		TotalHours: total,
		EntryCount: count,
	}
	switch filter.GroupBy {
	case reportsapimodels.GroupByUser:
		rows, err := i.store.ApprovedHoursByUser(scope, start, end)
		if err != nil {
			logger.WithError(err).Error("hours by user query error")
			return reportsapimodels.HoursSummaryView{}, err
		}
		view.ByUser = make([]reportsapimodels.UserHoursView, 0, len(rows))
		for _, row := range rows {
			view.ByUser = append(view.ByUser, reportsapimodels.UserHoursView{
				UserID:     row.UserID,
				Email:      row.Email,
				Name:       strings.TrimSpace(row.FirstName + " " + row.LastName),
				TotalHours: row.TotalHours,
			})
		}
	case reportsapimodels.GroupByProject:
		rows, err := i.store.ApprovedHoursByProject(scope, start, end)
		if err != nil {
			logger.WithError(err).Error("hours by project query error")
			return reportsapimodels.HoursSummaryView{}, err
		}
		view.ByProject = make([]reportsapimodels.ProjectHoursView, 0, len(rows))
		for _, row := range rows {
			view.ByProject = append(view.ByProject, reportsapimodels.ProjectHoursView{
				ProjectID:   row.ProjectID,
				ProjectName: row.ProjectName,
				TotalHours:  row.TotalHours,
			})
		}
	}
	return view, nil
}

func (i impl) ApprovalMetrics(actorID string, filter reportsapimodels.ReportFilter) (reportsapimodels.ApprovalMetricsView, error) {
	logger := log.WithField("user_id", actorID)
	if err := filter.Validate(); err != nil {
		return reportsapimodels.ApprovalMetricsView{}, err
	}
	scope, err := i.scopeFor(actorID)
	if err != nil {
		return reportsapimodels.ApprovalMetricsView{}, err
	}
	start, end, _ := filter.Range()

	rows, err := i.store.CountTimesheetsByStatus(scope, start, end)
	if err != nil {
		logger.WithError(err).Error("approval metrics query error")
		return reportsapimodels.ApprovalMetricsView{}, err
	}
	view := reportsapimodels.ApprovalMetricsView{}
	for _, row := range rows {
		view.TotalTimesheets += row.Count
		switch row.Status {
		case models.TimesheetStatusDraft:
			view.DraftCount = row.Count
		case models.TimesheetStatusSubmitted:
			view.SubmittedCount = row.Count
		case models.TimesheetStatusApproved:
			view.ApprovedCount = row.Count
		case models.TimesheetStatusRejected:
			view.RejectedCount = row.Count
		}
	}
	decided := view.ApprovedCount + view.RejectedCount
	if decided > 0 {
		view.ApprovalRate = round2(float64(view.ApprovedCount) / float64(decided) * 100)
	}
	return view, nil
}

func (i impl) Utilization(actorID string, filter reportsapimodels.UtilizationFilter) (reportsapimodels.UtilizationView, error) {
	logger := log.WithField("user_id", actorID)
	if err := filter.Validate(); err != nil {
		return reportsapimodels.UtilizationView{}, err
	}
	scope, err := i.scopeFor(actorID)
	if err != nil {
		return reportsapimodels.UtilizationView{}, err
	}
	start, end, _ := filter.Range()

	expected := filter.ExpectedWeeklyHours
	if expected == 0 {
		expected = defaultExpectedWeeklyHours
	}

	users, err := i.store.ListActiveUsers(scope, filter.UserID)
	if err != nil {
		logger.WithError(err).Error("utilization users query error")
		return reportsapimodels.UtilizationView{}, err
	}
	rows, err := i.store.ApprovedHoursByUser(scope, start, end)
	if err != nil {
		logger.WithError(err).Error("utilization hours query error")
		return reportsapimodels.UtilizationView{}, err
	}
	hoursByUser := make(map[string]float64, len(rows))
	for _, row := range rows {
		hoursByUser[row.UserID] = row.TotalHours
	}

	view := reportsapimodels.UtilizationView{
		UtilizationData:     make([]reportsapimodels.UserUtilizationView, 0, len(users)),
		ExpectedWeeklyHours: expected,
	}
	for _, rec := range users {
		total := hoursByUser[rec.ID]
		percent := float64(0)
		if expected > 0 {
			percent = round2(total / expected * 100)
		}
		view.UtilizationData = append(view.UtilizationData, reportsapimodels.UserUtilizationView{
			UserID:             rec.ID,
			Email:              rec.Email,
			Name:               strings.TrimSpace(rec.GetFullName()),
			TotalHours:         total,
			ExpectedHours:      expected,
			UtilizationPercent: percent,
		})
	}
	return view, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
