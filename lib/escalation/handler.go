package escalationhandler

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"timetrack-backend/db"
	companystore "timetrack-backend/lib/company/store"
	"timetrack-backend/lib/notification"
	ooohandler "timetrack-backend/lib/ooo"
	timesheetstore "timetrack-backend/lib/timesheet/store"
	usersstore "timetrack-backend/lib/users/store"
	"timetrack-backend/lib/utils/clock"
	"timetrack-backend/lib/utils/helpers"
	"timetrack-backend/models"
	dbmodels "timetrack-backend/models/db"
)

type Provider interface {
	// Sweep evaluates every submitted timesheet against its company's
	// escalation policy and notifies up the management chain where the
	// policy fires. One sweep is one pass, re-running it re-notifies.
	Sweep(ctx context.Context) (stats SweepStats, err error)
	NextApprover(approver *dbmodels.User, asOf time.Time) (next *dbmodels.User, err error)
}

type SweepStats struct {
	Checked   int
	Escalated int
	Skipped   int
}

var Instance Provider

func NewHandler() {
	Instance = newImpl(db.DB, clock.Instance)
}

func newImpl(DB *gorm.DB, clk clock.Provider) impl {
	return impl{
		clock:        clk,
		store:        timesheetstore.NewInstance(DB),
		usersStore:   usersstore.NewInstance(DB),
		companyStore: companystore.NewInstance(DB),
		ooo:          ooohandler.NewInstanceFor(DB, clk),
	}
}

type impl struct {
	clock        clock.Provider
	store        timesheetstore.Provider
	usersStore   usersstore.Provider
	companyStore companystore.Provider
	ooo          ooohandler.Provider
}

func (i impl) Sweep(ctx context.Context) (SweepStats, error) {
	stats := SweepStats{}
	sheets, err := i.store.ListByStatus(models.TimesheetStatusSubmitted)
	if err != nil {
		log.WithError(err).Error("escalation sweep listing error")
		return stats, err
	}
	settingsCache := map[string]*dbmodels.CompanySettings{}
	for _, sheet := range sheets {
		if helpers.IsContextDone(ctx) {
			break
		}
		stats.Checked++
		escalated, err := i.evaluate(sheet, settingsCache)
		if err != nil {
			log.
				WithField("timesheet_id", sheet.ID).
				WithError(err).
				Error("escalation evaluation error")
			stats.Skipped++
			continue
		}
		if escalated {
			stats.Escalated++
		} else {
			stats.Skipped++
		}
	}
	log.
		WithField("checked", stats.Checked).
		WithField("escalated", stats.Escalated).
		WithField("skipped", stats.Skipped).
		Info("escalation sweep finished")
	return stats, nil
}

func (i impl) evaluate(sheet dbmodels.Timesheet, settingsCache map[string]*dbmodels.CompanySettings) (escalated bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.
				WithField("timesheet_id", sheet.ID).
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
			escalated = false
			err = nil
		}
	}()
	owner := sheet.User
	if owner == nil || sheet.SubmittedAt == nil {
		return false, nil
	}
	approver := owner.Manager
	if approver == nil {
		// nobody holds the approval, nothing to walk up from
		return false, nil
	}
	settings, ok := settingsCache[owner.CompanyID]
	if !ok {
		settings, err = i.companyStore.GetSettings(owner.CompanyID)
		if err != nil {
			return false, err
		}
		settingsCache[owner.CompanyID] = settings
	}
	escalationDays := 3
	logic := models.EscalationLogicOr
	if settings != nil {
		escalationDays = settings.EscalationDays
		logic = settings.EscalationLogic
	}

	today := i.clock.Today()
	approverOOO, err := i.ooo.IsUserOOO(approver.ID, today)
	if err != nil {
		return false, err
	}
	facts := Facts{
		PendingTooLong: PendingTooLong(*sheet.SubmittedAt, i.clock.Now(), escalationDays),
		ApproverOOO:    approverOOO,
	}
	if !ShouldEscalate(logic, facts) {
		return false, nil
	}

	next, err := i.NextApprover(approver, today)
	if err != nil {
		return false, err
	}
	alertContext := map[string]string{
		"timesheet_id":   sheet.ID,
		"employee_name":  owner.GetFullName(),
		"week_start":     sheet.WeekStart.Format("2006-01-02"),
		"escalated_from": approver.GetFullName(),
	}
	if next != nil {
		notification.Instance.Dispatch(next.ID, notification.KindEscalationAlert, alertContext)
		return true, nil
	}

	// chain exhausted, fall back to every active admin of the company
	admins, err := i.usersStore.ListActiveAdmins(owner.CompanyID)
	if err != nil {
		return false, err
	}
	alertContext["chain_exhausted"] = "true"
	for _, admin := range admins {
		notification.Instance.Dispatch(admin.ID, notification.KindEscalationAlert, alertContext)
	}
	return true, nil
}
