package timeentryhandler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"timetrack-backend/db"
	companystore "timetrack-backend/lib/company/store"
	rateshandler "timetrack-backend/lib/rates"
	timeentrystore "timetrack-backend/lib/timeentry/store"
	timesheetstore "timetrack-backend/lib/timesheet/store"
	usersstore "timetrack-backend/lib/users/store"
	"timetrack-backend/lib/utils/clock"
	"timetrack-backend/lib/utils/lock"
	"timetrack-backend/models"
	timeentryapimodels "timetrack-backend/models/api/timeentry"
	dbmodels "timetrack-backend/models/db"
)

var (
	ErrTimesheetLocked = errors.New("timesheet is locked and cannot be modified")
	ErrEntryNotFound   = errors.New("time entry not found")
)

type Provider interface {
	// Create records hours against the owner's draft timesheet for the
	// entry's week, creating the timesheet when it does not exist yet.
	Create(ctx context.Context, actorID string, data timeentryapimodels.EntryData) (view *timeentryapimodels.EntryView, err error)
	Delete(ctx context.Context, actorID, entryID string) error
}

var Instance Provider

const lockWait = 3 * time.Second

func NewHandler() {
	Instance = newImpl(db.DB, clock.Instance)
}

func newImpl(DB *gorm.DB, clk clock.Provider) impl {
	return impl{
		clock:          clk,
		store:          timeentrystore.NewInstance(DB),
		timesheetStore: timesheetstore.NewInstance(DB),
		usersStore:     usersstore.NewInstance(DB),
		companyStore:   companystore.NewInstance(DB),
		rates:          rateshandler.NewInstanceFor(DB),
	}
}

type impl struct {
	clock          clock.Provider
	store          timeentrystore.Provider
	timesheetStore timesheetstore.Provider
	usersStore     usersstore.Provider
	companyStore   companystore.Provider
	rates          rateshandler.Provider
}

func (i impl) Create(ctx context.Context, actorID string, data timeentryapimodels.EntryData) (*timeentryapimodels.EntryView, error) {
	logger := log.WithField("user_id", actorID)
	if err := data.Validate(); err != nil {
		return nil, err
	}
	user, err := i.usersStore.GetByID(actorID)
	if err != nil {
		logger.WithError(err).Error("user lookup error")
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	company, err := i.companyStore.GetByID(user.CompanyID)
	if err != nil {
		logger.WithError(err).Error("company lookup error")
		return nil, err
	}
	if company == nil {
		return nil, errors.New("company not found")
	}
	date := data.Date()
	weekStart := company.WeekStartFor(date)

	var view *timeentryapimodels.EntryView
	lockKey := fmt.Sprintf("timesheet-week:%s:%s", actorID, weekStart.Format("2006-01-02"))
	locked, err := lock.WithDelay(ctx, lockKey, lockWait, func() error {
		sheet, err := i.timesheetStore.GetByUserWeek(actorID, weekStart)
		if err != nil {
			return err
		}
		if sheet == nil {
			id, err := i.timesheetStore.Create(dbmodels.Timesheet{
				UserID:    actorID,
				WeekStart: weekStart,
				Status:    models.TimesheetStatusDraft,
			})
			if err != nil {
				return err
			}
			sheet = &dbmodels.Timesheet{
				BaseModel: dbmodels.BaseModel{ID: id},
				UserID:    actorID,
				WeekStart: weekStart,
				Status:    models.TimesheetStatusDraft,
			}
		}
		if sheet.Status != models.TimesheetStatusDraft {
			return ErrTimesheetLocked
		}
		rate, source, err := i.rates.Resolve(actorID, data.ProjectID, user.CompanyID)
		if err != nil {
			return err
		}
		rec := dbmodels.TimeEntry{
			TimesheetID: sheet.ID,
			UserID:      actorID,
			ProjectID:   data.ProjectID,
			EntryDate:   date,
			Hours:       data.Hours,
			Note:        data.Note,
			HourlyRate:  rate,
			RateSource:  source,
		}
		rec.ID, err = i.store.Create(rec)
		if err != nil {
			return err
		}
		converted := timeentryapimodels.EntryConvert(rec)
		converted.Warning, err = i.dailyWarning(actorID, date, company)
		if err != nil {
			return err
		}
		view = &converted
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("time entry creation error")
		return nil, err
	}
	if !locked {
		return nil, errors.New("timesheet is busy, try again")
	}
	logger.
		WithField("rec_id", view.ID).
		WithField("timesheet_id", view.TimesheetID).
		Info("time entry created")
	return view, nil
}

func (i impl) Delete(ctx context.Context, actorID, entryID string) error {
	logger := log.
		WithField("user_id", actorID).
		WithField("rec_id", entryID)
	rec, err := i.store.GetByID(entryID)
	if err != nil {
		logger.WithError(err).Error("time entry lookup error")
		return err
	}
	if rec == nil || rec.UserID != actorID {
		return ErrEntryNotFound
	}
	locked, err := lock.WithDelay(ctx, "timesheet:"+rec.TimesheetID, lockWait, func() error {
		sheet, err := i.timesheetStore.GetByID(rec.TimesheetID)
		if err != nil {
			return err
		}
		if sheet == nil {
			return ErrEntryNotFound
		}
		if sheet.Status != models.TimesheetStatusDraft {
			return ErrTimesheetLocked
		}
		return i.store.Delete(rec.TimesheetID, entryID)
	})
	if err != nil {
		logger.WithError(err).Error("time entry deletion error")
		return err
	}
	if !locked {
		return errors.New("timesheet is busy, try again")
	}
	logger.Info("time entry deleted")
	return nil
}

// dailyWarning flags days whose total crosses the company threshold.
// The entry is still accepted, the warning is advisory only.
func (i impl) dailyWarning(userID string, date time.Time, company *dbmodels.Company) (string, error) {
	total, err := i.store.SumForDay(userID, date)
	if err != nil {
		return "", err
	}
	threshold := 8.0
	if company.Settings != nil {
		threshold = float64(company.Settings.DailyWarningThreshold)
	}
	if total > threshold {
		return fmt.Sprintf("daily total of %.1f hours exceeds the %.0f-hour threshold", total, threshold), nil
	}
	return "", nil
}
