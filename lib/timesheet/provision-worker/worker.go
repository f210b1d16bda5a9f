package provisionworker

import (
	"context"
	"time"

	"gorm.io/gorm"

	"timetrack-backend/config"
	"timetrack-backend/db"
	timesheetstore "timetrack-backend/lib/timesheet/store"
	usersstore "timetrack-backend/lib/users/store"
	baseworker "timetrack-backend/lib/utils/base-worker"
	"timetrack-backend/lib/utils/clock"
	"timetrack-backend/lib/utils/helpers"
	"timetrack-backend/models"
	dbmodels "timetrack-backend/models/db"
)

// StartWorker provisions the current week's draft timesheet for every
// active user, honoring each company's week start day.
func StartWorker(ctx context.Context) {
	firstRunDelay := time.Duration(config.Conf.Workers.ProvisionFirstRunDelayInSec) * time.Second
	runInterval := time.Duration(config.Conf.Workers.ProvisionIntervalInSec) * time.Second
	i := newImpl(db.DB, clock.Instance, firstRunDelay, runInterval)
	go i.Run(ctx, i.handle)
}

func newImpl(DB *gorm.DB, clk clock.Provider, firstRunDelay, runInterval time.Duration) *impl {
	return &impl{
		BaseImpl:   *baseworker.NewInstance("ProvisionWorker", firstRunDelay, runInterval),
		clock:      clk,
		store:      timesheetstore.NewInstance(DB),
		usersStore: usersstore.NewInstance(DB),
	}
}

type impl struct {
	baseworker.BaseImpl
	clock      clock.Provider
	store      timesheetstore.Provider
	usersStore usersstore.Provider
}

func (i impl) handle(ctx context.Context) {
	i.provision(ctx)
}

func (i impl) provision(ctx context.Context) (created, skipped, failed int) {
	logger := i.GetLogger()
	users, err := i.usersStore.ListActive()
	if err != nil {
		logger.WithError(err).Error("active user listing error")
		return 0, 0, 0
	}
	today := i.clock.Today()
	for _, user := range users {
		if helpers.IsContextDone(ctx) {
			break
		}
		if user.Company == nil {
			failed++
			continue
		}
		weekStart := user.Company.WeekStartFor(today)
		existing, err := i.store.GetByUserWeek(user.ID, weekStart)
		if err != nil {
			logger.
				WithField("user_id", user.ID).
				WithError(err).
				Error("timesheet lookup error")
			failed++
			continue
		}
		if existing != nil {
			skipped++
			continue
		}
		_, err = i.store.Create(dbmodels.Timesheet{
			UserID:    user.ID,
			WeekStart: weekStart,
			Status:    models.TimesheetStatusDraft,
		})
		if err != nil {
			logger.
				WithField("user_id", user.ID).
				WithError(err).
				Error("timesheet provisioning error")
			failed++
			continue
		}
		created++
	}
	logger.
		WithField("created", created).
		WithField("skipped", skipped).
		WithField("failed", failed).
		Info("weekly provisioning finished")
	return created, skipped, failed
}
