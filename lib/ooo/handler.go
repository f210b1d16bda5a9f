package ooohandler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"timetrack-backend/db"
	ooostore "timetrack-backend/lib/ooo/store"
	"timetrack-backend/lib/utils/clock"
	"timetrack-backend/lib/utils/lock"
	oooapimodels "timetrack-backend/models/api/ooo"
	dbmodels "timetrack-backend/models/db"
)

// At most one period covering today and one starting after today may exist
// per user. Periods entirely in the past are accepted unconditionally
// (historical backfill).
type Provider interface {
	Create(userID string, data oooapimodels.OOOPeriodData) (id string, err error)
	Delete(userID, id string) error
	List(userID string) (view oooapimodels.CategorizedView, err error)
	IsUserOOO(userID string, date time.Time) (isOOO bool, err error)
}

var Instance Provider

const lockWait = 3 * time.Second

func NewHandler() {
	Instance = newImpl(db.DB, clock.Instance)
}

// NewInstanceFor builds a provider bound to the given connection, for
// callers that check OOO status as part of their own flow.
func NewInstanceFor(DB *gorm.DB, clk clock.Provider) Provider {
	return newImpl(DB, clk)
}

func newImpl(DB *gorm.DB, clk clock.Provider) impl {
	return impl{
		store: ooostore.NewInstance(DB),
		clock: clk,
	}
}

type impl struct {
	store ooostore.Provider
	clock clock.Provider
}

func (i impl) Create(userID string, data oooapimodels.OOOPeriodData) (id string, err error) {
	logger := log.WithField("user_id", userID)
	if err = data.Validate(); err != nil {
		return "", err
	}
	start, end := data.Range()

	// creation is serialized per user so the active/future counts stay
	// race-free
	locked, err := lock.WithDelay(context.Background(), "ooo:"+userID, lockWait, func() error {
		today := i.clock.Today()
		isActive := !start.After(today) && !end.Before(today)
		isFuture := start.After(today)

		if isActive {
			count, err := i.store.CountActive(userID, today)
			if err != nil {
				return err
			}
			if count >= 1 {
				return errors.New("user already has an active OOO period, only one active period is allowed")
			}
		}
		if isFuture {
			count, err := i.store.CountFuture(userID, today)
			if err != nil {
				return err
			}
			if count >= 1 {
				return errors.New("user already has a future OOO period scheduled, only one future period is allowed")
			}
		}
		id, err = i.store.Create(dbmodels.OOOPeriod{
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
		})
		return err
	})
	if err != nil {
		logger.WithError(err).Error("OOO period creation error")
		return "", err
	}
	if !locked {
		return "", errors.New("user OOO periods are busy, try again")
	}
	logger.
		WithField("rec_id", id).
		Info("OOO period created")
	return id, nil
}

func (i impl) Delete(userID, id string) error {
	logger := log.
		WithField("user_id", userID).
		WithField("rec_id", id)
	rec, err := i.store.GetByID(userID, id)
	if err != nil {
		logger.WithError(err).Error("OOO period lookup error")
		return err
	}
	if rec == nil {
		return errors.New("OOO period not found")
	}
	if rec.EndDate.Before(i.clock.Today()) {
		return errors.New("cannot cancel past OOO periods")
	}
	err = i.store.Delete(id)
	if err != nil {
		logger.WithError(err).Error("OOO period deletion error")
		return err
	}
	logger.Info("OOO period deleted")
	return nil
}

func (i impl) List(userID string) (oooapimodels.CategorizedView, error) {
	list, err := i.store.ListByUser(userID)
	if err != nil {
		return oooapimodels.CategorizedView{}, err
	}
	today := i.clock.Today()
	view := oooapimodels.CategorizedView{
		Active: []oooapimodels.OOOPeriodView{},
		Future: []oooapimodels.OOOPeriodView{},
		Past:   []oooapimodels.OOOPeriodView{},
	}
	for _, rec := range list {
		switch {
		case rec.Covers(today):
			view.Active = append(view.Active, oooapimodels.OOOPeriodConvert(rec))
		case rec.StartDate.After(today):
			view.Future = append(view.Future, oooapimodels.OOOPeriodConvert(rec))
		default:
			view.Past = append(view.Past, oooapimodels.OOOPeriodConvert(rec))
		}
	}
	return view, nil
}

func (i impl) IsUserOOO(userID string, date time.Time) (bool, error) {
	return i.store.ExistsCovering(userID, clock.Midnight(date))
}
