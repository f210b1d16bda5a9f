package timesheethandler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"timetrack-backend/db"
	companystore "timetrack-backend/lib/company/store"
	delegationhandler "timetrack-backend/lib/delegation"
	"timetrack-backend/lib/notification"
	commentstore "timetrack-backend/lib/timesheet/comment-store"
	timesheetstore "timetrack-backend/lib/timesheet/store"
	usersstore "timetrack-backend/lib/users/store"
	"timetrack-backend/lib/utils/clock"
	"timetrack-backend/lib/utils/lock"
	"timetrack-backend/models"
	tsapimodels "timetrack-backend/models/api/timesheet"
	dbmodels "timetrack-backend/models/db"
)

type Provider interface {
	GetByID(actorID, id string) (view *tsapimodels.TimesheetView, err error)
	List(actorID string, filter tsapimodels.TsFilter) (list []tsapimodels.TimesheetView, err error)
	Submit(ctx context.Context, actorID, id string) error
	Approve(ctx context.Context, actorID, id string) error
	Reject(ctx context.Context, actorID, id string, data tsapimodels.RejectData) error
	Unlock(ctx context.Context, adminID, id string, data tsapimodels.UnlockData) error
	AddComment(actorID, id string, data tsapimodels.CommentData) (view *tsapimodels.CommentView, err error)
	ExportData(actorID, id string) (rec *dbmodels.Timesheet, projectNames map[string]string, err error)
	// CanApprove resolves approval authority for actor over the sheet
	// owner: direct manager, then admin of the same company, then an
	// active delegation from the owner's manager.
	CanApprove(actor *dbmodels.User, rec *dbmodels.Timesheet) (allowed bool, err error)
	ListOverrides(companyID string, filter tsapimodels.AuditFilter) (list []tsapimodels.OverrideView, rowCount int64, err error)
}

var Instance Provider

const lockWait = 3 * time.Second

func NewHandler() {
	Instance = newImpl(db.DB, clock.Instance)
}

func newImpl(DB *gorm.DB, clk clock.Provider) impl {
	return impl{
		db:           DB,
		clock:        clk,
		store:        timesheetstore.NewInstance(DB),
		commentStore: commentstore.NewInstance(DB),
		usersStore:   usersstore.NewInstance(DB),
		companyStore: companystore.NewInstance(DB),
		delegation:   delegationhandler.NewInstanceFor(DB, clk),
	}
}

type impl struct {
	db           *gorm.DB
	clock        clock.Provider
	store        timesheetstore.Provider
	commentStore commentstore.Provider
	usersStore   usersstore.Provider
	companyStore companystore.Provider
	delegation   delegationhandler.Provider
}

func (i impl) GetByID(actorID, id string) (*tsapimodels.TimesheetView, error) {
	actor, rec, err := i.load(actorID, id)
	if err != nil {
		return nil, err
	}
	allowed, err := i.canView(actor, rec)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrAccessDenied
	}
	view := tsapimodels.TimesheetConvert(*rec)
	return &view, nil
}

func (i impl) List(actorID string, filter tsapimodels.TsFilter) ([]tsapimodels.TimesheetView, error) {
	actor, err := i.usersStore.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, errors.New("user not found")
	}
	teamView := filter.TeamView && actor.Role.CanApprove()
	recs, err := i.store.List(actorID, teamView, filter.Status)
	if err != nil {
		return nil, err
	}
	list := make([]tsapimodels.TimesheetView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, tsapimodels.TimesheetConvert(rec))
	}
	return list, nil
}

func (i impl) Submit(ctx context.Context, actorID, id string) error {
	logger := log.
		WithField("user_id", actorID).
		WithField("timesheet_id", id)
	locked, err := lock.WithDelay(ctx, "timesheet:"+id, lockWait, func() error {
		rec, err := i.store.GetByID(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return ErrTimesheetNotFound
		}
		if rec.UserID != actorID {
			return ErrNotOwner
		}
		if rec.Status != models.TimesheetStatusDraft {
			return ErrNotDraft
		}
		if len(rec.Entries) == 0 {
			return ErrEmptyTimesheet
		}
		now := i.clock.Now()
		err = i.store.Update(id, map[string]interface{}{
			"status":       models.TimesheetStatusSubmitted,
			"submitted_at": &now,
		})
		if err != nil {
			return err
		}
		if rec.User != nil && rec.User.ManagerID != nil {
			notification.Instance.Dispatch(*rec.User.ManagerID, notification.KindTimesheetSubmitted, map[string]string{
				"timesheet_id":  rec.ID,
				"employee_name": rec.User.GetFullName(),
				"week_start":    rec.WeekStart.Format("2006-01-02"),
			})
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("timesheet submit error")
		return err
	}
	if !locked {
		return errors.New("timesheet is busy, try again")
	}
	logger.Info("timesheet submitted")
	return nil
}

func (i impl) Approve(ctx context.Context, actorID, id string) error {
	logger := log.
		WithField("user_id", actorID).
		WithField("timesheet_id", id)
	locked, err := lock.WithDelay(ctx, "timesheet:"+id, lockWait, func() error {
		actor, rec, err := i.load(actorID, id)
		if err != nil {
			return err
		}
		if rec.Status != models.TimesheetStatusSubmitted {
			return ErrNotSubmitted
		}
		allowed, err := i.CanApprove(actor, rec)
		if err != nil {
			return err
		}
		if !allowed {
			return ErrAuthorityDenied
		}
		now := i.clock.Now()
		err = i.store.Update(id, map[string]interface{}{
			"status":         models.TimesheetStatusApproved,
			"approved_at":    &now,
			"approved_by_id": actorID,
			"locked_at":      &now,
		})
		if err != nil {
			return err
		}
		notification.Instance.Dispatch(rec.UserID, notification.KindTimesheetApproved, map[string]string{
			"timesheet_id":  rec.ID,
			"week_start":    rec.WeekStart.Format("2006-01-02"),
			"approver_name": actor.GetFullName(),
		})
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("timesheet approve error")
		return err
	}
	if !locked {
		return errors.New("timesheet is busy, try again")
	}
	logger.Info("timesheet approved")
	return nil
}

func (i impl) Reject(ctx context.Context, actorID, id string, data tsapimodels.RejectData) error {
	logger := log.
		WithField("user_id", actorID).
		WithField("timesheet_id", id)
	if err := data.Validate(); err != nil {
		return err
	}
	locked, err := lock.WithDelay(ctx, "timesheet:"+id, lockWait, func() error {
		actor, rec, err := i.load(actorID, id)
		if err != nil {
			return err
		}
		if rec.Status != models.TimesheetStatusSubmitted {
			return ErrNotSubmitted
		}
		allowed, err := i.CanApprove(actor, rec)
		if err != nil {
			return err
		}
		if !allowed {
			return ErrAuthorityDenied
		}
		var entryID *string
		if data.EntryID != "" {
			if !entryBelongs(rec, data.EntryID) {
				return ErrEntryNotInTimesheet
			}
			entryID = &data.EntryID
		}
		err = i.db.Transaction(func(tx *gorm.DB) error {
			_, err := commentstore.NewInstance(tx).Create(dbmodels.TimesheetComment{
				TimesheetID: rec.ID,
				EntryID:     entryID,
				AuthorID:    actorID,
				Text:        data.Comment,
			})
			if err != nil {
				return err
			}
			// a rejected sheet is closed by its status alone, locked_at
			// stays null until an approval sets it
			return timesheetstore.NewInstance(tx).Update(id, map[string]interface{}{
				"status": models.TimesheetStatusRejected,
			})
		})
		if err != nil {
			return err
		}
		notification.Instance.Dispatch(rec.UserID, notification.KindTimesheetRejected, map[string]string{
			"timesheet_id":  rec.ID,
			"week_start":    rec.WeekStart.Format("2006-01-02"),
			"reviewer_name": actor.GetFullName(),
			"comment":       data.Comment,
			"comments":      commentHistory(rec, actor, data.Comment),
		})
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("timesheet reject error")
		return err
	}
	if !locked {
		return errors.New("timesheet is busy, try again")
	}
	logger.Info("timesheet rejected")
	return nil
}

func (i impl) Unlock(ctx context.Context, adminID, id string, data tsapimodels.UnlockData) error {
	logger := log.
		WithField("user_id", adminID).
		WithField("timesheet_id", id)
	if err := data.Validate(); err != nil {
		return err
	}
	locked, err := lock.WithDelay(ctx, "timesheet:"+id, lockWait, func() error {
		actor, rec, err := i.load(adminID, id)
		if err != nil {
			return err
		}
		if !actor.Role.IsAdmin() {
			return ErrAuthorityDenied
		}
		if !rec.Status.IsLocked() {
			return ErrNotLocked
		}
		if rec.Status == models.TimesheetStatusApproved && rec.ApprovedAt != nil {
			settings, err := i.companyStore.GetSettings(actor.CompanyID)
			if err != nil {
				return err
			}
			windowDays := 7
			if settings != nil {
				windowDays = settings.UnlockWindowDays
			}
			daysAgo := clock.WholeDaysBetween(*rec.ApprovedAt, i.clock.Now())
			if daysAgo > windowDays {
				return UnlockWindowError{WindowDays: windowDays, DaysAgo: daysAgo}
			}
		}
		return i.db.Transaction(func(tx *gorm.DB) error {
			txStore := timesheetstore.NewInstance(tx)
			err := txStore.CreateOverride(dbmodels.AdminOverride{
				TimesheetID:    rec.ID,
				AdminID:        adminID,
				Action:         models.OverrideActionUnlock,
				Reason:         data.Reason,
				PreviousStatus: rec.Status,
			})
			if err != nil {
				return err
			}
			return txStore.Update(id, map[string]interface{}{
				"status":         models.TimesheetStatusDraft,
				"approved_at":    nil,
				"approved_by_id": nil,
				"locked_at":      nil,
			})
		})
	})
	if err != nil {
		logger.WithError(err).Error("timesheet unlock error")
		return err
	}
	if !locked {
		return errors.New("timesheet is busy, try again")
	}
	logger.Info("timesheet unlocked")
	return nil
}

func (i impl) AddComment(actorID, id string, data tsapimodels.CommentData) (*tsapimodels.CommentView, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	actor, rec, err := i.load(actorID, id)
	if err != nil {
		return nil, err
	}
	allowed, err := i.canView(actor, rec)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrAccessDenied
	}
	var entryID *string
	if data.EntryID != "" {
		if !entryBelongs(rec, data.EntryID) {
			return nil, ErrEntryNotInTimesheet
		}
		entryID = &data.EntryID
	}
	commentID, err := i.commentStore.Create(dbmodels.TimesheetComment{
		TimesheetID: rec.ID,
		EntryID:     entryID,
		AuthorID:    actorID,
		Text:        data.Text,
	})
	if err != nil {
		log.
			WithField("timesheet_id", id).
			WithError(err).
			Error("timesheet comment creation error")
		return nil, err
	}
	view := tsapimodels.CommentConvert(dbmodels.TimesheetComment{
		BaseModel: dbmodels.BaseModel{ID: commentID, CreatedAt: i.clock.Now()},
		EntryID:   entryID,
		AuthorID:  actorID,
		Author:    actor,
		Text:      data.Text,
	})
	return &view, nil
}

func (i impl) CanApprove(actor *dbmodels.User, rec *dbmodels.Timesheet) (bool, error) {
	if actor == nil || rec == nil {
		return false, nil
	}
	if actor.ID == rec.UserID {
		return false, nil
	}
	owner := rec.User
	if owner == nil {
		loaded, err := i.usersStore.GetByID(rec.UserID)
		if err != nil {
			return false, err
		}
		if loaded == nil {
			return false, nil
		}
		owner = loaded
	}
	if owner.ManagerID != nil && *owner.ManagerID == actor.ID {
		return true, nil
	}
	if actor.Role.IsAdmin() && actor.CompanyID == owner.CompanyID {
		return true, nil
	}
	if !actor.Role.CanApprove() {
		return false, nil
	}
	return i.delegation.CanApproveViaDelegation(actor.ID, owner.ManagerID)
}

func (i impl) ListOverrides(companyID string, filter tsapimodels.AuditFilter) ([]tsapimodels.OverrideView, int64, error) {
	recs, rowCount, err := i.store.ListOverrides(companyID, filter)
	if err != nil {
		log.
			WithField("company_id", companyID).
			WithError(err).
			Error("admin override list error")
		return nil, 0, err
	}
	list := make([]tsapimodels.OverrideView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, tsapimodels.OverrideConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) load(actorID, id string) (*dbmodels.User, *dbmodels.Timesheet, error) {
	actor, err := i.usersStore.GetByID(actorID)
	if err != nil {
		return nil, nil, err
	}
	if actor == nil {
		return nil, nil, errors.New("user not found")
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, ErrTimesheetNotFound
	}
	return actor, rec, nil
}

func (i impl) canView(actor *dbmodels.User, rec *dbmodels.Timesheet) (bool, error) {
	if actor.ID == rec.UserID {
		return true, nil
	}
	return i.CanApprove(actor, rec)
}

// commentHistory renders every comment on the sheet plus the one being
// added, for the rejection notification body.
func commentHistory(rec *dbmodels.Timesheet, actor *dbmodels.User, newComment string) string {
	lines := make([]string, 0, len(rec.Comments)+1)
	for _, comment := range rec.Comments {
		author := comment.AuthorID
		if comment.Author != nil {
			author = comment.Author.GetFullName()
		}
		lines = append(lines, fmt.Sprintf("%s: %s", author, comment.Text))
	}
	lines = append(lines, fmt.Sprintf("%s: %s", actor.GetFullName(), newComment))
	return strings.Join(lines, "\n")
}

func entryBelongs(rec *dbmodels.Timesheet, entryID string) bool {
	for _, entry := range rec.Entries {
		if entry.ID == entryID {
			return true
		}
	}
	return false
}
