package timesheethandler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timetrack-backend/lib/notification"
	"timetrack-backend/lib/utils/clock"
	"timetrack-backend/models"
	tsapimodels "timetrack-backend/models/api/timesheet"
	dbmodels "timetrack-backend/models/db"
)

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []sentAlert
}

type sentAlert struct {
	recipientID string
	kind        string
	context     map[string]string
}

func (d *fakeDispatcher) Dispatch(recipientID, kind string, context map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, sentAlert{recipientID: recipientID, kind: kind, context: context})
}

func (d *fakeDispatcher) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	err = conn.AutoMigrate(
		&dbmodels.Company{},
		&dbmodels.CompanySettings{},
		&dbmodels.User{},
		&dbmodels.Project{},
		&dbmodels.Timesheet{},
		&dbmodels.TimeEntry{},
		&dbmodels.TimesheetComment{},
		&dbmodels.AdminOverride{},
		&dbmodels.OOOPeriod{},
		&dbmodels.ApprovalDelegation{},
	)
	require.NoError(t, err)
	return conn
}

func createCompany(t *testing.T, conn *gorm.DB, unlockWindowDays int) dbmodels.Company {
	t.Helper()
	company := dbmodels.Company{Name: "Acme " + uuid.NewString()}
	require.NoError(t, conn.Create(&company).Error)
	settings := dbmodels.CompanySettings{
		CompanyID:             company.ID,
		UnlockWindowDays:      unlockWindowDays,
		DailyWarningThreshold: 8,
		EscalationDays:        3,
		EscalationLogic:       models.EscalationLogicOr,
	}
	require.NoError(t, conn.Create(&settings).Error)
	return company
}

func createUser(t *testing.T, conn *gorm.DB, companyID string, role models.UserRole, managerID *string) dbmodels.User {
	t.Helper()
	user := dbmodels.User{
		Email:                        uuid.NewString() + "@example.com",
		Password:                     "hash",
		FirstName:                    "Test",
		LastName:                     string(role),
		IsActive:                     true,
		Role:                         role,
		CompanyID:                    companyID,
		ManagerID:                    managerID,
		WorkflowNotificationsEnabled: true,
		SecurityNotificationsEnabled: true,
	}
	require.NoError(t, conn.Create(&user).Error)
	return user
}

func createSheet(t *testing.T, conn *gorm.DB, userID string, status models.TimesheetStatus, withEntry bool) dbmodels.Timesheet {
	t.Helper()
	weekStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sheet := dbmodels.Timesheet{
		UserID:    userID,
		WeekStart: weekStart,
		Status:    status,
	}
	if status != models.TimesheetStatusDraft {
		submittedAt := weekStart.AddDate(0, 0, 5)
		sheet.SubmittedAt = &submittedAt
	}
	if status == models.TimesheetStatusApproved {
		approvedAt := weekStart.AddDate(0, 0, 6)
		sheet.ApprovedAt = &approvedAt
		sheet.LockedAt = &approvedAt
	}
	require.NoError(t, conn.Create(&sheet).Error)
	if withEntry {
		entry := dbmodels.TimeEntry{
			TimesheetID: sheet.ID,
			UserID:      userID,
			ProjectID:   uuid.NewString(),
			EntryDate:   weekStart,
			Hours:       8,
			HourlyRate:  50,
			RateSource:  models.RateSourceCompany,
		}
		require.NoError(t, conn.Create(&entry).Error)
	}
	return sheet
}

func loadSheet(t *testing.T, conn *gorm.DB, id string) dbmodels.Timesheet {
	t.Helper()
	rec := dbmodels.Timesheet{}
	require.NoError(t, conn.Where("id = ?", id).First(&rec).Error)
	return rec
}

func TestSubmit(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	dispatcher := &fakeDispatcher{}
	notification.Instance = dispatcher
	ctx := context.Background()

	t.Run(`draft with entries is submitted and the manager notified`, func(t *testing.T) {
		dispatcher.reset()
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		manager := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, &manager.ID)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusDraft, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		require.NoError(t, handler.Submit(ctx, employee.ID, sheet.ID))

		got := loadSheet(t, conn, sheet.ID)
		require.Equal(t, models.TimesheetStatusSubmitted, got.Status)
		require.NotNil(t, got.SubmittedAt)
		require.True(t, got.SubmittedAt.Equal(now))

		require.Len(t, dispatcher.sent, 1)
		require.Equal(t, manager.ID, dispatcher.sent[0].recipientID)
		require.Equal(t, notification.KindTimesheetSubmitted, dispatcher.sent[0].kind)
	})

	t.Run(`empty draft is refused`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, nil)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusDraft, false)

		handler := newImpl(conn, clock.NewTestClock(now))
		err := handler.Submit(ctx, employee.ID, sheet.ID)
		require.ErrorIs(t, err, ErrEmptyTimesheet)
	})

	t.Run(`only the owner can submit`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, nil)
		other := createUser(t, conn, company.ID, models.UserRoleEmployee, nil)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusDraft, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		require.ErrorIs(t, handler.Submit(ctx, other.ID, sheet.ID), ErrNotOwner)
	})

	t.Run(`resubmitting a submitted sheet is refused`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, nil)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusSubmitted, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		require.ErrorIs(t, handler.Submit(ctx, employee.ID, sheet.ID), ErrNotDraft)
	})
}

func TestApprove(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	dispatcher := &fakeDispatcher{}
	notification.Instance = dispatcher
	ctx := context.Background()

	t.Run(`direct manager approves and the sheet locks`, func(t *testing.T) {
		dispatcher.reset()
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		manager := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, &manager.ID)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusSubmitted, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		require.NoError(t, handler.Approve(ctx, manager.ID, sheet.ID))

		got := loadSheet(t, conn, sheet.ID)
		require.Equal(t, models.TimesheetStatusApproved, got.Status)
		require.NotNil(t, got.ApprovedAt)
		require.NotNil(t, got.LockedAt)
		require.NotNil(t, got.ApprovedByID)
		require.Equal(t, manager.ID, *got.ApprovedByID)

		require.Len(t, dispatcher.sent, 1)
		require.Equal(t, employee.ID, dispatcher.sent[0].recipientID)
		require.Equal(t, notification.KindTimesheetApproved, dispatcher.sent[0].kind)
	})

	t.Run(`admin of the same company can approve`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		admin := createUser(t, conn, company.ID, models.UserRoleAdmin, nil)
		manager := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, &manager.ID)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusSubmitted, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		require.NoError(t, handler.Approve(ctx, admin.ID, sheet.ID))
	})

	t.Run(`delegate of the owner's manager can approve`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		manager := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		delegate := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, &manager.ID)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusSubmitted, true)
		require.NoError(t, conn.Create(&dbmodels.ApprovalDelegation{
			DelegatorID: manager.ID,
			DelegateID:  delegate.ID,
			StartDate:   clock.Midnight(now).AddDate(0, 0, -1),
			EndDate:     clock.Midnight(now).AddDate(0, 0, 5),
		}).Error)

		handler := newImpl(conn, clock.NewTestClock(now))
		require.NoError(t, handler.Approve(ctx, delegate.ID, sheet.ID))
	})

	t.Run(`unrelated manager is refused`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		manager := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		stranger := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, &manager.ID)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusSubmitted, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		require.ErrorIs(t, handler.Approve(ctx, stranger.ID, sheet.ID), ErrAuthorityDenied)
	})

	t.Run(`owner cannot approve their own sheet`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		manager := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		sheet := createSheet(t, conn, manager.ID, models.TimesheetStatusSubmitted, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		require.ErrorIs(t, handler.Approve(ctx, manager.ID, sheet.ID), ErrAuthorityDenied)
	})

	t.Run(`only submitted sheets can be approved`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		manager := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, &manager.ID)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusDraft, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		require.ErrorIs(t, handler.Approve(ctx, manager.ID, sheet.ID), ErrNotSubmitted)
	})
}

func TestReject(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	dispatcher := &fakeDispatcher{}
	notification.Instance = dispatcher
	ctx := context.Background()

	t.Run(`rejection stores the comment and notifies the owner`, func(t *testing.T) {
		dispatcher.reset()
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		manager := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, &manager.ID)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusSubmitted, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		err := handler.Reject(ctx, manager.ID, sheet.ID, tsapimodels.RejectData{Comment: "wrong project"})
		require.NoError(t, err)

		got := loadSheet(t, conn, sheet.ID)
		require.Equal(t, models.TimesheetStatusRejected, got.Status)
		// rejection closes the sheet by status alone
		require.Nil(t, got.LockedAt)
		require.NotNil(t, got.SubmittedAt)

		comments := []dbmodels.TimesheetComment{}
		require.NoError(t, conn.Where("timesheet_id = ?", sheet.ID).Find(&comments).Error)
		require.Len(t, comments, 1)
		require.Equal(t, "wrong project", comments[0].Text)
		require.Equal(t, manager.ID, comments[0].AuthorID)

		require.Len(t, dispatcher.sent, 1)
		require.Equal(t, notification.KindTimesheetRejected, dispatcher.sent[0].kind)
	})

	t.Run(`comment is mandatory`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		manager := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, &manager.ID)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusSubmitted, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		err := handler.Reject(ctx, manager.ID, sheet.ID, tsapimodels.RejectData{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "comment is required")
	})

	t.Run(`entry-scoped comment must point at an entry of the sheet`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		manager := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, &manager.ID)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusSubmitted, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		err := handler.Reject(ctx, manager.ID, sheet.ID, tsapimodels.RejectData{
			Comment: "bad entry",
			EntryID: uuid.NewString(),
		})
		require.ErrorIs(t, err, ErrEntryNotInTimesheet)
	})
}

func TestUnlock(t *testing.T) {
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	dispatcher := &fakeDispatcher{}
	notification.Instance = dispatcher
	ctx := context.Background()
	reason := tsapimodels.UnlockData{Reason: "payroll correction"}

	approvedSheet := func(t *testing.T, conn *gorm.DB, userID string, approvedAt time.Time) dbmodels.Timesheet {
		sheet := createSheet(t, conn, userID, models.TimesheetStatusApproved, true)
		require.NoError(t, conn.Model(&dbmodels.Timesheet{}).Where("id = ?", sheet.ID).Updates(map[string]interface{}{
			"approved_at": approvedAt,
			"locked_at":   approvedAt,
		}).Error)
		return sheet
	}

	t.Run(`admin unlocks inside the window and the sheet returns to draft`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		admin := createUser(t, conn, company.ID, models.UserRoleAdmin, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, nil)
		sheet := approvedSheet(t, conn, employee.ID, now.Add(-2*24*time.Hour))

		handler := newImpl(conn, clock.NewTestClock(now))
		require.NoError(t, handler.Unlock(ctx, admin.ID, sheet.ID, reason))

		got := loadSheet(t, conn, sheet.ID)
		require.Equal(t, models.TimesheetStatusDraft, got.Status)
		require.Nil(t, got.ApprovedAt)
		require.Nil(t, got.LockedAt)

		overrides := []dbmodels.AdminOverride{}
		require.NoError(t, conn.Where("timesheet_id = ?", sheet.ID).Find(&overrides).Error)
		require.Len(t, overrides, 1)
		require.Equal(t, models.OverrideActionUnlock, overrides[0].Action)
		require.Equal(t, models.TimesheetStatusApproved, overrides[0].PreviousStatus)
		require.Equal(t, "payroll correction", overrides[0].Reason)
	})

	t.Run(`exactly at the window boundary still unlocks`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		admin := createUser(t, conn, company.ID, models.UserRoleAdmin, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, nil)
		sheet := approvedSheet(t, conn, employee.ID, now.Add(-7*24*time.Hour))

		handler := newImpl(conn, clock.NewTestClock(now))
		require.NoError(t, handler.Unlock(ctx, admin.ID, sheet.ID, reason))
	})

	t.Run(`one day past the window is refused with an actionable error`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		admin := createUser(t, conn, company.ID, models.UserRoleAdmin, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, nil)
		sheet := approvedSheet(t, conn, employee.ID, now.Add(-8*24*time.Hour))

		handler := newImpl(conn, clock.NewTestClock(now))
		err := handler.Unlock(ctx, admin.ID, sheet.ID, reason)
		var windowErr UnlockWindowError
		require.ErrorAs(t, err, &windowErr)
		require.Equal(t, 7, windowErr.WindowDays)
		require.Equal(t, 8, windowErr.DaysAgo)
		require.Contains(t, err.Error(), "7-day unlock window")
	})

	t.Run(`rejected sheets unlock without a window check`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		admin := createUser(t, conn, company.ID, models.UserRoleAdmin, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, nil)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusRejected, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		require.NoError(t, handler.Unlock(ctx, admin.ID, sheet.ID, reason))
		require.Equal(t, models.TimesheetStatusDraft, loadSheet(t, conn, sheet.ID).Status)
	})

	t.Run(`non-admin cannot unlock`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		manager := createUser(t, conn, company.ID, models.UserRoleManager, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, &manager.ID)
		sheet := approvedSheet(t, conn, employee.ID, now.Add(-time.Hour))

		handler := newImpl(conn, clock.NewTestClock(now))
		require.ErrorIs(t, handler.Unlock(ctx, manager.ID, sheet.ID, reason), ErrAuthorityDenied)
	})

	t.Run(`draft sheets are not unlockable`, func(t *testing.T) {
		conn := setupTestDB(t)
		company := createCompany(t, conn, 7)
		admin := createUser(t, conn, company.ID, models.UserRoleAdmin, nil)
		employee := createUser(t, conn, company.ID, models.UserRoleEmployee, nil)
		sheet := createSheet(t, conn, employee.ID, models.TimesheetStatusDraft, true)

		handler := newImpl(conn, clock.NewTestClock(now))
		require.ErrorIs(t, handler.Unlock(ctx, admin.ID, sheet.ID, reason), ErrNotLocked)
	})
}
