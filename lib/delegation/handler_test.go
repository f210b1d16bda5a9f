package delegationhandler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timetrack-backend/lib/utils/clock"
	"timetrack-backend/models"
	delegationapimodels "timetrack-backend/models/api/delegation"
	dbmodels "timetrack-backend/models/db"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&dbmodels.Company{},
		&dbmodels.User{},
		&dbmodels.ApprovalDelegation{},
	))
	return conn
}

func createUser(t *testing.T, conn *gorm.DB, role models.UserRole) dbmodels.User {
	t.Helper()
	user := dbmodels.User{
		Email:     uuid.NewString() + "@example.com",
		Password:  "hash",
		FirstName: "Test",
		LastName:  string(role),
		IsActive:  true,
		Role:      role,
		CompanyID: uuid.NewString(),
	}
	require.NoError(t, conn.Create(&user).Error)
	return user
}

func delegation(delegateID, start, end string) delegationapimodels.DelegationData {
	return delegationapimodels.DelegationData{
		DelegateID: delegateID,
		StartDate:  start,
		EndDate:    end,
	}
}

func TestCreate(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run(`manager delegates to another manager`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))
		delegator := createUser(t, conn, models.UserRoleManager)
		delegate := createUser(t, conn, models.UserRoleManager)

		id, err := handler.Create(delegator.ID, delegation(delegate.ID, "2026-03-10", "2026-03-20"))
		require.NoError(t, err)
		require.NotEmpty(t, id)
	})

	t.Run(`self-delegation is refused`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))
		delegator := createUser(t, conn, models.UserRoleManager)

		_, err := handler.Create(delegator.ID, delegation(delegator.ID, "2026-03-10", "2026-03-20"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "yourself")
	})

	t.Run(`delegation to an employee is refused`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))
		delegator := createUser(t, conn, models.UserRoleManager)
		employee := createUser(t, conn, models.UserRoleEmployee)

		_, err := handler.Create(delegator.ID, delegation(employee.ID, "2026-03-10", "2026-03-20"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "manager or admin")
	})

	t.Run(`unknown delegate is refused`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))
		delegator := createUser(t, conn, models.UserRoleManager)

		_, err := handler.Create(delegator.ID, delegation(uuid.NewString(), "2026-03-10", "2026-03-20"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "not found")
	})
}

func TestHasActiveDelegation(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	conn := setupTestDB(t)
	handler := newImpl(conn, clock.NewTestClock(now))
	delegator := createUser(t, conn, models.UserRoleManager)
	delegate := createUser(t, conn, models.UserRoleManager)
	_, err := handler.Create(delegator.ID, delegation(delegate.ID, "2026-03-10", "2026-03-20"))
	require.NoError(t, err)

	t.Run(`active on the inclusive start and end dates`, func(t *testing.T) {
		active, err := handler.HasActiveDelegation(delegator.ID, delegate.ID, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.True(t, active)

		active, err = handler.HasActiveDelegation(delegator.ID, delegate.ID, time.Date(2026, 3, 20, 18, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.True(t, active)
	})

	t.Run(`inactive outside the range`, func(t *testing.T) {
		active, err := handler.HasActiveDelegation(delegator.ID, delegate.ID, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.False(t, active)

		active, err = handler.HasActiveDelegation(delegator.ID, delegate.ID, time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.False(t, active)
	})

	t.Run(`direction matters`, func(t *testing.T) {
		active, err := handler.HasActiveDelegation(delegate.ID, delegator.ID, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.False(t, active)
	})
}

func TestCanApproveViaDelegation(t *testing.T) {
	now := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	conn := setupTestDB(t)
	handler := newImpl(conn, clock.NewTestClock(now))
	manager := createUser(t, conn, models.UserRoleManager)
	delegate := createUser(t, conn, models.UserRoleManager)
	_, err := handler.Create(manager.ID, delegation(delegate.ID, "2026-03-10", "2026-03-20"))
	require.NoError(t, err)

	t.Run(`delegate of the owner's manager is allowed`, func(t *testing.T) {
		allowed, err := handler.CanApproveViaDelegation(delegate.ID, &manager.ID)
		require.NoError(t, err)
		require.True(t, allowed)
	})

	t.Run(`owner without a manager grants nobody delegated authority`, func(t *testing.T) {
		allowed, err := handler.CanApproveViaDelegation(delegate.ID, nil)
		require.NoError(t, err)
		require.False(t, allowed)
	})

	t.Run(`revoked delegation stops working`, func(t *testing.T) {
		list, err := handler.ListGiven(manager.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.NoError(t, handler.Revoke(manager.ID, list[0].ID))

		allowed, err := handler.CanApproveViaDelegation(delegate.ID, &manager.ID)
		require.NoError(t, err)
		require.False(t, allowed)
	})
}
