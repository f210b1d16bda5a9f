package ooohandler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timetrack-backend/lib/utils/clock"
	oooapimodels "timetrack-backend/models/api/ooo"
	dbmodels "timetrack-backend/models/db"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&dbmodels.OOOPeriod{}))
	return conn
}

func period(start, end string) oooapimodels.OOOPeriodData {
	return oooapimodels.OOOPeriodData{StartDate: start, EndDate: end}
}

func TestCreate(t *testing.T) {
	// today is 2026-03-10
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.NewString()

	t.Run(`one active and one future period can coexist`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))

		_, err := handler.Create(userID, period("2026-03-09", "2026-03-12"))
		require.NoError(t, err)
		_, err = handler.Create(userID, period("2026-03-20", "2026-03-25"))
		require.NoError(t, err)
	})

	t.Run(`a second active period is refused`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))

		_, err := handler.Create(userID, period("2026-03-09", "2026-03-12"))
		require.NoError(t, err)
		_, err = handler.Create(userID, period("2026-03-10", "2026-03-11"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "active OOO period")
	})

	t.Run(`a second future period is refused`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))

		_, err := handler.Create(userID, period("2026-03-20", "2026-03-25"))
		require.NoError(t, err)
		_, err = handler.Create(userID, period("2026-04-01", "2026-04-05"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "future OOO period")
	})

	t.Run(`periods in the past are not constrained`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))

		_, err := handler.Create(userID, period("2026-01-01", "2026-01-05"))
		require.NoError(t, err)
		_, err = handler.Create(userID, period("2026-02-01", "2026-02-05"))
		require.NoError(t, err)
	})

	t.Run(`period starting today counts as active, not future`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))

		_, err := handler.Create(userID, period("2026-03-10", "2026-03-15"))
		require.NoError(t, err)
		// future slot is still open
		_, err = handler.Create(userID, period("2026-03-20", "2026-03-25"))
		require.NoError(t, err)
		// but the active slot is taken
		_, err = handler.Create(userID, period("2026-03-08", "2026-03-10"))
		require.Error(t, err)
	})

	t.Run(`end date before start date is invalid`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))

		_, err := handler.Create(userID, period("2026-03-12", "2026-03-09"))
		require.Error(t, err)
	})

	t.Run(`different users do not share the limit`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))

		_, err := handler.Create(userID, period("2026-03-09", "2026-03-12"))
		require.NoError(t, err)
		_, err = handler.Create(uuid.NewString(), period("2026-03-09", "2026-03-12"))
		require.NoError(t, err)
	})
}

func TestDelete(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.NewString()

	t.Run(`active period can be cancelled`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))
		id, err := handler.Create(userID, period("2026-03-09", "2026-03-12"))
		require.NoError(t, err)
		require.NoError(t, handler.Delete(userID, id))
	})

	t.Run(`period ending today can still be cancelled`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))
		id, err := handler.Create(userID, period("2026-03-08", "2026-03-10"))
		require.NoError(t, err)
		require.NoError(t, handler.Delete(userID, id))
	})

	t.Run(`past period cannot be cancelled`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))
		id, err := handler.Create(userID, period("2026-01-01", "2026-01-05"))
		require.NoError(t, err)
		err = handler.Delete(userID, id)
		require.Error(t, err)
		require.Contains(t, err.Error(), "past OOO periods")
	})

	t.Run(`someone else's period is not found`, func(t *testing.T) {
		conn := setupTestDB(t)
		handler := newImpl(conn, clock.NewTestClock(now))
		id, err := handler.Create(userID, period("2026-03-09", "2026-03-12"))
		require.NoError(t, err)
		require.Error(t, handler.Delete(uuid.NewString(), id))
	})
}

func TestListAndIsUserOOO(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.NewString()

	conn := setupTestDB(t)
	handler := newImpl(conn, clock.NewTestClock(now))
	_, err := handler.Create(userID, period("2026-01-01", "2026-01-05"))
	require.NoError(t, err)
	_, err = handler.Create(userID, period("2026-03-09", "2026-03-12"))
	require.NoError(t, err)
	_, err = handler.Create(userID, period("2026-03-20", "2026-03-25"))
	require.NoError(t, err)

	t.Run(`list groups periods by active, future and past`, func(t *testing.T) {
		view, err := handler.List(userID)
		require.NoError(t, err)
		require.Len(t, view.Active, 1)
		require.Len(t, view.Future, 1)
		require.Len(t, view.Past, 1)
		require.Equal(t, "2026-03-09", view.Active[0].StartDate)
	})

	t.Run(`IsUserOOO is inclusive at both ends`, func(t *testing.T) {
		isOOO, err := handler.IsUserOOO(userID, time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.True(t, isOOO)

		isOOO, err = handler.IsUserOOO(userID, time.Date(2026, 3, 12, 23, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.True(t, isOOO)

		isOOO, err = handler.IsUserOOO(userID, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.False(t, isOOO)
	})
}
