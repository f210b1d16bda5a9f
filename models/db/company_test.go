package dbmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWeekStartFor(t *testing.T) {
	// 2026-03-11 is a Wednesday
	target := time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name         string
		weekStartDay int
		want         time.Time
	}{
		{"Monday start", 0, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{"Wednesday start lands on the same day", 2, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)},
		{"Thursday start wraps to last week", 3, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"Sunday start", 6, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			company := Company{WeekStartDay: tc.weekStartDay}
			require.Equal(t, tc.want, company.WeekStartFor(target))
		})
	}
}

func TestOOOPeriodCovers(t *testing.T) {
	period := OOOPeriod{
		StartDate: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
	}
	require.True(t, period.Covers(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
	require.True(t, period.Covers(time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)))
	require.False(t, period.Covers(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)))
	require.False(t, period.Covers(time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC)))
}
