package escalationhandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"timetrack-backend/models"
)

func TestPendingTooLong(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	escalationDays := 3

	t.Run(`under the threshold`, func(t *testing.T) {
		submittedAt := now.Add(-2 * 24 * time.Hour)
		require.False(t, PendingTooLong(submittedAt, now, escalationDays))
	})

	t.Run(`exactly at the threshold does not fire`, func(t *testing.T) {
		submittedAt := now.Add(-3 * 24 * time.Hour)
		require.False(t, PendingTooLong(submittedAt, now, escalationDays))
	})

	t.Run(`partial day past the threshold does not fire`, func(t *testing.T) {
		submittedAt := now.Add(-3*24*time.Hour - 23*time.Hour)
		require.False(t, PendingTooLong(submittedAt, now, escalationDays))
	})

	t.Run(`one whole day past the threshold fires`, func(t *testing.T) {
		submittedAt := now.Add(-4 * 24 * time.Hour)
		require.True(t, PendingTooLong(submittedAt, now, escalationDays))
	})
}

func TestShouldEscalate(t *testing.T) {
	cases := []struct {
		name  string
		logic models.EscalationLogic
		facts Facts
		want  bool
	}{
		{"OR neither", models.EscalationLogicOr, Facts{}, false},
		{"OR pending only", models.EscalationLogicOr, Facts{PendingTooLong: true}, true},
		{"OR OOO only", models.EscalationLogicOr, Facts{ApproverOOO: true}, true},
		{"OR both", models.EscalationLogicOr, Facts{PendingTooLong: true, ApproverOOO: true}, true},
		{"AND neither", models.EscalationLogicAnd, Facts{}, false},
		{"AND pending only", models.EscalationLogicAnd, Facts{PendingTooLong: true}, false},
		{"AND OOO only", models.EscalationLogicAnd, Facts{ApproverOOO: true}, false},
		{"AND both", models.EscalationLogicAnd, Facts{PendingTooLong: true, ApproverOOO: true}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ShouldEscalate(tc.logic, tc.facts))
		})
	}
}
