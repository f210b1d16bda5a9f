package escalationhandler

import (
	"time"

	"timetrack-backend/lib/utils/clock"
	"timetrack-backend/models"
)

// Facts are the two inputs of the escalation decision for one
// submitted timesheet.
type Facts struct {
	PendingTooLong bool
	ApproverOOO    bool
}

// PendingTooLong reports whether a timesheet submitted at submittedAt
// has been waiting strictly more than escalationDays whole days.
// A sheet submitted exactly escalationDays ago does not qualify yet.
func PendingTooLong(submittedAt, now time.Time, escalationDays int) bool {
	return clock.WholeDaysBetween(submittedAt, now) > escalationDays
}

// ShouldEscalate combines the facts under the company's configured
// logic: OR fires on either fact, AND only when both hold.
func ShouldEscalate(logic models.EscalationLogic, facts Facts) bool {
	if logic == models.EscalationLogicAnd {
		return facts.PendingTooLong && facts.ApproverOOO
	}
	return facts.PendingTooLong || facts.ApproverOOO
}
