package timesheethandler

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrTimesheetNotFound = errors.New("timesheet not found")
	ErrAccessDenied      = errors.New("no access to this timesheet")

	ErrNotOwner       = errors.New("only the timesheet owner can submit it")
	ErrNotDraft       = errors.New("only draft timesheets can be submitted")
	ErrEmptyTimesheet = errors.New("cannot submit an empty timesheet, add time entries first")

	ErrNotSubmitted    = errors.New("only submitted timesheets can be approved or rejected")
	ErrAuthorityDenied = errors.New("no approval authority over this timesheet")

	ErrNotLocked           = errors.New("only approved or rejected timesheets can be unlocked")
	ErrEntryNotInTimesheet = errors.New("entry does not belong to this timesheet")
	ErrTimesheetLocked     = errors.New("timesheet is locked and cannot be modified")
)

// UnlockWindowError is returned when an admin tries to unlock an approved
// timesheet after the company's unlock window has passed.
type UnlockWindowError struct {
	WindowDays int
	DaysAgo    int
}

func (e UnlockWindowError) Error() string {
	return fmt.Sprintf("timesheet is outside the %d-day unlock window, approved %d days ago", e.WindowDays, e.DaysAgo)
}
