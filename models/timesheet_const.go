package models

type TimesheetStatus string

const (
	TimesheetStatusDraft     TimesheetStatus = "DRAFT"
	TimesheetStatusSubmitted TimesheetStatus = "SUBMITTED"
	TimesheetStatusApproved  TimesheetStatus = "APPROVED"
	TimesheetStatusRejected  TimesheetStatus = "REJECTED"
)

var timesheetStatusHumanName = map[TimesheetStatus]string{
	TimesheetStatusDraft:     "Draft",
	TimesheetStatusSubmitted: "Submitted",
	TimesheetStatusApproved:  "Approved",
	TimesheetStatusRejected:  "Rejected",
}

func (s TimesheetStatus) ToHuman() string {
	if human, exist := timesheetStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsLocked reports whether the timesheet reached a terminal state that only
// an admin unlock can leave.
func (s TimesheetStatus) IsLocked() bool {
	return s == TimesheetStatusApproved || s == TimesheetStatusRejected
}

type OverrideAction string

const (
	OverrideActionUnlock       OverrideAction = "UNLOCK"
	OverrideActionForceApprove OverrideAction = "FORCE_APPROVE"
	OverrideActionForceReject  OverrideAction = "FORCE_REJECT"
)
