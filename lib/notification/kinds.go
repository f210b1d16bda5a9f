package notification

// Notification kinds understood by the dispatcher.
const (
	KindTimesheetSubmitted = "timesheet_submitted"
	KindTimesheetApproved  = "timesheet_approved"
	KindTimesheetRejected  = "timesheet_rejected"
	KindEscalationAlert    = "escalation_alert"
	KindPasswordReset      = "password_reset"
	KindAccountLocked      = "account_locked"
	KindDailyReminder      = "daily_reminder"
	KindWeeklyReminder     = "weekly_reminder"
)

var subjects = map[string]string{
	KindTimesheetSubmitted: "Timesheet Submitted for Approval",
	KindTimesheetApproved:  "Your Timesheet Has Been Approved",
	KindTimesheetRejected:  "Your Timesheet Requires Attention",
	KindEscalationAlert:    "Timesheet Requires Your Approval",
	KindPasswordReset:      "Password Reset Request",
	KindAccountLocked:      "Account Security Alert",
	KindDailyReminder:      "Time Entry Reminder",
	KindWeeklyReminder:     "Timesheet Submission Reminder",
}

var securityKinds = map[string]bool{
	KindPasswordReset: true,
	KindAccountLocked: true,
}

var fallbackMessages = map[string]string{
	KindTimesheetSubmitted: "A timesheet has been submitted for your approval.",
	KindTimesheetApproved:  "Your timesheet has been approved.",
	KindTimesheetRejected:  "Your timesheet requires attention. Please review the comments.",
	KindEscalationAlert:    "A timesheet has been escalated to you for approval.",
	KindPasswordReset:      "A password reset was requested for your account.",
	KindAccountLocked:      "Your account has been locked due to security concerns.",
	KindDailyReminder:      "Reminder: Please log your time entries for today.",
	KindWeeklyReminder:     "Reminder: Please submit your timesheet for this week.",
}

func Subject(kind string) string {
	if subject, exist := subjects[kind]; exist {
		return subject
	}
	return "TimeTrack Notification"
}

func FallbackMessage(kind string) string {
	if message, exist := fallbackMessages[kind]; exist {
		return message
	}
	return "You have a new notification."
}

func IsSecurityKind(kind string) bool {
	return securityKinds[kind]
}
