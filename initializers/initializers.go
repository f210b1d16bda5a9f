package initializers

import (
	"context"

	"timetrack-backend/config"
	"timetrack-backend/fiberlog"
	authhandler "timetrack-backend/lib/auth"
	companyhandler "timetrack-backend/lib/company"
	delegationhandler "timetrack-backend/lib/delegation"
	escalationhandler "timetrack-backend/lib/escalation"
	escalationworker "timetrack-backend/lib/escalation/worker"
	xlsexport "timetrack-backend/lib/export/xls"
	"timetrack-backend/lib/notification"
	ooohandler "timetrack-backend/lib/ooo"
	rateshandler "timetrack-backend/lib/rates"
	reportshandler "timetrack-backend/lib/reports"
	timeentryhandler "timetrack-backend/lib/timeentry"
	timesheethandler "timetrack-backend/lib/timesheet"
	provisionworker "timetrack-backend/lib/timesheet/provision-worker"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	notification.NewHandler()
	authhandler.NewHandler()
	companyhandler.NewHandler()
	ooohandler.NewHandler()
	delegationhandler.NewHandler()
	rateshandler.NewHandler()
	reportshandler.NewHandler()
	timeentryhandler.NewHandler()
	timesheethandler.NewHandler()
	escalationhandler.NewHandler()
	xlsexport.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// weekly draft provisioning
	provisionworker.StartWorker(ctx)

	// daily escalation sweep over submitted timesheets
	escalationworker.StartWorker(ctx)
}
