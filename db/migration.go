package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "timetrack-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	entities := []struct {
		name  string
		model interface{}
	}{
		{"Company", &dbmodels.Company{}},
		{"CompanySettings", &dbmodels.CompanySettings{}},
		{"CompanySettingsAudit", &dbmodels.CompanySettingsAudit{}},
		{"User", &dbmodels.User{}},
		{"Project", &dbmodels.Project{}},
		{"EmployeeProjectRate", &dbmodels.EmployeeProjectRate{}},
		{"ProjectRate", &dbmodels.ProjectRate{}},
		{"EmployeeRate", &dbmodels.EmployeeRate{}},
		{"Timesheet", &dbmodels.Timesheet{}},
		{"TimeEntry", &dbmodels.TimeEntry{}},
		{"TimesheetComment", &dbmodels.TimesheetComment{}},
		{"AdminOverride", &dbmodels.AdminOverride{}},
		{"OOOPeriod", &dbmodels.OOOPeriod{}},
		{"ApprovalDelegation", &dbmodels.ApprovalDelegation{}},
	}
	for _, entity := range entities {
		if err := DB.AutoMigrate(entity.model); err != nil {
			return errors.Wrapf(err, "migration failed for %s", entity.name)
		}
	}
	log.Info("migrations finished")
	return nil
}
