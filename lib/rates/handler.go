package rateshandler

import (
	"gorm.io/gorm"

	"timetrack-backend/db"
	companystore "timetrack-backend/lib/company/store"
	ratesstore "timetrack-backend/lib/rates/store"
	"timetrack-backend/models"
)

// Provider resolves the billing rate for a time entry, most specific
// source first: per-employee-per-project, per-project, per-employee,
// company default.
type Provider interface {
	Resolve(userID, projectID, companyID string) (rate float64, source models.RateSource, err error)
}

var Instance Provider

func NewHandler() {
	Instance = newImpl(db.DB)
}

// NewInstanceFor builds a resolver bound to the given connection.
func NewInstanceFor(DB *gorm.DB) Provider {
	return newImpl(DB)
}

func newImpl(DB *gorm.DB) impl {
	return impl{
		store:        ratesstore.NewInstance(DB),
		companyStore: companystore.NewInstance(DB),
	}
}

type impl struct {
	store        ratesstore.Provider
	companyStore companystore.Provider
}

func (i impl) Resolve(userID, projectID, companyID string) (float64, models.RateSource, error) {
	empProject, err := i.store.GetEmployeeProjectRate(userID, projectID)
	if err != nil {
		return 0, "", err
	}
	if empProject != nil {
		return empProject.HourlyRate, models.RateSourceEmployeeProject, nil
	}
	project, err := i.store.GetProjectRate(projectID)
	if err != nil {
		return 0, "", err
	}
	if project != nil {
		return project.HourlyRate, models.RateSourceProject, nil
	}
	employee, err := i.store.GetEmployeeRate(userID)
	if err != nil {
		return 0, "", err
	}
	if employee != nil {
		return employee.HourlyRate, models.RateSourceEmployee, nil
	}
	settings, err := i.companyStore.GetSettings(companyID)
	if err != nil {
		return 0, "", err
	}
	rate := 0.0
	if settings != nil {
		rate = settings.DefaultHourlyRate
	}
	return rate, models.RateSourceCompany, nil
}
