package ratesstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "timetrack-backend/models/db"
)

type Provider interface {
	GetEmployeeProjectRate(userID, projectID string) (rec *dbmodels.EmployeeProjectRate, err error)
	GetProjectRate(projectID string) (rec *dbmodels.ProjectRate, err error)
	GetEmployeeRate(userID string) (rec *dbmodels.EmployeeRate, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetEmployeeProjectRate(userID, projectID string) (*dbmodels.EmployeeProjectRate, error) {
	rec := dbmodels.EmployeeProjectRate{}
	err := i.db.
		Where("user_id = ?", userID).
		Where("project_id = ?", projectID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetProjectRate(projectID string) (*dbmodels.ProjectRate, error) {
	rec := dbmodels.ProjectRate{}
	err := i.db.
		Where("project_id = ?", projectID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetEmployeeRate(userID string) (*dbmodels.EmployeeRate, error) {
	rec := dbmodels.EmployeeRate{}
	err := i.db.
		Where("user_id = ?", userID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
