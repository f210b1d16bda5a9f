package companystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "timetrack-backend/models/db"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.Company, err error)
	GetSettings(companyID string) (rec *dbmodels.CompanySettings, err error)
	UpdateSettings(companyID string, updMap map[string]interface{}) error
	CreateAudit(rec dbmodels.CompanySettingsAudit) error
	ListCompanies() (list []dbmodels.Company, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.Company, error) {
	rec := dbmodels.Company{}
	err := i.db.
		Where("id = ?", id).
		Preload("Settings").
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

func (i impl) GetSettings(companyID string) (*dbmodels.CompanySettings, error) {
	rec := dbmodels.CompanySettings{}
	err := i.db.
		Where("company_id = ?", companyID).
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

func (i impl) UpdateSettings(companyID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.CompanySettings{}).
		Where("company_id = ?", companyID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("company settings not found")
	}
	return nil
}

func (i impl) CreateAudit(rec dbmodels.CompanySettingsAudit) error {
	return i.db.Create(&rec).Error
}

func (i impl) ListCompanies() (list []dbmodels.Company, err error) {
	list = []dbmodels.Company{}
	err = i.db.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
