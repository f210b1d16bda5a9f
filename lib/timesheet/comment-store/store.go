package commentstore

import (
	"gorm.io/gorm"

	dbmodels "timetrack-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.TimesheetComment) (id string, err error)
	ListByTimesheet(timesheetID string) (list []dbmodels.TimesheetComment, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TimesheetComment) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByTimesheet(timesheetID string) (list []dbmodels.TimesheetComment, err error) {
	list = []dbmodels.TimesheetComment{}
	err = i.db.
		Where("timesheet_id = ?", timesheetID).
		Preload("Author").
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
