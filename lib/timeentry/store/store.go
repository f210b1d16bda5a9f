package timeentrystore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "timetrack-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.TimeEntry) (id string, err error)
	GetByID(id string) (rec *dbmodels.TimeEntry, err error)
	Delete(timesheetID, id string) error
	CountByTimesheet(timesheetID string) (count int64, err error)
	SumForDay(userID string, date time.Time) (total float64, err error)
	ListByTimesheet(timesheetID string) (list []dbmodels.TimeEntry, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TimeEntry) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.TimeEntry, error) {
	rec := dbmodels.TimeEntry{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) Delete(timesheetID, id string) error {
	tx := i.db.
		Where("timesheet_id = ?", timesheetID).
		Where("id = ?", id).
		Delete(&dbmodels.TimeEntry{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("time entry not found")
	}
	return nil
}

func (i impl) CountByTimesheet(timesheetID string) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.TimeEntry{}).
		Where("timesheet_id = ?", timesheetID).
		Count(&count).
		Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (i impl) SumForDay(userID string, date time.Time) (total float64, err error) {
	err = i.db.
		Model(&dbmodels.TimeEntry{}).
		Where("user_id = ?", userID).
		Where("entry_date = ?", date).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&total).
		Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (i impl) ListByTimesheet(timesheetID string) (list []dbmodels.TimeEntry, err error) {
	list = []dbmodels.TimeEntry{}
	err = i.db.
		Where("timesheet_id = ?", timesheetID).
		Order("entry_date").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
