package ooostore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "timetrack-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.OOOPeriod) (id string, err error)
	GetByID(userID, id string) (rec *dbmodels.OOOPeriod, err error)
	Delete(id string) error
	ListByUser(userID string) (list []dbmodels.OOOPeriod, err error)
	CountActive(userID string, today time.Time) (count int64, err error)
	CountFuture(userID string, today time.Time) (count int64, err error)
	ExistsCovering(userID string, date time.Time) (exists bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.OOOPeriod) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(userID, id string) (*dbmodels.OOOPeriod, error) {
	rec := dbmodels.OOOPeriod{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) Delete(id string) error {
	return i.db.
		Delete(&dbmodels.OOOPeriod{BaseModel: dbmodels.BaseModel{ID: id}}).
		Error
}

func (i impl) ListByUser(userID string) (list []dbmodels.OOOPeriod, err error) {
	list = []dbmodels.OOOPeriod{}
	err = i.db.
		Where("user_id = ?", userID).
		Order("start_date").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CountActive(userID string, today time.Time) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.OOOPeriod{}).
		Where("user_id = ?", userID).
		Where("start_date <= ?", today).
		Where("end_date >= ?", today).
		Count(&count).
		Error
	return count, err
}

func (i impl) CountFuture(userID string, today time.Time) (count int64, err error) {
	err = i.db.
		Model(&dbmodels.OOOPeriod{}).
		Where("user_id = ?", userID).
		Where("start_date > ?", today).
		Count(&count).
		Error
	return count, err
}

func (i impl) ExistsCovering(userID string, date time.Time) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.OOOPeriod{}).
		Where("user_id = ?", userID).
		Where("start_date <= ?", date).
		Where("end_date >= ?", date).
		Count(&count).
		Error
	return count > 0, err
}
