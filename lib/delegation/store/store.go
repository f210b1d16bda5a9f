package delegationstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "timetrack-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ApprovalDelegation) (id string, err error)
	GetByID(delegatorID, id string) (rec *dbmodels.ApprovalDelegation, err error)
	Delete(id string) error
	ListGiven(delegatorID string) (list []dbmodels.ApprovalDelegation, err error)
	ListReceived(delegateID string) (list []dbmodels.ApprovalDelegation, err error)
	ExistsActive(delegatorID, delegateID string, asOf time.Time) (exists bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalDelegation) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(delegatorID, id string) (*dbmodels.ApprovalDelegation, error) {
	rec := dbmodels.ApprovalDelegation{}
	err := i.db.
		Where("id = ?", id).
		Where("delegator_id = ?", delegatorID).
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
		Delete(&dbmodels.ApprovalDelegation{BaseModel: dbmodels.BaseModel{ID: id}}).
		Error
}

func (i impl) ListGiven(delegatorID string) (list []dbmodels.ApprovalDelegation, err error) {
	list = []dbmodels.ApprovalDelegation{}
	err = i.db.
		Where("delegator_id = ?", delegatorID).
		Order("start_date desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListReceived(delegateID string) (list []dbmodels.ApprovalDelegation, err error) {
	list = []dbmodels.ApprovalDelegation{}
	err = i.db.
		Where("delegate_id = ?", delegateID).
		Order("start_date desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ExistsActive(delegatorID, delegateID string, asOf time.Time) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.ApprovalDelegation{}).
		Where("delegator_id = ?", delegatorID).
		Where("delegate_id = ?", delegateID).
		Where("start_date <= ?", asOf).
		Where("end_date >= ?", asOf).
		Count(&count).
		Error
	return count > 0, err
}
