package timesheetstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"timetrack-backend/models"
	tsapimodels "timetrack-backend/models/api/timesheet"
	dbmodels "timetrack-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Timesheet) (id string, err error)
	GetByID(id string) (rec *dbmodels.Timesheet, err error)
	GetByUserWeek(userID string, weekStart time.Time) (rec *dbmodels.Timesheet, err error)
	Update(id string, updMap map[string]interface{}) error
	List(userID string, teamView bool, status models.TimesheetStatus) (list []dbmodels.Timesheet, err error)
	ListByStatus(status models.TimesheetStatus) (list []dbmodels.Timesheet, err error)
	ProjectNames(ids []string) (names map[string]string, err error)
	CreateOverride(rec dbmodels.AdminOverride) error
	ListOverrides(companyID string, filter tsapimodels.AuditFilter) (list []dbmodels.AdminOverride, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Timesheet) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Timesheet, error) {
	rec := dbmodels.Timesheet{}
	err := i.db.
		Where("id = ?", id).
		Preload("User").
		Preload("User.Manager").
		Preload("User.Company").
		Preload("ApprovedBy").
		Preload("Entries").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at")
		}).
		Preload("Comments.Author").
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

func (i impl) GetByUserWeek(userID string, weekStart time.Time) (*dbmodels.Timesheet, error) {
	rec := dbmodels.Timesheet{}
	err := i.db.
		Where("user_id = ?", userID).
		Where("week_start = ?", weekStart).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Timesheet{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("timesheet not found")
	}
	return nil
}

func (i impl) List(userID string, teamView bool, status models.TimesheetStatus) (list []dbmodels.Timesheet, err error) {
	list = []dbmodels.Timesheet{}
	tx := i.db.
		Preload("User").
		Preload("ApprovedBy").
		Preload("Entries").
		Order("week_start desc")
	if teamView {
		tx = tx.
			Joins("JOIN users ON users.id = timesheets.user_id").
			Where("timesheets.user_id = ? OR users.manager_id = ?", userID, userID)
	} else {
		tx = tx.Where("user_id = ?", userID)
	}
	if status != "" {
		tx = tx.Where("timesheets.status = ?", status)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByStatus(status models.TimesheetStatus) (list []dbmodels.Timesheet, err error) {
	list = []dbmodels.Timesheet{}
	err = i.db.
		Where("status = ?", status).
		Preload("User").
		Preload("User.Manager").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ProjectNames(ids []string) (map[string]string, error) {
	names := map[string]string{}
	if len(ids) == 0 {
		return names, nil
	}
	list := []dbmodels.Project{}
	err := i.db.
		Where("id IN ?", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	for _, project := range list {
		names[project.ID] = project.Name
	}
	return names, nil
}

func (i impl) CreateOverride(rec dbmodels.AdminOverride) error {
	return i.db.Create(&rec).Error
}

func (i impl) ListOverrides(companyID string, filter tsapimodels.AuditFilter) (list []dbmodels.AdminOverride, rowCount int64, err error) {
	list = []dbmodels.AdminOverride{}
	tx := i.db.
		Model(&dbmodels.AdminOverride{}).
		Joins("JOIN timesheets ON timesheets.id = admin_overrides.timesheet_id").
		Joins("JOIN users ON users.id = timesheets.user_id").
		Where("users.company_id = ?", companyID)
	if filter.Action != "" {
		tx = tx.Where("admin_overrides.action = ?", filter.Action)
	}
	if filter.AdminID != "" {
		tx = tx.Where("admin_overrides.admin_id = ?", filter.AdminID)
	}
	if filter.StartDate != "" {
		tx = tx.Where("date(admin_overrides.created_at) >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		tx = tx.Where("date(admin_overrides.created_at) <= ?", filter.EndDate)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	err = tx.
		Preload("Admin").
		Preload("Timesheet").
		Order("admin_overrides.created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}
