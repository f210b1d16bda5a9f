package dbmodels

type Project struct {
	BaseModel
	CompanyID string `gorm:"type:varchar(36);index"`
	Name      string `gorm:"type:varchar(255)"`
	IsActive  bool   `gorm:"default:true"`
}

// Billing rate overrides, consulted most-specific first by lib/rates.

type EmployeeProjectRate struct {
	BaseModel
	UserID     string `gorm:"type:varchar(36);index:idx_emp_project_rate"`
	ProjectID  string `gorm:"type:varchar(36);index:idx_emp_project_rate"`
	HourlyRate float64
}

type ProjectRate struct {
	BaseModel
	ProjectID  string `gorm:"type:varchar(36);index"`
	HourlyRate float64
}

type EmployeeRate struct {
	BaseModel
	UserID     string `gorm:"type:varchar(36);index"`
	HourlyRate float64
}
