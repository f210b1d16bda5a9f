package dbmodels

import (
	"fmt"

	"timetrack-backend/models"
)

type User struct {
	BaseModel
	Email     string          `gorm:"type:varchar(255);uniqueIndex"`
	Password  string          `gorm:"type:varchar(128)"`
	FirstName string          `gorm:"type:varchar(150)"`
	LastName  string          `gorm:"type:varchar(150)"`
	IsActive  bool            `gorm:"default:true"`
	Role      models.UserRole `gorm:"type:varchar(20);index:idx_users_company_role"`
	CompanyID string          `gorm:"type:varchar(36);index:idx_users_company_role"`
	Company   *Company
	ManagerID *string `gorm:"type:varchar(36)"`
	Manager   *User   `gorm:"foreignKey:ManagerID"`
	Timezone  string  `gorm:"type:varchar(50);default:UTC"`

	WorkflowNotificationsEnabled bool `gorm:"default:true"`
	SecurityNotificationsEnabled bool `gorm:"default:true"`
}

func (r User) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}
