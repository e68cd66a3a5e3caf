package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Valid проверяет, что роль входит в закрытый набор
func (r Role) Valid() bool {
	switch r {
	case RoleStaff, RoleManager, RoleAdmin:
		return true
	}
	return false
}

type Employee struct {
	ID                  uint            `gorm:"primarykey" json:"id"`
	FirstName           string          `gorm:"not null" json:"first_name"`
	LastName            string          `json:"last_name"`
	Role                Role            `gorm:"type:varchar(20);not null;default:'staff';index" json:"role"`
	Salary              decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"salary"`
	PhoneNo             string          `json:"phone_no"`
	Email               string          `json:"email"`
	ChatID              int64           `gorm:"index" json:"chat_id"`
	EmploymentStartDate *time.Time      `gorm:"type:date" json:"employment_start_date"`

	// Производные поля, пересчитываются из журнала отгулов
	DaysWorkedThisMonth int `gorm:"not null;default:0" json:"days_worked_this_month"`
	TotalDaysWorked     int `gorm:"not null;default:0" json:"total_days_worked"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// FullName возвращает имя и фамилию через пробел
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}

// Can проверяет право по таблице ролей
func (e *Employee) Can(permission Permission) bool {
	return HasPermission(e.Role, permission)
}

// IsValid проверяет валидность данных
func (e *Employee) IsValid() bool {
	if strings.TrimSpace(e.FirstName) == "" {
		return false
	}
	if !e.Role.Valid() {
		return false
	}
	if e.Salary.IsNegative() {
		return false
	}
	return true
}
