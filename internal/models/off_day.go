package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OffType string

const (
	OffTypeFull OffType = "full"
	OffTypeHalf OffType = "half"
)

type OffDayStatus string

const (
	OffDayStatusPending  OffDayStatus = "pending"
	OffDayStatusApproved OffDayStatus = "approved"
	OffDayStatusRejected OffDayStatus = "rejected"
)

var halfDay = decimal.NewFromFloat(0.5)

type OffDay struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	EmployeeID   uint         `gorm:"not null;index" json:"employee_id"`
	Date         time.Time    `gorm:"type:date;not null" json:"date"`
	DayCount     int          `gorm:"not null;default:1;check:day_count >= 1" json:"day_count"`
	OffType      OffType      `gorm:"type:varchar(10);not null;default:'full'" json:"off_type"`
	Status       OffDayStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Reason       string       `json:"reason"`
	ReviewedByID *uint        `json:"reviewed_by_id"`
	ReviewedAt   *time.Time   `json:"reviewed_at"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (OffDay) TableName() string {
	return "off_days"
}

// EndDate возвращает последний день отгула включительно
func (o *OffDay) EndDate() time.Time {
	return o.Date.AddDate(0, 0, o.DayCount-1)
}

// Weight возвращает вес одного дня: 0.5 для половины дня, иначе 1
func (o *OffDay) Weight() decimal.Decimal {
	if o.OffType == OffTypeHalf {
		return halfDay
	}
	return decimal.NewFromInt(1)
}

func (o *OffDay) IsPending() bool {
	return o.Status == OffDayStatusPending
}

func (o *OffDay) IsValid() bool {
	if o.EmployeeID == 0 {
		return false
	}
	if o.Date.IsZero() {
		return false
	}
	if o.DayCount < 1 {
		return false
	}
	if o.OffType != OffTypeFull && o.OffType != OffTypeHalf {
		return false
	}
	return true
}
