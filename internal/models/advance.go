package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AdvanceStatus string

const (
	AdvanceStatusPending  AdvanceStatus = "pending"
	AdvanceStatusApproved AdvanceStatus = "approved"
	AdvanceStatusRejected AdvanceStatus = "rejected"
)

type Advance struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	PIN          string          `gorm:"uniqueIndex;not null" json:"pin"`
	EmployeeID   uint            `gorm:"not null;index" json:"employee_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Reason       string          `json:"reason"`
	Status       AdvanceStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RequestDate  time.Time       `gorm:"not null" json:"request_date"`
	ApprovedByID *uint           `json:"approved_by_id"`
	ApprovalDate *time.Time      `json:"approval_date"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID" json:"employee"`
}

func (Advance) TableName() string {
	return "advances"
}

func (a *Advance) IsPending() bool {
	return a.Status == AdvanceStatusPending
}
