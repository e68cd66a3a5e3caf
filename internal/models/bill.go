package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Bill struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	PIN              string          `gorm:"uniqueIndex;not null" json:"pin"`
	BilledEmployeeID uint            `gorm:"not null;index" json:"billed_employee_id"`
	AmountBilled     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount_billed"`
	Date             time.Time       `gorm:"not null;index" json:"date"`
	Reason           string          `json:"reason"`
	RecordedByID     uint            `gorm:"not null;index" json:"recorded_by_id"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	BilledEmployee Employee `gorm:"foreignKey:BilledEmployeeID" json:"billed_employee"`
	RecordedBy     Employee `gorm:"foreignKey:RecordedByID" json:"recorded_by"`
}

func (Bill) TableName() string {
	return "bills"
}

// ManagerName возвращает имя того, кто записал счет
func (b *Bill) ManagerName() string {
	return b.RecordedBy.FullName()
}
