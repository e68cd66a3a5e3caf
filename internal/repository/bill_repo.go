package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"salary-admin/internal/models"
)

type BillRepository interface {
	Create(ctx context.Context, bill *models.Bill) error
	GetByID(ctx context.Context, id uint) (*models.Bill, error)
	GetByBilledEmployeeID(ctx context.Context, employeeID uint) ([]*models.Bill, error)
	GetByRecordedByID(ctx context.Context, employeeID uint) ([]*models.Bill, error)
	GetAll(ctx context.Context) ([]*models.Bill, error)
	Update(ctx context.Context, bill *models.Bill) error
}

type GormBillRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormBillRepository(db *gorm.DB) (*GormBillRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.Bill{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate bills table")
		return nil, err
	}

	return &GormBillRepository{db: db, logger: logger}, nil
}

func (r *GormBillRepository) withEmployees(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("BilledEmployee").Preload("RecordedBy")
}

func (r *GormBillRepository) Create(ctx context.Context, bill *models.Bill) error {
	result := r.db.WithContext(ctx).Omit("BilledEmployee", "RecordedBy").Create(bill)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create bill")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":                 bill.ID,
		"pin":                bill.PIN,
		"billed_employee_id": bill.BilledEmployeeID,
		"recorded_by_id":     bill.RecordedByID,
	}).Info("Bill created")

	return nil
}

func (r *GormBillRepository) GetByID(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := r.withEmployees(ctx).First(&bill, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &bill, nil
}

func (r *GormBillRepository) GetByBilledEmployeeID(ctx context.Context, employeeID uint) ([]*models.Bill, error) {
	var bills []*models.Bill
	err := r.withEmployees(ctx).
		Where("billed_employee_id = ?", employeeID).
		Order("date DESC").
		Find(&bills).Error
	return bills, err
}

func (r *GormBillRepository) GetByRecordedByID(ctx context.Context, employeeID uint) ([]*models.Bill, error) {
	var bills []*models.Bill
	err := r.withEmployees(ctx).
		Where("recorded_by_id = ?", employeeID).
		Order("date DESC").
		Find(&bills).Error
	return bills, err
}

func (r *GormBillRepository) GetAll(ctx context.Context) ([]*models.Bill, error) {
	var bills []*models.Bill
	err := r.withEmployees(ctx).Order("date DESC").Find(&bills).Error
	return bills, err
}

func (r *GormBillRepository) Update(ctx context.Context, bill *models.Bill) error {
	result := r.db.WithContext(ctx).Omit("BilledEmployee", "RecordedBy").Save(bill)
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", bill.ID).Error("Failed to update bill")
		return result.Error
	}
	return nil
}
