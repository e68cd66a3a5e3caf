package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"salary-admin/internal/models"
)

type AdvanceRepository interface {
	Create(ctx context.Context, advance *models.Advance) error
	GetByID(ctx context.Context, id uint) (*models.Advance, error)
	GetPending(ctx context.Context) ([]*models.Advance, error)
	GetByEmployeeID(ctx context.Context, employeeID uint) ([]*models.Advance, error)
	Update(ctx context.Context, advance *models.Advance) error
}

type GormAdvanceRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAdvanceRepository(db *gorm.DB) (*GormAdvanceRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.Advance{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate advances table")
		return nil, err
	}

	return &GormAdvanceRepository{db: db, logger: logger}, nil
}

func (r *GormAdvanceRepository) Create(ctx context.Context, advance *models.Advance) error {
	result := r.db.WithContext(ctx).Omit("Employee").Create(advance)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create advance")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":          advance.ID,
		"pin":         advance.PIN,
		"employee_id": advance.EmployeeID,
	}).Info("Advance created")

	return nil
}

func (r *GormAdvanceRepository) GetByID(ctx context.Context, id uint) (*models.Advance, error) {
	var advance models.Advance
	err := r.db.WithContext(ctx).Preload("Employee").First(&advance, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &advance, nil
}

func (r *GormAdvanceRepository) GetPending(ctx context.Context) ([]*models.Advance, error) {
	var advances []*models.Advance
	err := r.db.WithContext(ctx).Preload("Employee").
		Where("status = ?", models.AdvanceStatusPending).
		Order("request_date").
		Find(&advances).Error
	return advances, err
}

func (r *GormAdvanceRepository) GetByEmployeeID(ctx context.Context, employeeID uint) ([]*models.Advance, error) {
	var advances []*models.Advance
	err := r.db.WithContext(ctx).Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("request_date DESC").
		Find(&advances).Error
	return advances, err
}

func (r *GormAdvanceRepository) Update(ctx context.Context, advance *models.Advance) error {
	result := r.db.WithContext(ctx).Omit("Employee").Save(advance)
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", advance.ID).Error("Failed to update advance")
		return result.Error
	}
	return nil
}
