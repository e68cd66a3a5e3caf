package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"salary-admin/internal/models"
)

type OffDayRepository interface {
	Create(ctx context.Context, offDay *models.OffDay) error
	GetByID(ctx context.Context, id uint) (*models.OffDay, error)
	GetByEmployeeID(ctx context.Context, employeeID uint) ([]models.OffDay, error)
	GetApprovedByEmployeeID(ctx context.Context, employeeID uint) ([]models.OffDay, error)
	GetPending(ctx context.Context) ([]models.OffDay, error)
	Update(ctx context.Context, offDay *models.OffDay) error
}

type GormOffDayRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormOffDayRepository(db *gorm.DB) (*GormOffDayRepository, error) {
	logger := newLogger()

	if err := db.AutoMigrate(&models.OffDay{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate off_days table")
		return nil, err
	}

	return &GormOffDayRepository{db: db, logger: logger}, nil
}

func (r *GormOffDayRepository) Create(ctx context.Context, offDay *models.OffDay) error {
	result := r.db.WithContext(ctx).Omit("Employee").Create(offDay)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create off day")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":          offDay.ID,
		"employee_id": offDay.EmployeeID,
		"date":        offDay.Date.Format("2006-01-02"),
		"day_count":   offDay.DayCount,
	}).Info("Off day created")

	return nil
}

func (r *GormOffDayRepository) GetByID(ctx context.Context, id uint) (*models.OffDay, error) {
	var offDay models.OffDay
	if err := r.db.WithContext(ctx).First(&offDay, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &offDay, nil
}

func (r *GormOffDayRepository) GetByEmployeeID(ctx context.Context, employeeID uint) ([]models.OffDay, error) {
	var offDays []models.OffDay
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&offDays).Error
	return offDays, err
}

// GetApprovedByEmployeeID возвращает все одобренные отгулы сотрудника.
// Пересечение с диапазоном считается в памяти.
func (r *GormOffDayRepository) GetApprovedByEmployeeID(ctx context.Context, employeeID uint) ([]models.OffDay, error) {
	var offDays []models.OffDay
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND status = ?", employeeID, models.OffDayStatusApproved).
		Find(&offDays).Error
	return offDays, err
}

func (r *GormOffDayRepository) GetPending(ctx context.Context) ([]models.OffDay, error) {
	var offDays []models.OffDay
	err := r.db.WithContext(ctx).Where("status = ?", models.OffDayStatusPending).
		Order("date").
		Find(&offDays).Error
	return offDays, err
}

func (r *GormOffDayRepository) Update(ctx context.Context, offDay *models.OffDay) error {
	result := r.db.WithContext(ctx).Omit("Employee").Save(offDay)
	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", offDay.ID).Error("Failed to update off day")
		return result.Error
	}
	return nil
}
