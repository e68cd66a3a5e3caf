package repository

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"salary-admin/internal/models"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	GetByChatID(ctx context.Context, chatID int64) (*models.Employee, error)
	GetAll(ctx context.Context) ([]*models.Employee, error)
	GetByRole(ctx context.Context, role models.Role) ([]*models.Employee, error)
	UpdateAttendance(ctx context.Context, id uint, daysWorkedThisMonth, totalDaysWorked int) error
	Count(ctx context.Context) (int64, error)
}

type GormEmployeeRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormEmployeeRepository(db *gorm.DB) (*GormEmployeeRepository, error) {
	logger := newLogger()

	// Автомиграция
	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate employees table")
		return nil, err
	}

	logger.Debug("Employee repository initialized")

	return &GormEmployeeRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	result := r.db.WithContext(ctx).Create(employee)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create employee")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":   employee.ID,
		"role": employee.Role,
	}).Info("Employee created")

	return nil
}

func (r *GormEmployeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.WithContext(ctx).First(&employee, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) GetByChatID(ctx context.Context, chatID int64) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&employee).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &employee, nil
}

func (r *GormEmployeeRepository) GetAll(ctx context.Context) ([]*models.Employee, error) {
	var employees []*models.Employee
	err := r.db.WithContext(ctx).Order("id").Find(&employees).Error
	return employees, err
}

func (r *GormEmployeeRepository) GetByRole(ctx context.Context, role models.Role) ([]*models.Employee, error) {
	var employees []*models.Employee
	err := r.db.WithContext(ctx).Where("role = ?", role).Order("id").Find(&employees).Error
	return employees, err
}

// UpdateAttendance одним UPDATE записывает оба производных поля
func (r *GormEmployeeRepository) UpdateAttendance(ctx context.Context, id uint, daysWorkedThisMonth, totalDaysWorked int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"days_worked_this_month": daysWorkedThisMonth,
			"total_days_worked":      totalDaysWorked,
		})

	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", id).Error("Failed to update attendance")
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.logger.WithFields(logrus.Fields{
		"id":                     id,
		"days_worked_this_month": daysWorkedThisMonth,
		"total_days_worked":      totalDaysWorked,
	}).Debug("Attendance updated")

	return nil
}

func (r *GormEmployeeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Employee{}).Count(&count).Error
	return count, err
}
