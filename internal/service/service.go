package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"salary-admin/internal/models"
	"salary-admin/internal/repository"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.GetLevel())
	return logger
}

// employeeGetter - часть репозитория сотрудников, нужная для проверок прав
type employeeGetter interface {
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
}

func loadEmployee(ctx context.Context, repo employeeGetter, id uint) (*models.Employee, error) {
	employee, err := repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, storageError("load employee", err)
	}
	return employee, nil
}

// Authorize проверяет право сотрудника по таблице ролей
func Authorize(actor *models.Employee, permission models.Permission) error {
	if actor == nil || !actor.Can(permission) {
		return permissionDenied(string(permission) + " is not allowed")
	}
	return nil
}

// AuthorizeAttendanceUpdate: свою посещаемость может обновить любой,
// чужую - только менеджер или администратор.
func AuthorizeAttendanceUpdate(actor *models.Employee, employeeID uint) error {
	if actor != nil && actor.ID == employeeID {
		return nil
	}
	return Authorize(actor, models.PermissionAttendanceUpdate)
}

// AuthorizeRecordAccess: свои записи доступны всем, чужие - с правом
// records.view_all или одним из перечисленных прав.
func AuthorizeRecordAccess(actor *models.Employee, employeeID uint, extra ...models.Permission) error {
	if actor != nil && actor.ID == employeeID {
		return nil
	}
	if actor != nil {
		for _, permission := range extra {
			if actor.Can(permission) {
				return nil
			}
		}
	}
	return Authorize(actor, models.PermissionRecordsViewAll)
}
