package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"salary-admin/internal/models"
	"salary-admin/internal/repository"
	"salary-admin/pkg/dates"
)

type EmployeeService struct {
	repo   repository.EmployeeRepository
	now    func() time.Time
	logger *logrus.Logger
}

func NewEmployeeService(repo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{
		repo:   repo,
		now:    time.Now,
		logger: newLogger(),
	}
}

// CreateEmployee создает сотрудника (только для администраторов)
func (s *EmployeeService) CreateEmployee(ctx context.Context, actorID uint, employee *models.Employee) (*models.Employee, error) {
	actor, err := loadEmployee(ctx, s.repo, actorID)
	if err != nil {
		return nil, err
	}

	if !actor.Can(models.PermissionEmployeeManage) {
		s.logger.WithField("actor_id", actorID).Warn("Employee creation denied")
		return nil, permissionDenied("only admins can create employees")
	}

	return s.create(ctx, employee)
}

func (s *EmployeeService) create(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	employee.FirstName = strings.TrimSpace(employee.FirstName)
	employee.LastName = strings.TrimSpace(employee.LastName)
	if employee.Role == "" {
		employee.Role = models.RoleStaff
	}

	if employee.FirstName == "" {
		return nil, newValidationError("first_name", "must not be empty")
	}
	if !employee.Role.Valid() {
		return nil, newValidationError("role", fmt.Sprintf("unknown role %q", employee.Role))
	}
	if employee.Salary.IsNegative() {
		return nil, newValidationError("salary", "must not be negative")
	}

	if employee.EmploymentStartDate == nil {
		today := dates.DateOnly(s.now())
		employee.EmploymentStartDate = &today
	} else {
		start := dates.DateOnly(*employee.EmploymentStartDate)
		employee.EmploymentStartDate = &start
	}

	// Один телеграм-чат принадлежит одному сотруднику; 0 значит "не привязан"
	if employee.ChatID != 0 {
		_, err := s.repo.GetByChatID(ctx, employee.ChatID)
		switch {
		case err == nil:
			return nil, fmt.Errorf("%w: %d", ErrChatIDTaken, employee.ChatID)
		case !errors.Is(err, repository.ErrNotFound):
			return nil, storageError("check chat id", err)
		}
	}

	// Производные поля не задаются снаружи
	employee.DaysWorkedThisMonth = 0
	employee.TotalDaysWorked = 0

	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, storageError("create employee", err)
	}

	return employee, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id uint) (*models.Employee, error) {
	return loadEmployee(ctx, s.repo, id)
}

// GetByChatID находит сотрудника по телеграм-чату
func (s *EmployeeService) GetByChatID(ctx context.Context, chatID int64) (*models.Employee, error) {
	employee, err := s.repo.GetByChatID(ctx, chatID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, storageError("load employee by chat", err)
	}
	return employee, nil
}

func (s *EmployeeService) GetAllEmployees(ctx context.Context) ([]*models.Employee, error) {
	employees, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, storageError("list employees", err)
	}
	return employees, nil
}

// InitializeAdmin создает администратора из конфига, если его еще нет
func (s *EmployeeService) InitializeAdmin(ctx context.Context, adminChatID int64) error {
	if adminChatID == 0 {
		return nil
	}

	existing, err := s.repo.GetByChatID(ctx, adminChatID)
	if err == nil {
		if existing.IsAdmin() {
			return nil
		}
		s.logger.WithField("employee_id", existing.ID).Warn("Configured admin chat belongs to a non-admin employee")
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return storageError("load admin", err)
	}

	_, err = s.create(ctx, &models.Employee{
		FirstName: "Administrator",
		Role:      models.RoleAdmin,
		ChatID:    adminChatID,
	})
	if err != nil {
		return err
	}

	s.logger.WithField("chat_id", adminChatID).Info("Admin initialized")
	return nil
}

// SeedSampleData заполняет пустую базу демонстрационными сотрудниками
func (s *EmployeeService) SeedSampleData(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, storageError("count employees", err)
	}
	if count > 0 {
		s.logger.Info("Sample data already exists, skipping")
		return 0, nil
	}

	start := dates.FirstOfMonth(s.now()).AddDate(0, -1, 0)
	samples := []*models.Employee{
		{FirstName: "John", LastName: "Doe", Role: models.RoleStaff, Salary: decimal.NewFromInt(5000), PhoneNo: "+1234567890"},
		{FirstName: "Alice", LastName: "Williams", Role: models.RoleStaff, Salary: decimal.NewFromInt(4500), PhoneNo: "+1234567893"},
		{FirstName: "Jane", LastName: "Smith", Role: models.RoleManager, Salary: decimal.NewFromInt(8000), PhoneNo: "+1234567891"},
		{FirstName: "Bob", LastName: "Johnson", Role: models.RoleAdmin, Salary: decimal.NewFromInt(10000), PhoneNo: "+1234567892"},
	}

	for _, employee := range samples {
		employee.EmploymentStartDate = &start
		if _, err := s.create(ctx, employee); err != nil {
			return 0, err
		}
	}

	s.logger.WithField("count", len(samples)).Info("Sample data created")
	return len(samples), nil
}
