package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"salary-admin/internal/models"
	"salary-admin/internal/repository"
)

type AdvanceService struct {
	advanceRepo   repository.AdvanceRepository
	employeeRepo  repository.EmployeeRepository
	notifications *NotificationService
	now           func() time.Time
	logger        *logrus.Logger
}

func NewAdvanceService(
	advanceRepo repository.AdvanceRepository,
	employeeRepo repository.EmployeeRepository,
	notifications *NotificationService,
) *AdvanceService {
	return &AdvanceService{
		advanceRepo:   advanceRepo,
		employeeRepo:  employeeRepo,
		notifications: notifications,
		now:           time.Now,
		logger:        newLogger(),
	}
}

// RequestAdvance создает заявку на аванс (сотрудники и менеджеры)
func (s *AdvanceService) RequestAdvance(ctx context.Context, employeeID uint, amount decimal.Decimal, reason string) (*models.Advance, error) {
	employee, err := loadEmployee(ctx, s.employeeRepo, employeeID)
	if err != nil {
		return nil, err
	}

	if !employee.Can(models.PermissionAdvanceRequest) {
		s.logger.WithField("employee_id", employeeID).Warn("Advance request denied")
		return nil, permissionDenied("only staff and managers can request advances")
	}

	if !amount.IsPositive() {
		return nil, newValidationError("amount", "must be positive")
	}

	advance := &models.Advance{
		PIN:         newPIN(),
		EmployeeID:  employeeID,
		Amount:      amount,
		Reason:      strings.TrimSpace(reason),
		Status:      models.AdvanceStatusPending,
		RequestDate: s.now(),
	}

	if err := s.advanceRepo.Create(ctx, advance); err != nil {
		return nil, storageError("create advance", err)
	}

	advance.Employee = *employee
	return advance, nil
}

// ApproveAdvance принимает решение по заявке (только администраторы)
func (s *AdvanceService) ApproveAdvance(ctx context.Context, advanceID, adminID uint, approved bool, notes string) (*models.Advance, error) {
	admin, err := loadEmployee(ctx, s.employeeRepo, adminID)
	if err != nil {
		return nil, err
	}

	if !admin.Can(models.PermissionAdvanceApprove) {
		s.logger.WithField("employee_id", adminID).Warn("Advance approval denied")
		return nil, permissionDenied("only admins can approve advances")
	}

	advance, err := s.advanceRepo.GetByID(ctx, advanceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAdvanceNotFound
	}
	if err != nil {
		return nil, storageError("load advance", err)
	}

	if !advance.IsPending() {
		return nil, ErrAlreadyProcessed
	}

	now := s.now()
	advance.Status = models.AdvanceStatusRejected
	if approved {
		advance.Status = models.AdvanceStatusApproved
	}
	advance.ApprovedByID = &adminID
	advance.ApprovalDate = &now
	advance.Notes = strings.TrimSpace(notes)

	if err := s.advanceRepo.Update(ctx, advance); err != nil {
		return nil, storageError("update advance", err)
	}

	s.logger.WithFields(logrus.Fields{
		"advance_id": advance.ID,
		"pin":        advance.PIN,
		"status":     advance.Status,
		"admin_id":   adminID,
	}).Info("Advance decision recorded")

	if s.notifications != nil {
		s.notifications.SendAdvanceDecision(ctx, advance)
	}

	return advance, nil
}

func (s *AdvanceService) GetPendingAdvances(ctx context.Context) ([]*models.Advance, error) {
	advances, err := s.advanceRepo.GetPending(ctx)
	if err != nil {
		return nil, storageError("list pending advances", err)
	}
	return advances, nil
}

func (s *AdvanceService) GetEmployeeAdvances(ctx context.Context, employeeID uint) ([]*models.Advance, error) {
	advances, err := s.advanceRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, storageError("list employee advances", err)
	}
	return advances, nil
}

// NotifyPendingAdvances отправляет администратору сводку по ожидающим заявкам
func (s *AdvanceService) NotifyPendingAdvances(ctx context.Context, adminID uint) (int, error) {
	admin, err := loadEmployee(ctx, s.employeeRepo, adminID)
	if err != nil {
		return 0, err
	}

	if !admin.Can(models.PermissionAdvanceApprove) {
		return 0, permissionDenied("only admins can receive pending advance summaries")
	}

	pending, err := s.GetPendingAdvances(ctx)
	if err != nil {
		return 0, err
	}

	if s.notifications == nil {
		return 0, ErrNotificationDisabled
	}

	if err := s.notifications.SendPendingAdvancesSummary(ctx, admin, pending); err != nil {
		return 0, err
	}

	return len(pending), nil
}
