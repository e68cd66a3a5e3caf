package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"salary-admin/internal/models"
	"salary-admin/internal/repository"
	"salary-admin/pkg/dates"
)

type OffDayService struct {
	offDayRepo    repository.OffDayRepository
	employeeRepo  repository.EmployeeRepository
	attendance    *AttendanceService
	notifications *NotificationService
	now           func() time.Time
	logger        *logrus.Logger
}

func NewOffDayService(
	offDayRepo repository.OffDayRepository,
	employeeRepo repository.EmployeeRepository,
	attendance *AttendanceService,
	notifications *NotificationService,
) *OffDayService {
	return &OffDayService{
		offDayRepo:    offDayRepo,
		employeeRepo:  employeeRepo,
		attendance:    attendance,
		notifications: notifications,
		now:           time.Now,
		logger:        newLogger(),
	}
}

// RequestOffDay создает заявку на отгул в статусе pending
func (s *OffDayService) RequestOffDay(
	ctx context.Context,
	employeeID uint,
	date time.Time,
	dayCount int,
	offType models.OffType,
	reason string,
) (*models.OffDay, error) {
	employee, err := loadEmployee(ctx, s.employeeRepo, employeeID)
	if err != nil {
		return nil, err
	}

	if !employee.Can(models.PermissionOffDayRequest) {
		return nil, permissionDenied("employee cannot request off days")
	}

	if offType == "" {
		offType = models.OffTypeFull
	}

	offDay := &models.OffDay{
		EmployeeID: employeeID,
		Date:       dates.DateOnly(date),
		DayCount:   dayCount,
		OffType:    offType,
		Status:     models.OffDayStatusPending,
		Reason:     strings.TrimSpace(reason),
	}

	if date.IsZero() {
		return nil, newValidationError("date", "must be set")
	}
	if dayCount < 1 {
		return nil, newValidationError("day_count", "must be at least 1")
	}
	if !offDay.IsValid() {
		return nil, newValidationError("off_type", "must be full or half")
	}

	if err := s.offDayRepo.Create(ctx, offDay); err != nil {
		return nil, storageError("create off day", err)
	}

	return offDay, nil
}

// ReviewOffDay одобряет или отклоняет заявку и пересчитывает посещаемость владельца
func (s *OffDayService) ReviewOffDay(ctx context.Context, reviewerID, offDayID uint, approve bool) (*models.OffDay, error) {
	reviewer, err := loadEmployee(ctx, s.employeeRepo, reviewerID)
	if err != nil {
		return nil, err
	}

	if !reviewer.Can(models.PermissionOffDayApprove) {
		return nil, permissionDenied("only managers and admins can review off days")
	}

	offDay, err := s.offDayRepo.GetByID(ctx, offDayID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOffDayNotFound
	}
	if err != nil {
		return nil, storageError("load off day", err)
	}

	if offDay.EmployeeID == reviewerID {
		return nil, permissionDenied("cannot review your own off day request")
	}

	if !offDay.IsPending() {
		return nil, ErrAlreadyProcessed
	}

	now := s.now()
	offDay.Status = models.OffDayStatusRejected
	if approve {
		offDay.Status = models.OffDayStatusApproved
	}
	offDay.ReviewedByID = &reviewerID
	offDay.ReviewedAt = &now

	if err := s.offDayRepo.Update(ctx, offDay); err != nil {
		return nil, storageError("update off day", err)
	}

	s.logger.WithFields(logrus.Fields{
		"off_day_id":  offDay.ID,
		"status":      offDay.Status,
		"reviewer_id": reviewerID,
	}).Info("Off day reviewed")

	owner, err := loadEmployee(ctx, s.employeeRepo, offDay.EmployeeID)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load off day owner after review")
		return offDay, nil
	}

	if owner.EmploymentStartDate != nil {
		if _, err := s.attendance.UpdateAttendance(ctx, owner, time.Time{}); err != nil {
			s.logger.WithError(err).WithField("employee_id", owner.ID).Warn("Failed to refresh attendance after review")
		}
	}

	if s.notifications != nil {
		s.notifications.SendOffDayDecision(ctx, owner, offDay)
	}

	return offDay, nil
}

func (s *OffDayService) GetEmployeeOffDays(ctx context.Context, employeeID uint) ([]models.OffDay, error) {
	offDays, err := s.offDayRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, storageError("list off days", err)
	}
	return offDays, nil
}

func (s *OffDayService) GetPendingOffDays(ctx context.Context) ([]models.OffDay, error) {
	offDays, err := s.offDayRepo.GetPending(ctx)
	if err != nil {
		return nil, storageError("list pending off days", err)
	}
	return offDays, nil
}
