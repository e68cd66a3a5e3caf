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

type BillService struct {
	billRepo     repository.BillRepository
	employeeRepo repository.EmployeeRepository
	now          func() time.Time
	logger       *logrus.Logger
}

func NewBillService(billRepo repository.BillRepository, employeeRepo repository.EmployeeRepository) *BillService {
	return &BillService{
		billRepo:     billRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
		logger:       newLogger(),
	}
}

// BillUpdate - изменяемые поля счета, nil означает "не менять"
type BillUpdate struct {
	Amount *decimal.Decimal
	Date   *time.Time
	Reason *string
}

// AddBill записывает счет на сотрудника или менеджера.
// Нулевая дата означает текущий момент.
func (s *BillService) AddBill(
	ctx context.Context,
	recordedByID, employeeID uint,
	amount decimal.Decimal,
	date time.Time,
	reason string,
) (*models.Bill, error) {
	recorder, err := loadEmployee(ctx, s.employeeRepo, recordedByID)
	if err != nil {
		return nil, err
	}

	if !recorder.Can(models.PermissionBillAdd) {
		return nil, permissionDenied("only managers and admins can add bills")
	}

	employee, err := loadEmployee(ctx, s.employeeRepo, employeeID)
	if err != nil {
		return nil, err
	}

	if employee.Role != models.RoleStaff && employee.Role != models.RoleManager {
		return nil, permissionDenied("bills can only be added for staff and managers")
	}

	if recorder.Role == models.RoleManager && recordedByID == employeeID {
		return nil, permissionDenied("managers cannot add bills for themselves")
	}

	if !amount.IsPositive() {
		return nil, newValidationError("amount", "must be positive")
	}

	if date.IsZero() {
		date = s.now()
	}

	bill := &models.Bill{
		PIN:              newPIN(),
		BilledEmployeeID: employeeID,
		AmountBilled:     amount,
		Date:             date,
		Reason:           strings.TrimSpace(reason),
		RecordedByID:     recordedByID,
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, storageError("create bill", err)
	}

	bill.BilledEmployee = *employee
	bill.RecordedBy = *recorder
	return bill, nil
}

// UpdateBill меняет счет. Менеджер может менять только свои записи.
func (s *BillService) UpdateBill(ctx context.Context, billID, actorID uint, update BillUpdate) (*models.Bill, error) {
	actor, err := loadEmployee(ctx, s.employeeRepo, actorID)
	if err != nil {
		return nil, err
	}

	if !actor.Can(models.PermissionBillAdd) {
		return nil, permissionDenied("only managers and admins can update bills")
	}

	bill, err := s.billRepo.GetByID(ctx, billID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBillNotFound
	}
	if err != nil {
		return nil, storageError("load bill", err)
	}

	if !actor.IsAdmin() && bill.RecordedByID != actorID {
		return nil, permissionDenied("you can only update bills you recorded")
	}

	if update.Amount != nil {
		if !update.Amount.IsPositive() {
			return nil, newValidationError("amount", "must be positive")
		}
		bill.AmountBilled = *update.Amount
	}
	if update.Date != nil {
		bill.Date = *update.Date
	}
	if update.Reason != nil {
		bill.Reason = strings.TrimSpace(*update.Reason)
	}

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, storageError("update bill", err)
	}

	s.logger.WithFields(logrus.Fields{
		"bill_id":  bill.ID,
		"actor_id": actorID,
	}).Info("Bill updated")

	return bill, nil
}

func (s *BillService) GetEmployeeBills(ctx context.Context, employeeID uint) ([]*models.Bill, error) {
	bills, err := s.billRepo.GetByBilledEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, storageError("list employee bills", err)
	}
	return bills, nil
}

// GetAllBills возвращает все счета (только для администраторов)
func (s *BillService) GetAllBills(ctx context.Context, actorID uint) ([]*models.Bill, error) {
	actor, err := loadEmployee(ctx, s.employeeRepo, actorID)
	if err != nil {
		return nil, err
	}

	if !actor.Can(models.PermissionRecordsViewAll) {
		return nil, permissionDenied("only admins can view all bills")
	}

	bills, err := s.billRepo.GetAll(ctx)
	if err != nil {
		return nil, storageError("list bills", err)
	}
	return bills, nil
}

func (s *BillService) GetRecordedBills(ctx context.Context, employeeID uint) ([]*models.Bill, error) {
	bills, err := s.billRepo.GetByRecordedByID(ctx, employeeID)
	if err != nil {
		return nil, storageError("list recorded bills", err)
	}
	return bills, nil
}
