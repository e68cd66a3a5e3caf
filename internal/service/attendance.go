package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"salary-admin/internal/models"
	"salary-admin/pkg/dates"
)

// OffDayLedger читает одобренные отгулы сотрудника
type OffDayLedger interface {
	GetApprovedByEmployeeID(ctx context.Context, employeeID uint) ([]models.OffDay, error)
}

// AttendanceStore хранит производные поля посещаемости
type AttendanceStore interface {
	GetAll(ctx context.Context) ([]*models.Employee, error)
	UpdateAttendance(ctx context.Context, id uint, daysWorkedThisMonth, totalDaysWorked int) error
}

// Attendance - пара производных показателей сотрудника
type Attendance struct {
	EmployeeID          uint `json:"employee_id"`
	DaysWorkedThisMonth int  `json:"days_worked_this_month"`
	TotalDaysWorked     int  `json:"total_days_worked"`
}

type AttendanceService struct {
	ledger OffDayLedger
	store  AttendanceStore
	now    func() time.Time
	logger *logrus.Logger
}

func NewAttendanceService(ledger OffDayLedger, store AttendanceStore) *AttendanceService {
	return &AttendanceService{
		ledger: ledger,
		store:  store,
		now:    time.Now,
		logger: newLogger(),
	}
}

// OverlapOffDays считает одобренные отгулы, попадающие в [start, end] включительно.
// Половина дня весит 0.5. Пересекающиеся заявки суммируются без дедупликации.
func (s *AttendanceService) OverlapOffDays(ctx context.Context, employeeID uint, start, end time.Time) (decimal.Decimal, error) {
	start, end = dates.DateOnly(start), dates.DateOnly(end)
	if start.After(end) {
		return decimal.Zero, nil
	}

	offDays, err := s.ledger.GetApprovedByEmployeeID(ctx, employeeID)
	if err != nil {
		s.logger.WithError(err).WithField("employee_id", employeeID).Error("Failed to load approved off days")
		return decimal.Zero, storageError("load approved off days", err)
	}

	total := decimal.Zero
	for i := range offDays {
		offDay := &offDays[i]
		if offDay.DayCount < 1 {
			continue
		}

		spanStart := dates.DateOnly(offDay.Date)
		spanEnd := dates.DateOnly(offDay.EndDate())
		if spanStart.After(end) || spanEnd.Before(start) {
			continue
		}

		overlap := dates.DaysInclusive(dates.Max(spanStart, start), dates.Min(spanEnd, end))
		total = total.Add(offDay.Weight().Mul(decimal.NewFromInt(int64(overlap))))
	}

	return total, nil
}

// DaysWorkedThisMonth считает рабочие дни с начала месяца referenceDate
// (или с даты приема, если она позже) по referenceDate, но не дальше сегодня.
// Нулевая referenceDate означает сегодня.
func (s *AttendanceService) DaysWorkedThisMonth(ctx context.Context, employee *models.Employee, referenceDate time.Time) (int, error) {
	employmentStart, err := employmentStart(employee)
	if err != nil {
		return 0, err
	}

	end := s.rangeEnd(referenceDate)
	start := dates.Max(dates.FirstOfMonth(s.reference(referenceDate)), employmentStart)

	return s.daysWorked(ctx, employee.ID, start, end)
}

// TotalDaysWorked считает рабочие дни с даты приема
func (s *AttendanceService) TotalDaysWorked(ctx context.Context, employee *models.Employee, referenceDate time.Time) (int, error) {
	start, err := employmentStart(employee)
	if err != nil {
		return 0, err
	}

	return s.daysWorked(ctx, employee.ID, start, s.rangeEnd(referenceDate))
}

// Calculate считает оба показателя, ничего не сохраняя
func (s *AttendanceService) Calculate(ctx context.Context, employee *models.Employee, referenceDate time.Time) (*Attendance, error) {
	thisMonth, err := s.DaysWorkedThisMonth(ctx, employee, referenceDate)
	if err != nil {
		return nil, err
	}

	total, err := s.TotalDaysWorked(ctx, employee, referenceDate)
	if err != nil {
		return nil, err
	}

	return &Attendance{
		EmployeeID:          employee.ID,
		DaysWorkedThisMonth: thisMonth,
		TotalDaysWorked:     total,
	}, nil
}

// UpdateAttendance пересчитывает и сохраняет оба показателя одной записью.
// Поля сотрудника меняются только после успешной записи.
func (s *AttendanceService) UpdateAttendance(ctx context.Context, employee *models.Employee, referenceDate time.Time) (*models.Employee, error) {
	attendance, err := s.Calculate(ctx, employee, referenceDate)
	if err != nil {
		return nil, err
	}

	err = s.store.UpdateAttendance(ctx, employee.ID, attendance.DaysWorkedThisMonth, attendance.TotalDaysWorked)
	if err != nil {
		s.logger.WithError(err).WithField("employee_id", employee.ID).Error("Failed to persist attendance")
		return nil, storageError("persist attendance", err)
	}

	employee.DaysWorkedThisMonth = attendance.DaysWorkedThisMonth
	employee.TotalDaysWorked = attendance.TotalDaysWorked

	s.logger.WithFields(logrus.Fields{
		"employee_id":            employee.ID,
		"days_worked_this_month": employee.DaysWorkedThisMonth,
		"total_days_worked":      employee.TotalDaysWorked,
	}).Info("Attendance updated")

	return employee, nil
}

// RecomputeAll обновляет показатели всех сотрудников.
// Сотрудники без даты приема пропускаются.
func (s *AttendanceService) RecomputeAll(ctx context.Context, referenceDate time.Time) (int, error) {
	employees, err := s.store.GetAll(ctx)
	if err != nil {
		return 0, storageError("list employees", err)
	}

	updated := 0
	for _, employee := range employees {
		if employee.EmploymentStartDate == nil {
			s.logger.WithField("employee_id", employee.ID).Warn("Skipping employee without employment start date")
			continue
		}

		if _, err := s.UpdateAttendance(ctx, employee, referenceDate); err != nil {
			return updated, err
		}
		updated++
	}

	s.logger.WithFields(logrus.Fields{
		"updated": updated,
		"total":   len(employees),
	}).Info("Attendance recomputed for all employees")

	return updated, nil
}

func (s *AttendanceService) daysWorked(ctx context.Context, employeeID uint, start, end time.Time) (int, error) {
	if start.After(end) {
		return 0, nil
	}

	calendarDays := decimal.NewFromInt(int64(dates.DaysInclusive(start, end)))

	offDays, err := s.OverlapOffDays(ctx, employeeID, start, end)
	if err != nil {
		return 0, err
	}

	// Банковское округление: 9.5 -> 10, 8.5 -> 8
	worked := calendarDays.Sub(offDays).RoundBank(0)
	if worked.IsNegative() {
		return 0, nil
	}

	return int(worked.IntPart()), nil
}

func (s *AttendanceService) today() time.Time {
	return dates.DateOnly(s.now())
}

func (s *AttendanceService) reference(referenceDate time.Time) time.Time {
	if referenceDate.IsZero() {
		return s.today()
	}
	return dates.DateOnly(referenceDate)
}

func (s *AttendanceService) rangeEnd(referenceDate time.Time) time.Time {
	return dates.Min(s.reference(referenceDate), s.today())
}

func employmentStart(employee *models.Employee) (time.Time, error) {
	if employee.EmploymentStartDate == nil || employee.EmploymentStartDate.IsZero() {
		return time.Time{}, ErrMissingEmploymentStart
	}
	return dates.DateOnly(*employee.EmploymentStartDate), nil
}
