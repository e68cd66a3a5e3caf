package app

import (
	"fmt"

	"gorm.io/gorm"

	"salary-admin/internal/repository"
	"salary-admin/internal/service"
)

// Services собирает репозитории и сервисы поверх одного подключения к базе
type Services struct {
	Employees     *service.EmployeeService
	Attendance    *service.AttendanceService
	OffDays       *service.OffDayService
	Advances      *service.AdvanceService
	Bills         *service.BillService
	Reports       *service.ReportService
	Notifications *service.NotificationService
}

// NewServices создает репозитории (с миграцией схемы) и сервисы.
// notifier может быть nil, тогда уведомления только пишутся в лог.
func NewServices(db *gorm.DB, notifier service.Notifier) (*Services, error) {
	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee repository: %w", err)
	}

	offDayRepo, err := repository.NewGormOffDayRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create off day repository: %w", err)
	}

	advanceRepo, err := repository.NewGormAdvanceRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create advance repository: %w", err)
	}

	billRepo, err := repository.NewGormBillRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create bill repository: %w", err)
	}

	if notifier == nil {
		notifier = service.NewLogNotifier()
	}

	notifications := service.NewNotificationService(notifier, employeeRepo)
	attendance := service.NewAttendanceService(offDayRepo, employeeRepo)

	return &Services{
		Employees:     service.NewEmployeeService(employeeRepo),
		Attendance:    attendance,
		OffDays:       service.NewOffDayService(offDayRepo, employeeRepo, attendance, notifications),
		Advances:      service.NewAdvanceService(advanceRepo, employeeRepo, notifications),
		Bills:         service.NewBillService(billRepo, employeeRepo),
		Reports:       service.NewReportService(employeeRepo),
		Notifications: notifications,
	}, nil
}
