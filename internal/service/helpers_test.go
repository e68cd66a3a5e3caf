package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"salary-admin/internal/models"
	"salary-admin/internal/repository"
)

type testEnv struct {
	employees *repository.GormEmployeeRepository
	offDays   *repository.GormOffDayRepository
	advances  *repository.GormAdvanceRepository
	bills     *repository.GormBillRepository
	notifier  *recordingNotifier
	now       time.Time
	chatSeq   int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	env := &testEnv{notifier: &recordingNotifier{}, now: date(2024, 1, 10).Add(12 * time.Hour)}

	env.employees, err = repository.NewGormEmployeeRepository(db)
	require.NoError(t, err)
	env.offDays, err = repository.NewGormOffDayRepository(db)
	require.NoError(t, err)
	env.advances, err = repository.NewGormAdvanceRepository(db)
	require.NoError(t, err)
	env.bills, err = repository.NewGormBillRepository(db)
	require.NoError(t, err)

	return env
}

func (e *testEnv) clock() time.Time {
	return e.now
}

func (e *testEnv) attendance() *AttendanceService {
	s := NewAttendanceService(e.offDays, e.employees)
	s.now = e.clock
	return s
}

func (e *testEnv) notifications() *NotificationService {
	return NewNotificationService(e.notifier, e.employees)
}

func (e *testEnv) employee(t *testing.T, name string, role models.Role) *models.Employee {
	t.Helper()
	e.chatSeq++
	employee := &models.Employee{
		FirstName:           name,
		Role:                role,
		Salary:              decimal.NewFromInt(5000),
		ChatID:              1000 + e.chatSeq,
		EmploymentStartDate: datePtr(2024, 1, 1),
	}
	require.NoError(t, e.employees.Create(context.Background(), employee))
	return employee
}

type sentMessage struct {
	employeeID uint
	text       string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, employee *models.Employee, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMessage{employeeID: employee.ID, text: text})
	return nil
}
