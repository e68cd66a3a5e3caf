package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"salary-admin/internal/models"
)

func newTestEmployeeService(env *testEnv) *EmployeeService {
	s := NewEmployeeService(env.employees)
	s.now = env.clock
	return s
}

func TestCreateEmployee(t *testing.T) {
	env := newTestEnv(t)
	admin := env.employee(t, "Bob", models.RoleAdmin)
	staff := env.employee(t, "John", models.RoleStaff)
	s := newTestEmployeeService(env)
	ctx := context.Background()

	created, err := s.CreateEmployee(ctx, admin.ID, &models.Employee{
		FirstName:       " Alice ",
		LastName:        "Williams",
		Salary:          decimal.NewFromInt(4500),
		TotalDaysWorked: 99,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.FirstName)
	assert.Equal(t, models.RoleStaff, created.Role)
	require.NotNil(t, created.EmploymentStartDate)
	assert.Equal(t, date(2024, 1, 10), *created.EmploymentStartDate)
	assert.Equal(t, 0, created.TotalDaysWorked)

	_, err = s.CreateEmployee(ctx, staff.ID, &models.Employee{FirstName: "Eve"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = s.CreateEmployee(ctx, admin.ID, &models.Employee{FirstName: "Eve", Role: "owner"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.CreateEmployee(ctx, admin.ID, &models.Employee{FirstName: "  "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateEmployee_ChatIDTaken(t *testing.T) {
	env := newTestEnv(t)
	admin := env.employee(t, "Bob", models.RoleAdmin)
	s := newTestEmployeeService(env)
	ctx := context.Background()

	_, err := s.CreateEmployee(ctx, admin.ID, &models.Employee{FirstName: "Eve", ChatID: admin.ChatID})
	assert.ErrorIs(t, err, ErrChatIDTaken)

	first, err := s.CreateEmployee(ctx, admin.ID, &models.Employee{FirstName: "Eve", ChatID: 555})
	require.NoError(t, err)
	_, err = s.CreateEmployee(ctx, admin.ID, &models.Employee{FirstName: "Mallory", ChatID: 555})
	assert.ErrorIs(t, err, ErrChatIDTaken)

	byChat, err := s.GetByChatID(ctx, 555)
	require.NoError(t, err)
	assert.Equal(t, first.ID, byChat.ID)

	// Сотрудники без телеграма не конфликтуют друг с другом
	_, err = s.CreateEmployee(ctx, admin.ID, &models.Employee{FirstName: "Carol"})
	require.NoError(t, err)
	_, err = s.CreateEmployee(ctx, admin.ID, &models.Employee{FirstName: "Dave"})
	require.NoError(t, err)
}

func TestInitializeAdmin(t *testing.T) {
	env := newTestEnv(t)
	s := newTestEmployeeService(env)
	ctx := context.Background()

	require.NoError(t, s.InitializeAdmin(ctx, 0))
	require.NoError(t, s.InitializeAdmin(ctx, 777))
	require.NoError(t, s.InitializeAdmin(ctx, 777))

	admin, err := s.GetByChatID(ctx, 777)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	all, err := s.GetAllEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = s.GetByChatID(ctx, 1)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestSeedSampleData(t *testing.T) {
	env := newTestEnv(t)
	s := newTestEmployeeService(env)
	ctx := context.Background()

	created, err := s.SeedSampleData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, created)

	created, err = s.SeedSampleData(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	admins, err := env.employees.GetByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "Bob", admins[0].FirstName)
	assert.Equal(t, date(2023, 12, 1), admins[0].EmploymentStartDate.UTC())
}

func TestWriteAttendanceReport(t *testing.T) {
	env := newTestEnv(t)
	staff := env.employee(t, "John", models.RoleStaff)
	ctx := context.Background()

	_, err := env.attendance().UpdateAttendance(ctx, staff, date(2024, 1, 10))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewReportService(env.employees).WriteAttendanceReport(ctx, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(attendanceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Employee ID", rows[0][0])
	assert.Equal(t, []string{"1", "John", "", "staff", "2024-01-01", "10", "10"}, rows[1])
}

func TestWriteRow_ReportsCellErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, writeRow(f, "Sheet1", 1, []interface{}{"a", 1}))
	value, err := f.GetCellValue("Sheet1", "B1")
	require.NoError(t, err)
	assert.Equal(t, "1", value)

	assert.Error(t, writeRow(f, "Sheet1", 0, []interface{}{"a"}))
	assert.Error(t, writeRow(f, "Missing", 1, []interface{}{"a"}))
}

func TestAuthorizeAttendanceUpdate(t *testing.T) {
	staff := &models.Employee{ID: 1, Role: models.RoleStaff}
	manager := &models.Employee{ID: 2, Role: models.RoleManager}

	assert.NoError(t, AuthorizeAttendanceUpdate(staff, 1))
	assert.ErrorIs(t, AuthorizeAttendanceUpdate(staff, 2), ErrPermissionDenied)
	assert.NoError(t, AuthorizeAttendanceUpdate(manager, 1))
	assert.ErrorIs(t, AuthorizeAttendanceUpdate(nil, 1), ErrPermissionDenied)

	assert.NoError(t, Authorize(manager, models.PermissionBillAdd))
	assert.ErrorIs(t, Authorize(staff, models.PermissionRecordsViewAll), ErrPermissionDenied)
}

func TestAuthorizeRecordAccess(t *testing.T) {
	staff := &models.Employee{ID: 1, Role: models.RoleStaff}
	manager := &models.Employee{ID: 2, Role: models.RoleManager}
	admin := &models.Employee{ID: 3, Role: models.RoleAdmin}

	assert.NoError(t, AuthorizeRecordAccess(staff, 1))
	assert.ErrorIs(t, AuthorizeRecordAccess(staff, 2), ErrPermissionDenied)
	assert.ErrorIs(t, AuthorizeRecordAccess(manager, 1), ErrPermissionDenied)
	assert.NoError(t, AuthorizeRecordAccess(manager, 1, models.PermissionOffDayApprove))
	assert.ErrorIs(t, AuthorizeRecordAccess(manager, 1, models.PermissionAdvanceApprove), ErrPermissionDenied)
	assert.NoError(t, AuthorizeRecordAccess(admin, 1))
	assert.ErrorIs(t, AuthorizeRecordAccess(nil, 1), ErrPermissionDenied)
}
