package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salary-admin/internal/models"
)

func newTestAdvanceService(env *testEnv) *AdvanceService {
	s := NewAdvanceService(env.advances, env.employees, env.notifications())
	s.now = env.clock
	return s
}

func TestRequestAdvance_StaffAndManager(t *testing.T) {
	env := newTestEnv(t)
	staff := env.employee(t, "John", models.RoleStaff)
	manager := env.employee(t, "Jane", models.RoleManager)
	s := newTestAdvanceService(env)
	ctx := context.Background()

	first, err := s.RequestAdvance(ctx, staff.ID, decimal.NewFromInt(500), "Emergency medical expenses")
	require.NoError(t, err)
	assert.Equal(t, models.AdvanceStatusPending, first.Status)
	assert.Len(t, first.PIN, 12)
	assert.Equal(t, env.now, first.RequestDate)

	second, err := s.RequestAdvance(ctx, manager.ID, decimal.NewFromInt(800), "Business trip expenses")
	require.NoError(t, err)
	assert.NotEqual(t, first.PIN, second.PIN)

	advances, err := s.GetEmployeeAdvances(ctx, staff.ID)
	require.NoError(t, err)
	require.Len(t, advances, 1)
	assert.True(t, decimal.NewFromInt(500).Equal(advances[0].Amount))
}

func TestRequestAdvance_Denied(t *testing.T) {
	env := newTestEnv(t)
	admin := env.employee(t, "Bob", models.RoleAdmin)
	staff := env.employee(t, "John", models.RoleStaff)
	s := newTestAdvanceService(env)
	ctx := context.Background()

	_, err := s.RequestAdvance(ctx, admin.ID, decimal.NewFromInt(100), "")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = s.RequestAdvance(ctx, staff.ID, decimal.Zero, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.RequestAdvance(ctx, 42, decimal.NewFromInt(100), "")
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestApproveAdvance(t *testing.T) {
	env := newTestEnv(t)
	admin := env.employee(t, "Bob", models.RoleAdmin)
	manager := env.employee(t, "Jane", models.RoleManager)
	staff := env.employee(t, "John", models.RoleStaff)
	s := newTestAdvanceService(env)
	ctx := context.Background()

	advance, err := s.RequestAdvance(ctx, staff.ID, decimal.NewFromInt(500), "")
	require.NoError(t, err)

	_, err = s.ApproveAdvance(ctx, advance.ID, manager.ID, true, "")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	decided, err := s.ApproveAdvance(ctx, advance.ID, admin.ID, true, "Approved for emergency expenses")
	require.NoError(t, err)
	assert.Equal(t, models.AdvanceStatusApproved, decided.Status)
	require.NotNil(t, decided.ApprovedByID)
	assert.Equal(t, admin.ID, *decided.ApprovedByID)
	require.NotNil(t, decided.ApprovalDate)

	_, err = s.ApproveAdvance(ctx, advance.ID, admin.ID, false, "")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)

	_, err = s.ApproveAdvance(ctx, 999, admin.ID, true, "")
	assert.ErrorIs(t, err, ErrAdvanceNotFound)

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, staff.ID, env.notifier.sent[0].employeeID)
	assert.Contains(t, env.notifier.sent[0].text, "500.00")
	assert.Contains(t, env.notifier.sent[0].text, "approved")
}

func TestApproveAdvance_NotificationFailureDoesNotFailDecision(t *testing.T) {
	env := newTestEnv(t)
	env.notifier.err = errors.New("telegram unavailable")
	admin := env.employee(t, "Bob", models.RoleAdmin)
	staff := env.employee(t, "John", models.RoleStaff)
	s := newTestAdvanceService(env)
	ctx := context.Background()

	advance, err := s.RequestAdvance(ctx, staff.ID, decimal.NewFromInt(50), "")
	require.NoError(t, err)

	decided, err := s.ApproveAdvance(ctx, advance.ID, admin.ID, false, "budget")
	require.NoError(t, err)
	assert.Equal(t, models.AdvanceStatusRejected, decided.Status)
}

func TestPendingAdvancesAndSummary(t *testing.T) {
	env := newTestEnv(t)
	admin := env.employee(t, "Bob", models.RoleAdmin)
	staff := env.employee(t, "John", models.RoleStaff)
	s := newTestAdvanceService(env)
	ctx := context.Background()

	_, err := s.RequestAdvance(ctx, staff.ID, decimal.NewFromInt(100), "")
	require.NoError(t, err)
	_, err = s.RequestAdvance(ctx, staff.ID, decimal.RequireFromString("250.5"), "")
	require.NoError(t, err)

	pending, err := s.GetPendingAdvances(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "John", pending[0].Employee.FirstName)

	count, err := s.NotifyPendingAdvances(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, admin.ID, env.notifier.sent[0].employeeID)
	assert.Contains(t, env.notifier.sent[0].text, "Pending salary advances: 2")
	assert.Contains(t, env.notifier.sent[0].text, "250.50")

	_, err = s.NotifyPendingAdvances(ctx, staff.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestFormatPendingAdvances_Empty(t *testing.T) {
	assert.Equal(t, "No pending salary advances.", FormatPendingAdvances(nil))
}
