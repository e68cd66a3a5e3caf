package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salary-admin/internal/models"
)

type fakeLedger struct {
	offDays []models.OffDay
	err     error
	calls   int
}

func (l *fakeLedger) GetApprovedByEmployeeID(_ context.Context, employeeID uint) ([]models.OffDay, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	var result []models.OffDay
	for _, o := range l.offDays {
		if o.EmployeeID == employeeID && o.Status == models.OffDayStatusApproved {
			result = append(result, o)
		}
	}
	return result, nil
}

type fakeAttendanceStore struct {
	employees []*models.Employee
	writes    map[uint][2]int
	err       error
}

func (s *fakeAttendanceStore) GetAll(context.Context) ([]*models.Employee, error) {
	return s.employees, nil
}

func (s *fakeAttendanceStore) UpdateAttendance(_ context.Context, id uint, month, total int) error {
	if s.err != nil {
		return s.err
	}
	if s.writes == nil {
		s.writes = map[uint][2]int{}
	}
	s.writes[id] = [2]int{month, total}
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func approved(employeeID uint, start time.Time, count int, offType models.OffType) models.OffDay {
	return models.OffDay{
		EmployeeID: employeeID,
		Date:       start,
		DayCount:   count,
		OffType:    offType,
		Status:     models.OffDayStatusApproved,
	}
}

func newTestAttendanceService(ledger *fakeLedger, store *fakeAttendanceStore, today time.Time) *AttendanceService {
	s := NewAttendanceService(ledger, store)
	s.now = func() time.Time { return today }
	return s
}

func TestOverlapOffDays_NoRequests(t *testing.T) {
	s := newTestAttendanceService(&fakeLedger{}, &fakeAttendanceStore{}, date(2024, 2, 1))

	got, err := s.OverlapOffDays(context.Background(), 1, date(2024, 1, 1), date(2024, 1, 31))

	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestOverlapOffDays_SingleDayWeights(t *testing.T) {
	cases := []struct {
		offType models.OffType
		want    string
	}{
		{models.OffTypeFull, "1"},
		{models.OffTypeHalf, "0.5"},
	}
	for _, c := range cases {
		t.Run(string(c.offType), func(t *testing.T) {
			ledger := &fakeLedger{offDays: []models.OffDay{approved(1, date(2024, 1, 5), 1, c.offType)}}
			s := newTestAttendanceService(ledger, &fakeAttendanceStore{}, date(2024, 2, 1))

			got, err := s.OverlapOffDays(context.Background(), 1, date(2024, 1, 1), date(2024, 1, 31))

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(c.want).Equal(got), "got %s", got)
		})
	}
}

func TestOverlapOffDays_SpanFullyInside(t *testing.T) {
	ledger := &fakeLedger{offDays: []models.OffDay{
		approved(1, date(2024, 1, 10), 5, models.OffTypeFull),
		approved(2, date(2024, 1, 10), 5, models.OffTypeHalf),
	}}
	s := newTestAttendanceService(ledger, &fakeAttendanceStore{}, date(2024, 2, 1))

	full, err := s.OverlapOffDays(context.Background(), 1, date(2024, 1, 1), date(2024, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, "5", full.String())

	half, err := s.OverlapOffDays(context.Background(), 2, date(2024, 1, 1), date(2024, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, "2.5", half.String())
}

func TestOverlapOffDays_PartialOverlapIsClipped(t *testing.T) {
	// Начинается за 2 дня до диапазона: 8..12 января, в диапазон попадают 10, 11, 12
	ledger := &fakeLedger{offDays: []models.OffDay{approved(1, date(2024, 1, 8), 5, models.OffTypeFull)}}
	s := newTestAttendanceService(ledger, &fakeAttendanceStore{}, date(2024, 2, 1))

	got, err := s.OverlapOffDays(context.Background(), 1, date(2024, 1, 10), date(2024, 1, 20))
	require.NoError(t, err)
	assert.Equal(t, "3", got.String())

	// Заканчивается после диапазона
	got, err = s.OverlapOffDays(context.Background(), 1, date(2024, 1, 1), date(2024, 1, 9))
	require.NoError(t, err)
	assert.Equal(t, "2", got.String())
}

func TestOverlapOffDays_IgnoresOutsideAndNonApproved(t *testing.T) {
	pending := approved(1, date(2024, 1, 15), 2, models.OffTypeFull)
	pending.Status = models.OffDayStatusPending
	rejected := approved(1, date(2024, 1, 16), 2, models.OffTypeFull)
	rejected.Status = models.OffDayStatusRejected

	ledger := &fakeLedger{offDays: []models.OffDay{
		approved(1, date(2023, 12, 25), 3, models.OffTypeFull),
		approved(1, date(2024, 2, 1), 3, models.OffTypeFull),
		pending,
		rejected,
	}}
	s := newTestAttendanceService(ledger, &fakeAttendanceStore{}, date(2024, 3, 1))

	got, err := s.OverlapOffDays(context.Background(), 1, date(2024, 1, 1), date(2024, 1, 31))

	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestOverlapOffDays_OverlappingRequestsAreSummed(t *testing.T) {
	ledger := &fakeLedger{offDays: []models.OffDay{
		approved(1, date(2024, 1, 5), 2, models.OffTypeFull),
		approved(1, date(2024, 1, 6), 1, models.OffTypeHalf),
	}}
	s := newTestAttendanceService(ledger, &fakeAttendanceStore{}, date(2024, 2, 1))

	got, err := s.OverlapOffDays(context.Background(), 1, date(2024, 1, 1), date(2024, 1, 31))

	require.NoError(t, err)
	assert.Equal(t, "2.5", got.String())
}

func TestOverlapOffDays_ReversedRangeIsZero(t *testing.T) {
	ledger := &fakeLedger{offDays: []models.OffDay{approved(1, date(2024, 1, 5), 2, models.OffTypeFull)}}
	s := newTestAttendanceService(ledger, &fakeAttendanceStore{}, date(2024, 2, 1))

	got, err := s.OverlapOffDays(context.Background(), 1, date(2024, 1, 10), date(2024, 1, 1))

	require.NoError(t, err)
	assert.True(t, got.IsZero())
	assert.Equal(t, 0, ledger.calls)
}

func TestOverlapOffDays_LedgerFailure(t *testing.T) {
	ledger := &fakeLedger{err: errors.New("connection reset")}
	s := newTestAttendanceService(ledger, &fakeAttendanceStore{}, date(2024, 2, 1))

	_, err := s.OverlapOffDays(context.Background(), 1, date(2024, 1, 1), date(2024, 1, 31))

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.EqualError(t, storageErr.Err, "connection reset")
}

func TestTotalDaysWorked_FullDayScenario(t *testing.T) {
	ledger := &fakeLedger{offDays: []models.OffDay{approved(1, date(2024, 1, 5), 2, models.OffTypeFull)}}
	s := newTestAttendanceService(ledger, &fakeAttendanceStore{}, date(2024, 6, 1))
	employee := &models.Employee{ID: 1, EmploymentStartDate: datePtr(2024, 1, 1)}

	got, err := s.TotalDaysWorked(context.Background(), employee, date(2024, 1, 10))

	require.NoError(t, err)
	assert.Equal(t, 8, got)
}

func TestTotalDaysWorked_HalfDayRoundsHalfToEven(t *testing.T) {
	employee := &models.Employee{ID: 1, EmploymentStartDate: datePtr(2024, 1, 1)}

	// 10 - 0.5 = 9.5 -> 10
	ledger := &fakeLedger{offDays: []models.OffDay{approved(1, date(2024, 1, 5), 1, models.OffTypeHalf)}}
	s := newTestAttendanceService(ledger, &fakeAttendanceStore{}, date(2024, 6, 1))
	got, err := s.TotalDaysWorked(context.Background(), employee, date(2024, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 10, got)

	// 10 - 1.5 = 8.5 -> 8
	ledger = &fakeLedger{offDays: []models.OffDay{approved(1, date(2024, 1, 5), 3, models.OffTypeHalf)}}
	s = newTestAttendanceService(ledger, &fakeAttendanceStore{}, date(2024, 6, 1))
	got, err = s.TotalDaysWorked(context.Background(), employee, date(2024, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 8, got)
}

func TestDaysWorkedThisMonth_ClipsToMonthStart(t *testing.T) {
	ledger := &fakeLedger{offDays: []models.OffDay{
		// 30.01 - 02.02: в феврале только 2 дня
		approved(1, date(2024, 1, 30), 4, models.OffTypeFull),
	}}
	s := newTestAttendanceService(ledger, &fakeAttendanceStore{}, date(2024, 6, 1))
	employee := &models.Employee{ID: 1, EmploymentStartDate: datePtr(2023, 6, 1)}

	got, err := s.DaysWorkedThisMonth(context.Background(), employee, date(2024, 2, 10))

	require.NoError(t, err)
	assert.Equal(t, 8, got)
}

func TestDaysWorkedThisMonth_EmployedMidMonth(t *testing.T) {
	s := newTestAttendanceService(&fakeLedger{}, &fakeAttendanceStore{}, date(2024, 6, 1))
	employee := &models.Employee{ID: 1, EmploymentStartDate: datePtr(2024, 3, 20)}

	got, err := s.DaysWorkedThisMonth(context.Background(), employee, date(2024, 3, 25))
	require.NoError(t, err)
	assert.Equal(t, 6, got)

	// Принят после даты отсчета
	got, err = s.DaysWorkedThisMonth(context.Background(), employee, date(2024, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestDaysWorked_FutureReferenceClampedToToday(t *testing.T) {
	today := date(2024, 1, 10)
	s := newTestAttendanceService(&fakeLedger{}, &fakeAttendanceStore{}, today.Add(15*time.Hour))
	employee := &models.Employee{ID: 1, EmploymentStartDate: datePtr(2024, 1, 1)}

	total, err := s.TotalDaysWorked(context.Background(), employee, date(2024, 1, 25))
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	month, err := s.DaysWorkedThisMonth(context.Background(), employee, date(2024, 1, 25))
	require.NoError(t, err)
	assert.Equal(t, 10, month)

	// Будущий месяц: дней еще не было
	month, err = s.DaysWorkedThisMonth(context.Background(), employee, date(2024, 2, 5))
	require.NoError(t, err)
	assert.Equal(t, 0, month)
}

func TestDaysWorked_ZeroReferenceMeansToday(t *testing.T) {
	s := newTestAttendanceService(&fakeLedger{}, &fakeAttendanceStore{}, date(2024, 1, 10))
	employee := &models.Employee{ID: 1, EmploymentStartDate: datePtr(2023, 12, 31)}

	attendance, err := s.Calculate(context.Background(), employee, time.Time{})

	require.NoError(t, err)
	assert.Equal(t, 10, attendance.DaysWorkedThisMonth)
	assert.Equal(t, 11, attendance.TotalDaysWorked)
}

func TestDaysWorked_NeverNegative(t *testing.T) {
	ledger := &fakeLedger{offDays: []models.OffDay{
		approved(1, date(2024, 1, 1), 10, models.OffTypeFull),
		approved(1, date(2024, 1, 1), 10, models.OffTypeFull),
	}}
	s := newTestAttendanceService(ledger, &fakeAttendanceStore{}, date(2024, 6, 1))
	employee := &models.Employee{ID: 1, EmploymentStartDate: datePtr(2024, 1, 1)}

	attendance, err := s.Calculate(context.Background(), employee, date(2024, 1, 10))

	require.NoError(t, err)
	assert.Equal(t, 0, attendance.DaysWorkedThisMonth)
	assert.Equal(t, 0, attendance.TotalDaysWorked)
}

func TestDaysWorked_MissingEmploymentStart(t *testing.T) {
	s := newTestAttendanceService(&fakeLedger{}, &fakeAttendanceStore{}, date(2024, 6, 1))
	employee := &models.Employee{ID: 1}

	_, err := s.TotalDaysWorked(context.Background(), employee, time.Time{})
	assert.ErrorIs(t, err, ErrMissingEmploymentStart)

	_, err = s.DaysWorkedThisMonth(context.Background(), employee, time.Time{})
	assert.ErrorIs(t, err, ErrValidation)

	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestUpdateAttendance_PersistsBothFields(t *testing.T) {
	ledger := &fakeLedger{offDays: []models.OffDay{approved(1, date(2024, 1, 5), 2, models.OffTypeFull)}}
	store := &fakeAttendanceStore{}
	s := newTestAttendanceService(ledger, store, date(2024, 1, 10))
	employee := &models.Employee{ID: 1, EmploymentStartDate: datePtr(2023, 12, 1)}

	updated, err := s.UpdateAttendance(context.Background(), employee, time.Time{})

	require.NoError(t, err)
	assert.Same(t, employee, updated)
	assert.Equal(t, 8, employee.DaysWorkedThisMonth)
	assert.Equal(t, 39, employee.TotalDaysWorked)
	assert.Equal(t, [2]int{8, 39}, store.writes[1])
}

func TestUpdateAttendance_Idempotent(t *testing.T) {
	ledger := &fakeLedger{offDays: []models.OffDay{approved(1, date(2024, 1, 5), 3, models.OffTypeHalf)}}
	store := &fakeAttendanceStore{}
	s := newTestAttendanceService(ledger, store, date(2024, 1, 20))
	employee := &models.Employee{ID: 1, EmploymentStartDate: datePtr(2024, 1, 1)}

	_, err := s.UpdateAttendance(context.Background(), employee, date(2024, 1, 10))
	require.NoError(t, err)
	first := store.writes[1]

	_, err = s.UpdateAttendance(context.Background(), employee, date(2024, 1, 10))
	require.NoError(t, err)

	assert.Equal(t, first, store.writes[1])
	assert.Equal(t, first, [2]int{employee.DaysWorkedThisMonth, employee.TotalDaysWorked})
}

func TestUpdateAttendance_StorageFailureLeavesEmployeeUntouched(t *testing.T) {
	store := &fakeAttendanceStore{err: errors.New("disk full")}
	s := newTestAttendanceService(&fakeLedger{}, store, date(2024, 1, 10))
	employee := &models.Employee{
		ID:                  1,
		EmploymentStartDate: datePtr(2024, 1, 1),
		DaysWorkedThisMonth: 3,
		TotalDaysWorked:     4,
	}

	_, err := s.UpdateAttendance(context.Background(), employee, time.Time{})

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, 3, employee.DaysWorkedThisMonth)
	assert.Equal(t, 4, employee.TotalDaysWorked)
}

func TestUpdateAttendance_ReadFailureWritesNothing(t *testing.T) {
	store := &fakeAttendanceStore{}
	s := newTestAttendanceService(&fakeLedger{err: errors.New("timeout")}, store, date(2024, 1, 10))
	employee := &models.Employee{ID: 1, EmploymentStartDate: datePtr(2024, 1, 1)}

	_, err := s.UpdateAttendance(context.Background(), employee, time.Time{})

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Empty(t, store.writes)
}

func TestRecomputeAll_SkipsEmployeesWithoutStartDate(t *testing.T) {
	store := &fakeAttendanceStore{employees: []*models.Employee{
		{ID: 1, EmploymentStartDate: datePtr(2024, 1, 1)},
		{ID: 2},
		{ID: 3, EmploymentStartDate: datePtr(2024, 1, 6)},
	}}
	s := newTestAttendanceService(&fakeLedger{}, store, date(2024, 1, 10))

	updated, err := s.RecomputeAll(context.Background(), time.Time{})

	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.Equal(t, [2]int{10, 10}, store.writes[1])
	assert.Equal(t, [2]int{5, 5}, store.writes[3])
	_, touched := store.writes[2]
	assert.False(t, touched)
}
