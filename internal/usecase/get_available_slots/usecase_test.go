package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	menuRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/menu"
	staffRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/staff"
	"github.com/m04kA/GMS-BookingService/pkg/ptr"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

type MockBookingRepo struct{ mock.Mock }
type MockStaffRepo struct{ mock.Mock }
type MockMenuRepo struct{ mock.Mock }

func (m *MockBookingRepo) GetActiveByStaffIDsAndDate(ctx context.Context, staffIDs []int64, date time.Time) ([]*domain.Booking, error) {
	args := m.Called(ctx, staffIDs, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockStaffRepo) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepo) ListActive(ctx context.Context) ([]*domain.Staff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Staff), args.Error(1)
}

func (m *MockStaffRepo) GetShiftsByStaffIDs(ctx context.Context, staffIDs []int64) ([]*domain.Shift, error) {
	args := m.Called(ctx, staffIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Shift), args.Error(1)
}

func (m *MockStaffRepo) GetOverridesByStaffIDsAndDate(ctx context.Context, staffIDs []int64, date time.Time) ([]*domain.ShiftOverride, error) {
	args := m.Called(ctx, staffIDs, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ShiftOverride), args.Error(1)
}

func (m *MockMenuRepo) GetByID(ctx context.Context, id int64) (*domain.ServiceMenu, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceMenu), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// 2026-03-02, понедельник
var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

// Фиксированное "сейчас" за день до запрашиваемой даты
var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newUseCase(bookings *MockBookingRepo, staff *MockStaffRepo, menus *MockMenuRepo) *UseCase {
	uc := NewUseCase(bookings, staff, menus, nopLogger{})
	uc.timeProvider = fixedClock{now: testNow}
	return uc
}

func TestExecute_MenuNotFound(t *testing.T) {
	bookings := new(MockBookingRepo)
	staff := new(MockStaffRepo)
	menus := new(MockMenuRepo)

	menus.On("GetByID", mock.Anything, int64(99)).Return(nil, menuRepo.ErrMenuNotFound)

	uc := newUseCase(bookings, staff, menus)
	_, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuID: 99})

	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestExecute_InactiveMenuIsNotFound(t *testing.T) {
	bookings := new(MockBookingRepo)
	staff := new(MockStaffRepo)
	menus := new(MockMenuRepo)

	menus.On("GetByID", mock.Anything, int64(5)).
		Return(&domain.ServiceMenu{ID: 5, DurationMinutes: 60, IsActive: false}, nil)

	uc := newUseCase(bookings, staff, menus)
	_, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuID: 5})

	assert.ErrorIs(t, err, ErrMenuNotFound)
}

func TestExecute_NoActiveStaffGivesEmptyResult(t *testing.T) {
	bookings := new(MockBookingRepo)
	staff := new(MockStaffRepo)
	menus := new(MockMenuRepo)

	menus.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.ServiceMenu{ID: 1, DurationMinutes: 60, IsActive: true}, nil)
	staff.On("ListActive", mock.Anything).Return([]*domain.Staff{}, nil)

	uc := newUseCase(bookings, staff, menus)
	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuID: 1})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, 60, resp.MenuDurationMinutes)
}

func TestExecute_UnknownStaffFilterGivesEmptyResult(t *testing.T) {
	bookings := new(MockBookingRepo)
	staff := new(MockStaffRepo)
	menus := new(MockMenuRepo)

	menus.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.ServiceMenu{ID: 1, DurationMinutes: 60, IsActive: true}, nil)
	staff.On("GetByID", mock.Anything, int64(42)).Return(nil, staffRepo.ErrStaffNotFound)

	uc := newUseCase(bookings, staff, menus)
	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuID: 1, StaffID: ptr.Ptr(int64(42))})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_PastDateGivesEmptyResult(t *testing.T) {
	bookings := new(MockBookingRepo)
	staff := new(MockStaffRepo)
	menus := new(MockMenuRepo)

	menus.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.ServiceMenu{ID: 1, DurationMinutes: 60, IsActive: true}, nil)

	uc := newUseCase(bookings, staff, menus)
	resp, err := uc.Execute(context.Background(), &Request{Date: testNow.AddDate(0, 0, -2), MenuID: 1})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	// Для прошедшей даты расписание не запрашивается
	staff.AssertNotCalled(t, "ListActive", mock.Anything)
	bookings.AssertNotCalled(t, "GetActiveByStaffIDsAndDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_SameDayDropsElapsedStarts(t *testing.T) {
	bookings := new(MockBookingRepo)
	staff := new(MockStaffRepo)
	menus := new(MockMenuRepo)

	trainer := &domain.Staff{ID: 1, IsActive: true, MaxConcurrentBookings: 1}

	menus.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.ServiceMenu{ID: 1, DurationMinutes: 60, IsActive: true}, nil)
	staff.On("ListActive", mock.Anything).Return([]*domain.Staff{trainer}, nil)
	staff.On("GetShiftsByStaffIDs", mock.Anything, []int64{1}).Return([]*domain.Shift{
		{StaffID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsActive: true},
	}, nil)
	staff.On("GetOverridesByStaffIDsAndDate", mock.Anything, []int64{1}, testDate).
		Return([]*domain.ShiftOverride{}, nil)
	bookings.On("GetActiveByStaffIDsAndDate", mock.Anything, []int64{1}, testDate).
		Return([]*domain.Booking{}, nil)

	uc := newUseCase(bookings, staff, menus)
	// Запрос на сегодня в 12:05: слоты раньше 12:15 уже прошли
	uc.timeProvider = fixedClock{now: time.Date(2026, 3, 2, 12, 5, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuID: 1})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("12:15"), resp.Slots[0].StartTime)
}

func TestExecute_DayOffOverrideBlocksStaff(t *testing.T) {
	bookings := new(MockBookingRepo)
	staff := new(MockStaffRepo)
	menus := new(MockMenuRepo)

	trainer := &domain.Staff{ID: 1, IsActive: true, MaxConcurrentBookings: 1}

	menus.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.ServiceMenu{ID: 1, DurationMinutes: 60, IsActive: true}, nil)
	staff.On("ListActive", mock.Anything).Return([]*domain.Staff{trainer}, nil)
	staff.On("GetShiftsByStaffIDs", mock.Anything, []int64{1}).Return([]*domain.Shift{
		{StaffID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsActive: true},
	}, nil)
	// Выходной на дату: регулярная смена игнорируется
	staff.On("GetOverridesByStaffIDsAndDate", mock.Anything, []int64{1}, testDate).
		Return([]*domain.ShiftOverride{{StaffID: 1, Date: testDate}}, nil)
	bookings.On("GetActiveByStaffIDsAndDate", mock.Anything, []int64{1}, testDate).
		Return([]*domain.Booking{}, nil)

	uc := newUseCase(bookings, staff, menus)
	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuID: 1})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SlotsAnnotatedWithAvailableStaff(t *testing.T) {
	bookings := new(MockBookingRepo)
	staff := new(MockStaffRepo)
	menus := new(MockMenuRepo)

	staffList := []*domain.Staff{
		{ID: 1, IsActive: true, MaxConcurrentBookings: 1},
		{ID: 2, IsActive: true, MaxConcurrentBookings: 1},
	}

	menus.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.ServiceMenu{ID: 1, DurationMinutes: 60, IsActive: true}, nil)
	staff.On("ListActive", mock.Anything).Return(staffList, nil)
	staff.On("GetShiftsByStaffIDs", mock.Anything, []int64{1, 2}).Return([]*domain.Shift{
		{StaffID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
		{StaffID: 2, DayOfWeek: 1, StartTime: "10:00", EndTime: "12:00", IsActive: true},
	}, nil)
	staff.On("GetOverridesByStaffIDsAndDate", mock.Anything, []int64{1, 2}, testDate).
		Return([]*domain.ShiftOverride{}, nil)
	bookings.On("GetActiveByStaffIDsAndDate", mock.Anything, []int64{1, 2}, testDate).
		Return([]*domain.Booking{
			{StaffID: 1, StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
		}, nil)

	uc := newUseCase(bookings, staff, menus)
	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, MenuID: 1})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	bySlot := make(map[types.TimeString][]int64)
	for _, s := range resp.Slots {
		bySlot[s.StartTime] = s.StaffIDs
	}

	// 09:00 занят бронированием у сотрудника 1, сотрудник 2 ещё не на смене
	_, has0900 := bySlot["09:00"]
	assert.False(t, has0900)

	// 10:00 свободен у обоих
	assert.Equal(t, []int64{1, 2}, bySlot["10:00"])

	// 11:00 последний слот, помещающийся в смены до 12:00
	assert.Equal(t, []int64{1, 2}, bySlot["11:00"])
	_, has1115 := bySlot["11:15"]
	assert.False(t, has1115)
}
