package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/booking"
	memberRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/member"
)

type MockBookingRepo struct{ mock.Mock }
type MockStaffRepo struct{ mock.Mock }
type MockMemberRepo struct{ mock.Mock }
type MockMenuRepo struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByStaffWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByMemberWithFilter(ctx context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
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

func (m *MockMemberRepo) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMenuRepo) GetByID(ctx context.Context, id int64) (*domain.ServiceMenu, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceMenu), args.Error(1)
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fixedTime провайдер фиксированного времени
type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Среда теста: сейчас 2026-01-01 10:00 UTC, дата бронирования
// по умолчанию задаётся запросом.
var testNow = time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	bookings *MockBookingRepo
	staff    *MockStaffRepo
	members  *MockMemberRepo
	menus    *MockMenuRepo
	uc       *UseCase
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		bookings: new(MockBookingRepo),
		staff:    new(MockStaffRepo),
		members:  new(MockMemberRepo),
		menus:    new(MockMenuRepo),
	}
	f.uc = NewUseCase(f.bookings, f.staff, f.members, f.menus, fakeTxManager{}, nopLogger{})
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func (f *fixture) withMember(m *domain.Member) *fixture {
	f.members.On("GetByID", mock.Anything, m.ID).Return(m, nil)
	return f
}

func (f *fixture) withStaff(s *domain.Staff) *fixture {
	f.staff.On("GetByID", mock.Anything, s.ID).Return(s, nil)
	return f
}

func (f *fixture) withMenu(m *domain.ServiceMenu) *fixture {
	f.menus.On("GetByID", mock.Anything, m.ID).Return(m, nil)
	return f
}

// withFullShift даёт сотруднику смену 09:00-18:00 на все дни недели
func (f *fixture) withFullShift(staffID int64) *fixture {
	shifts := make([]*domain.Shift, 0, 7)
	for dow := 0; dow < 7; dow++ {
		shifts = append(shifts, &domain.Shift{
			StaffID: staffID, DayOfWeek: dow, StartTime: "09:00", EndTime: "18:00", IsActive: true,
		})
	}
	f.staff.On("GetShiftsByStaffIDs", mock.Anything, []int64{staffID}).Return(shifts, nil)
	f.staff.On("GetOverridesByStaffIDsAndDate", mock.Anything, []int64{staffID}, mock.Anything).
		Return([]*domain.ShiftOverride{}, nil)
	return f
}

func defaultMember() *domain.Member {
	return &domain.Member{
		ID: 10, Plan: domain.PlanStandard, ContractedSessions: 4,
		JoinDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), IsActive: true,
	}
}

func defaultStaff() *domain.Staff {
	return &domain.Staff{ID: 1, Name: "tanaka", IsActive: true, MaxConcurrentBookings: 1}
}

func defaultMenu() *domain.ServiceMenu {
	return &domain.ServiceMenu{ID: 3, Name: "personal-60", DurationMinutes: 60, Price: 8800, IsActive: true}
}

func defaultRequest(date time.Time) *Request {
	return &Request{MemberID: 10, StaffID: 1, MenuID: 3, Date: date, StartTime: "11:00"}
}

func TestExecute_MemberNotFound(t *testing.T) {
	f := newFixture(testNow)
	f.members.On("GetByID", mock.Anything, int64(10)).Return(nil, memberRepo.ErrMemberNotFound)

	_, err := f.uc.Execute(context.Background(), defaultRequest(testNow.AddDate(0, 0, 5)))
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestExecute_HorizonByPlan(t *testing.T) {
	tests := []struct {
		name    string
		plan    domain.Plan
		date    time.Time
		wantErr error
	}{
		// Сегодня 2026-01-01: для standard (30 дней) 2026-02-05 за горизонтом
		{"standard beyond horizon", domain.PlanStandard, time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), ErrHorizonExceeded},
		{"standard inside horizon", domain.PlanStandard, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), nil},
		{"standard exactly at horizon", domain.PlanStandard, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), nil},
		{"premium allows 60 days", domain.PlanPremium, time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC), nil},
		{"digital prepaid only 7 days", domain.PlanDigitalPrepaid, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), ErrHorizonExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := defaultMember()
			member.Plan = tt.plan

			f := newFixture(testNow).
				withMember(member).
				withStaff(defaultStaff()).
				withMenu(defaultMenu()).
				withFullShift(1)

			f.bookings.On("GetByStaffWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
			f.bookings.On("GetByMemberWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
			f.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{
				ID: 100, MemberID: 10, StaffID: 1, StartTime: "11:00", DurationMinutes: 60,
				Status: domain.StatusConfirmed, Type: domain.TypeRegular,
			}, nil)

			_, err := f.uc.Execute(context.Background(), defaultRequest(tt.date))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_LeadTimeBoundary(t *testing.T) {
	t.Run("exactly 24 hours ahead is allowed", func(t *testing.T) {
		// Сейчас 10:00, бронирование завтра в 10:00, ровно 24 часа
		now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
		f := newFixture(now).
			withMember(defaultMember()).
			withStaff(defaultStaff()).
			withMenu(defaultMenu()).
			withFullShift(1)

		f.bookings.On("GetByStaffWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
		f.bookings.On("GetByMemberWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 100, Status: domain.StatusConfirmed}, nil)

		req := defaultRequest(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
		req.StartTime = "10:00"

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("less than 24 hours is rejected", func(t *testing.T) {
		// Сейчас 10:00:01, до завтрашних 10:00 меньше 24 часов
		now := time.Date(2026, 1, 1, 10, 0, 1, 0, time.UTC)
		f := newFixture(now).
			withMember(defaultMember()).
			withStaff(defaultStaff()).
			withMenu(defaultMenu())

		req := defaultRequest(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
		req.StartTime = "10:00"

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})
}

func TestExecute_SlotConflict(t *testing.T) {
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	existing := []*domain.Booking{
		{StaffID: 1, StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}

	t.Run("overlapping request is rejected", func(t *testing.T) {
		f := newFixture(testNow).
			withMember(defaultMember()).
			withStaff(defaultStaff()).
			withMenu(defaultMenu()).
			withFullShift(1)
		f.bookings.On("GetByStaffWithFilter", mock.Anything, mock.Anything).Return(existing, nil)

		req := defaultRequest(date)
		req.StartTime = "10:30"

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("adjacent request succeeds", func(t *testing.T) {
		f := newFixture(testNow).
			withMember(defaultMember()).
			withStaff(defaultStaff()).
			withMenu(defaultMenu()).
			withFullShift(1)
		f.bookings.On("GetByStaffWithFilter", mock.Anything, mock.Anything).Return(existing, nil)
		f.bookings.On("GetByMemberWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
		f.bookings.On("Create", mock.Anything, mock.Anything).Return(&domain.Booking{ID: 101, Status: domain.StatusConfirmed}, nil)

		req := defaultRequest(date)
		req.StartTime = "11:00"

		_, err := f.uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestExecute_ConcurrentInsertMapsToSlotConflict(t *testing.T) {
	f := newFixture(testNow).
		withMember(defaultMember()).
		withStaff(defaultStaff()).
		withMenu(defaultMenu()).
		withFullShift(1)

	f.bookings.On("GetByStaffWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	f.bookings.On("GetByMemberWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	// Конкурентная вставка успела первой: exclusion constraint сработал
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(nil, bookingRepo.ErrSlotTaken)

	_, err := f.uc.Execute(context.Background(), defaultRequest(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_OutsideShiftRejected(t *testing.T) {
	f := newFixture(testNow).
		withMember(defaultMember()).
		withStaff(defaultStaff()).
		withMenu(defaultMenu()).
		withFullShift(1)

	// Смена 09:00-18:00, запрос 17:30-18:30 выходит за конец смены
	req := defaultRequest(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
	req.StartTime = "17:30"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffUnavailable)
}

func TestExecute_OverLimitFlagsAdditional(t *testing.T) {
	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	member := defaultMember()
	member.ContractedSessions = 2

	// Квоту занимают подтверждённые и отменённые со штрафом;
	// отменённые без штрафа место возвращают
	monthBookings := []*domain.Booking{
		{Status: domain.StatusConfirmed},
		{Status: domain.StatusCancelledLate},
		{Status: domain.StatusCancelled},
	}

	f := newFixture(testNow).
		withMember(member).
		withStaff(defaultStaff()).
		withMenu(defaultMenu()).
		withFullShift(1)

	f.bookings.On("GetByStaffWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
	f.bookings.On("GetByMemberWithFilter", mock.Anything, mock.Anything).Return(monthBookings, nil)

	var captured *domain.Booking
	f.bookings.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*domain.Booking)
	}).Return(&domain.Booking{ID: 102, Status: domain.StatusConfirmed, Type: domain.TypeAdditional}, nil)

	resp, err := f.uc.Execute(context.Background(), defaultRequest(date))
	require.NoError(t, err)

	assert.True(t, resp.IsOverLimit)
	require.NotNil(t, captured)
	assert.Equal(t, domain.TypeAdditional, captured.Type)
	// Бронирование создано несмотря на превышение квоты
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
}
