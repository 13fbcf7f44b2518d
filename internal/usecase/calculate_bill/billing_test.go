package calculate_bill

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/ptr"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

type MockMemberRepo struct{ mock.Mock }
type MockBookingRepo struct{ mock.Mock }

func (m *MockMemberRepo) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockBookingRepo) GetByMemberWithFilter(ctx context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Расчётный месяц: март 2026
var billMonth = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func booking(id int64, day int, start types.TimeString, staffName string) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		MemberID:        10,
		BookingDate:     time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		StartTime:       start,
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		StaffName:       staffName,
	}
}

func runBill(t *testing.T, member *domain.Member, bookings []*domain.Booking) *Response {
	t.Helper()

	members := new(MockMemberRepo)
	members.On("GetByID", mock.Anything, member.ID).Return(member, nil)

	repo := new(MockBookingRepo)
	repo.On("GetByMemberWithFilter", mock.Anything, mock.Anything).Return(bookings, nil)

	uc := NewUseCase(members, repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{MemberID: member.ID, Month: billMonth})
	require.NoError(t, err)
	return resp
}

func TestExecute_TenureStageSelection(t *testing.T) {
	tests := []struct {
		name         string
		joinDate     time.Time
		wantStage    string
		wantRate     float64
		wantBaseFee  int // standard 11000
		wantAfterFee int
	}{
		// Стаж считается на конец расчётного месяца (2026-03-31)
		{"exactly five years is gold, not silver", time.Date(2021, 3, 31, 0, 0, 0, 0, time.UTC), "gold", 0.20, 11000, 8800},
		{"one day short of five years is silver", time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC), "silver", 0.10, 11000, 9900},
		{"ten years is platinum", time.Date(2016, 1, 15, 0, 0, 0, 0, time.UTC), "platinum", 0.50, 11000, 5500},
		{"under a year has no discount", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), "regular", 0, 11000, 11000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member := &domain.Member{
				ID: 10, Plan: domain.PlanStandard, ContractedSessions: 0,
				JoinDate: tt.joinDate, IsActive: true,
			}

			resp := runBill(t, member, []*domain.Booking{})

			assert.Equal(t, tt.wantStage, resp.StageName)
			assert.Equal(t, tt.wantRate, resp.DiscountRate)
			assert.Equal(t, tt.wantBaseFee, resp.BasePlanFee)
			assert.Equal(t, tt.wantAfterFee, resp.DiscountedBaseFee)
		})
	}
}

func TestExecute_ManualDiscountOverridesTenure(t *testing.T) {
	// Стаж дал бы platinum (50%), но ручная скидка 15% сильнее
	member := &domain.Member{
		ID: 10, Plan: domain.PlanPremium, ContractedSessions: 0,
		JoinDate:           time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
		ManualDiscountRate: ptr.Ptr(0.15),
		IsActive:           true,
	}

	resp := runBill(t, member, []*domain.Booking{})

	assert.Equal(t, "manual", resp.StageName)
	assert.Equal(t, 0.15, resp.DiscountRate)
	// floor(22000 * 0.85) = 18700
	assert.Equal(t, 18700, resp.DiscountedBaseFee)
}

func TestExecute_ContractedFeeUsesMainTrainerRate(t *testing.T) {
	member := &domain.Member{
		ID: 10, Plan: domain.PlanStandard, ContractedSessions: 4,
		JoinDate:    time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		MainTrainer: ptr.Ptr("suzuki"),
		IsActive:    true,
	}

	resp := runBill(t, member, []*domain.Booking{})

	assert.Equal(t, 8250, resp.MainTrainerRate)
	assert.Equal(t, 4*8250, resp.ContractedFee)
}

func TestExecute_UnknownMainTrainerFallsBackToDefaultRate(t *testing.T) {
	member := &domain.Member{
		ID: 10, Plan: domain.PlanStandard, ContractedSessions: 2,
		JoinDate:    time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		MainTrainer: ptr.Ptr("newcomer"),
		IsActive:    true,
	}

	resp := runBill(t, member, []*domain.Booking{})

	assert.Equal(t, domain.DefaultTrainerRate, resp.MainTrainerRate)
}

func TestExecute_OverflowOrdering(t *testing.T) {
	// Квота 4, бронирований 6: первые четыре по началу покрыты
	// контрактом, последние две тарифицируются по ставкам своих тренеров
	member := &domain.Member{
		ID: 10, Plan: domain.PlanStandard, ContractedSessions: 4,
		JoinDate:    time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		MainTrainer: ptr.Ptr("sato"),
		IsActive:    true,
	}

	// Перемешаны нарочно: порядок выборки не гарантирован
	bookings := []*domain.Booking{
		booking(6, 28, "10:00", "tanaka"),  // шестое, дополнительное, 8800
		booking(2, 5, "10:00", "sato"),     // второе
		booking(5, 20, "10:00", "suzuki"),  // пятое, дополнительное, 8250
		booking(1, 2, "10:00", "sato"),     // первое
		booking(4, 12, "15:00", "sato"),    // четвёртое
		booking(3, 12, "09:00", "sato"),    // третье (раньше четвёртого в тот же день)
	}

	resp := runBill(t, member, bookings)

	require.Len(t, resp.AdditionalSessions, 2)
	assert.Equal(t, int64(5), resp.AdditionalSessions[0].BookingID)
	assert.Equal(t, 8250, resp.AdditionalSessions[0].Rate)
	assert.Equal(t, int64(6), resp.AdditionalSessions[1].BookingID)
	assert.Equal(t, 8800, resp.AdditionalSessions[1].Rate)
	assert.Equal(t, 8250+8800, resp.AdditionalFee)

	// total = base 11000 + contracted 4*7700 + additional 17050
	assert.Equal(t, 11000+4*7700+8250+8800, resp.Total)
}

func TestExecute_CancelledBookingsFreeTheQuota(t *testing.T) {
	member := &domain.Member{
		ID: 10, Plan: domain.PlanStandard, ContractedSessions: 2,
		JoinDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		IsActive: true,
	}

	late := booking(2, 10, "10:00", "tanaka")
	late.Status = domain.StatusCancelledLate

	freed := booking(3, 15, "10:00", "tanaka")
	freed.Status = domain.StatusCancelled

	bookings := []*domain.Booking{
		booking(1, 5, "10:00", "sato"),
		late,                             // штрафная отмена занимает квоту
		freed,                            // обычная отмена квоту вернула
		booking(4, 20, "10:00", "suzuki"), // третье тарифицируемое, дополнительное
	}

	resp := runBill(t, member, bookings)

	require.Len(t, resp.AdditionalSessions, 1)
	assert.Equal(t, int64(4), resp.AdditionalSessions[0].BookingID)
	assert.Equal(t, 8250, resp.AdditionalSessions[0].Rate)
}

func TestExecute_MemberNotFound(t *testing.T) {
	members := new(MockMemberRepo)
	members.On("GetByID", mock.Anything, int64(10)).Return(nil, assert.AnError)

	uc := NewUseCase(members, new(MockBookingRepo), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{MemberID: 10, Month: billMonth})
	assert.ErrorIs(t, err, ErrInternal)
}
