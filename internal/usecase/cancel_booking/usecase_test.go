package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/GMS-BookingService/pkg/ptr"
)

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByMemberWithFilter(ctx context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason domain.CancellationReason) error {
	args := m.Called(ctx, id, status, reason)
	return args.Error(0)
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newUseCase(repo *MockBookingRepo, now time.Time) *UseCase {
	uc := NewUseCase(repo, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              55,
		MemberID:        10,
		StaffID:         1,
		BookingDate:     time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       "14:00",
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := new(MockBookingRepo)
	repo.On("GetByID", mock.Anything, int64(55)).Return(nil, bookingRepo.ErrBookingNotFound)

	uc := newUseCase(repo, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{BookingID: 55, MemberID: 10})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_OwnershipMismatchIsNotFound(t *testing.T) {
	repo := new(MockBookingRepo)
	repo.On("GetByID", mock.Anything, int64(55)).Return(confirmedBooking(), nil)

	uc := newUseCase(repo, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	// Бронирование принадлежит участнику 10, отменяет участник 99
	_, err := uc.Execute(context.Background(), &Request{BookingID: 55, MemberID: 99})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_AlreadyCancelled(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCancelledLate} {
		t.Run(string(status), func(t *testing.T) {
			booking := confirmedBooking()
			booking.Status = status

			repo := new(MockBookingRepo)
			repo.On("GetByID", mock.Anything, int64(55)).Return(booking, nil)

			uc := newUseCase(repo, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

			_, err := uc.Execute(context.Background(), &Request{BookingID: 55, MemberID: 10})
			assert.ErrorIs(t, err, ErrAlreadyCancelled)
		})
	}
}

func TestExecute_DeadlineBoundary(t *testing.T) {
	// Бронирование 2026-03-10 14:00
	tests := []struct {
		name       string
		now        time.Time
		wantStatus domain.BookingStatus
		wantReason domain.CancellationReason
	}{
		{
			name:       "exactly 24 hours before is on time",
			now:        time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC),
			wantStatus: domain.StatusCancelled,
			wantReason: domain.ReasonNormal,
		},
		{
			name:       "one second past the deadline is late",
			now:        time.Date(2026, 3, 9, 14, 0, 1, 0, time.UTC),
			wantStatus: domain.StatusCancelledLate,
			wantReason: domain.ReasonOther,
		},
		{
			name:       "well before the deadline is on time",
			now:        time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			wantStatus: domain.StatusCancelled,
			wantReason: domain.ReasonNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockBookingRepo)
			repo.On("GetByID", mock.Anything, int64(55)).Return(confirmedBooking(), nil)
			repo.On("Cancel", mock.Anything, int64(55), tt.wantStatus, tt.wantReason).Return(nil)

			uc := newUseCase(repo, tt.now)

			resp, err := uc.Execute(context.Background(), &Request{BookingID: 55, MemberID: 10})
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantReason, resp.Reason)
			assert.False(t, resp.Relieved)
			repo.AssertExpectations(t)
		})
	}
}

func TestExecute_ExplicitReasonIsKept(t *testing.T) {
	repo := new(MockBookingRepo)
	repo.On("GetByID", mock.Anything, int64(55)).Return(confirmedBooking(), nil)
	repo.On("Cancel", mock.Anything, int64(55), domain.StatusCancelled, domain.ReasonSickness).Return(nil)

	// Своевременная отмена с явной причиной: причина сохраняется,
	// льгота не нужна
	uc := newUseCase(repo, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 55,
		MemberID:  10,
		Reason:    ptr.Ptr(domain.ReasonSickness),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Status)
	assert.False(t, resp.Relieved)
}

func TestExecute_ReliefOncePerMonth(t *testing.T) {
	// Поздняя отмена: за 2 часа до начала
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("first eligible late cancellation is relieved", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("GetByID", mock.Anything, int64(55)).Return(confirmedBooking(), nil)
		repo.On("GetByMemberWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{}, nil)
		repo.On("Cancel", mock.Anything, int64(55), domain.StatusCancelled, domain.ReasonSickness).Return(nil)

		uc := newUseCase(repo, now)

		resp, err := uc.Execute(context.Background(), &Request{
			BookingID: 55,
			MemberID:  10,
			Reason:    ptr.Ptr(domain.ReasonSickness),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, resp.Status)
		assert.True(t, resp.Relieved)
		repo.AssertExpectations(t)
	})

	t.Run("second eligible late cancellation keeps the penalty", func(t *testing.T) {
		// В том же месяце уже есть прощённое бронирование с утратой:
		// категория причин общая, болезнь льготу уже не получает
		relieved := &domain.Booking{
			ID:                 40,
			MemberID:           10,
			BookingDate:        time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			StartTime:          "10:00",
			DurationMinutes:    60,
			Status:             domain.StatusCancelled,
			CancellationReason: ptr.Ptr(domain.ReasonBereavement),
		}

		repo := new(MockBookingRepo)
		repo.On("GetByID", mock.Anything, int64(55)).Return(confirmedBooking(), nil)
		repo.On("GetByMemberWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{relieved}, nil)
		repo.On("Cancel", mock.Anything, int64(55), domain.StatusCancelledLate, domain.ReasonSickness).Return(nil)

		uc := newUseCase(repo, now)

		resp, err := uc.Execute(context.Background(), &Request{
			BookingID: 55,
			MemberID:  10,
			Reason:    ptr.Ptr(domain.ReasonSickness),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledLate, resp.Status)
		assert.False(t, resp.Relieved)
		repo.AssertExpectations(t)
	})

	t.Run("ordinary cancelled booking does not consume the relief", func(t *testing.T) {
		// Обычная своевременная отмена в том же месяце льготу не тратит
		normal := &domain.Booking{
			ID:                 41,
			MemberID:           10,
			BookingDate:        time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			StartTime:          "10:00",
			DurationMinutes:    60,
			Status:             domain.StatusCancelled,
			CancellationReason: ptr.Ptr(domain.ReasonNormal),
		}

		repo := new(MockBookingRepo)
		repo.On("GetByID", mock.Anything, int64(55)).Return(confirmedBooking(), nil)
		repo.On("GetByMemberWithFilter", mock.Anything, mock.Anything).Return([]*domain.Booking{normal}, nil)
		repo.On("Cancel", mock.Anything, int64(55), domain.StatusCancelled, domain.ReasonBereavement).Return(nil)

		uc := newUseCase(repo, now)

		resp, err := uc.Execute(context.Background(), &Request{
			BookingID: 55,
			MemberID:  10,
			Reason:    ptr.Ptr(domain.ReasonBereavement),
		})
		require.NoError(t, err)
		assert.True(t, resp.Relieved)
		repo.AssertExpectations(t)
	})

	t.Run("late cancellation without eligible reason is never relieved", func(t *testing.T) {
		repo := new(MockBookingRepo)
		repo.On("GetByID", mock.Anything, int64(55)).Return(confirmedBooking(), nil)
		repo.On("Cancel", mock.Anything, int64(55), domain.StatusCancelledLate, domain.ReasonOther).Return(nil)

		uc := newUseCase(repo, now)

		resp, err := uc.Execute(context.Background(), &Request{BookingID: 55, MemberID: 10})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelledLate, resp.Status)
		assert.False(t, resp.Relieved)
		// Без уважительной причины поиск льготы не выполняется
		repo.AssertNotCalled(t, "GetByMemberWithFilter", mock.Anything, mock.Anything)
	})
}
