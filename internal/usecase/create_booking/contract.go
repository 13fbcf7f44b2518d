package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error)
	GetByMemberWithFilter(ctx context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
	GetShiftsByStaffIDs(ctx context.Context, staffIDs []int64) ([]*domain.Shift, error)
	GetOverridesByStaffIDsAndDate(ctx context.Context, staffIDs []int64, date time.Time) ([]*domain.ShiftOverride, error)
}

// MemberRepository интерфейс репозитория участников
type MemberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
}

// MenuRepository интерфейс репозитория меню услуг
type MenuRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceMenu, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
