package bookings

import (
	"context"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByMemberWithFilter(ctx context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error)
	GetByStaffWithFilter(ctx context.Context, filter domain.StaffBookingsFilter) ([]*domain.Booking, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
