package calculate_bill

import (
	"context"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// MemberRepository описывает методы репозитория участников,
// необходимые для расчёта счёта
type MemberRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Member, error)
}

// BookingRepository описывает методы репозитория бронирований,
// необходимые для расчёта счёта
type BookingRepository interface {
	GetByMemberWithFilter(ctx context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
