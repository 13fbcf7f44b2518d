package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// BookingRepository описывает методы репозитория бронирований,
// необходимые для отмены
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByMemberWithFilter(ctx context.Context, filter domain.MemberBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason domain.CancellationReason) error
}

// TransactionManager управление транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider источник текущего времени. Внедряется, чтобы правило
// 24 часов и льгота были тестируемыми.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider на системных часах
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
