package cancel_booking

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64                      // ID бронирования
	MemberID  int64                      // ID участника (проверка владельца)
	Reason    *domain.CancellationReason // Причина отмены (опционально)
}

// Response итог отмены. Решение о штрафе и льготе принимает usecase,
// текст для пользователя формирует вызывающий слой.
type Response struct {
	BookingID int64
	Status    domain.BookingStatus
	Reason    domain.CancellationReason

	// Relieved поднят, если поздняя отмена прощена месячной льготой
	Relieved bool

	CancelledAt time.Time
}
