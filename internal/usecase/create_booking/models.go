package create_booking

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	MemberID  int64              // ID участника
	StaffID   int64              // ID сотрудника
	MenuID    int64              // ID услуги (определяет длительность)
	Date      time.Time          // Дата бронирования (без времени)
	StartTime types.TimeString   // Время начала слота (например, "10:00")
	Type      domain.BookingType // Тип бронирования (по умолчанию regular)
	Notes     *string            // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	MemberID        int64
	StaffID         int64
	StaffName       string
	MenuID          int64
	MenuName        string
	MenuPrice       float64
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Status          domain.BookingStatus
	Type            domain.BookingType
	Notes           *string

	// IsOverLimit поднят, если бронирование превысило месячную квоту
	// плана. Квота задаёт границу биллинга, не жёсткий лимит: бронирование
	// создаётся, но тарифицируется как дополнительная сессия.
	IsOverLimit bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
