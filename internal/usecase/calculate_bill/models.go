package calculate_bill

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// Request модель запроса на расчёт счёта за календарный месяц
type Request struct {
	MemberID int64     // ID участника
	Month    time.Time // Любой момент внутри расчётного месяца
}

// Response счёт участника за месяц с полной детализацией
type Response struct {
	MemberID int64
	Month    string // YYYY-MM

	// Скидка за стаж
	StageName    string
	DiscountRate float64

	// Базовая плата плана
	BasePlanFee       int
	DiscountedBaseFee int

	// Контрактные сессии: квота плана по ставке основного тренера
	ContractedSessions int
	MainTrainerRate    int
	ContractedFee      int

	// Дополнительные сессии сверх квоты, каждая по ставке своего тренера
	AdditionalSessions []AdditionalSession
	AdditionalFee      int

	Total int
}

// AdditionalSession строка детализации дополнительной сессии
type AdditionalSession struct {
	BookingID int64
	Date      time.Time
	StartTime types.TimeString
	StaffName string
	Rate      int
	Status    domain.BookingStatus
}
