package get_available_slots

import (
	"time"

	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date    time.Time // Дата для расчёта доступности (без времени)
	MenuID  int64     // ID услуги (определяет длительность слота)
	StaffID *int64    // Фильтр по конкретному сотруднику (опционально)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date                time.Time // Дата, на которую запрашивались слоты
	MenuID              int64     // ID услуги
	MenuDurationMinutes int       // Длительность слота в минутах
	Slots               []Slot    // Список доступных слотов
}

// Slot временной слот с перечнем свободных сотрудников
type Slot struct {
	StartTime types.TimeString // Время начала слота (например, "10:00")
	StaffIDs  []int64          // Сотрудники, свободные для этого слота
}
