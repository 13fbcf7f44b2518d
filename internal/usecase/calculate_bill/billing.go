package calculate_bill

import (
	"math"
	"sort"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

// Расчёт счёта состоит из чистых функций над участником и его
// бронированиями месяца. Usecase только загружает данные и собирает ответ.

// billableReservations отбирает бронирования, участвующие в расчёте:
// подтверждённые и отменённые со штрафом. Отменённые без штрафа место
// в квоте вернули и в счёт не попадают.
func billableReservations(bookings []*domain.Booking) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.CountsTowardQuota() {
			result = append(result, b)
		}
	}
	return result
}

// sortByStart сортирует бронирования по возрастанию начала:
// дата, затем время. Порядок определяет, какие сессии покрыты
// контрактом, поэтому он должен быть стабильным.
func sortByStart(bookings []*domain.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].BookingDate.Equal(bookings[j].BookingDate) {
			return bookings[i].BookingDate.Before(bookings[j].BookingDate)
		}
		return bookings[i].StartTime.IsBefore(bookings[j].StartTime)
	})
}

// discountedBaseFee применяет скидку к базовой плате плана,
// округляя вниз до целого
func discountedBaseFee(baseFee int, rate float64) int {
	return int(math.Floor(float64(baseFee) * (1 - rate)))
}

// splitByQuota разделяет отсортированные бронирования по индексу:
// первые contracted покрыты контрактной платой, остальные идут как
// дополнительные сессии. Деление позиционное, флаг типа бронирования
// на него не влияет.
func splitByQuota(sorted []*domain.Booking, contracted int) (covered, additional []*domain.Booking) {
	if contracted < 0 {
		contracted = 0
	}
	if contracted >= len(sorted) {
		return sorted, nil
	}
	return sorted[:contracted], sorted[contracted:]
}

// additionalItems тарифицирует дополнительные сессии: каждая по ставке
// тренера, который её провёл, а не основного тренера участника
func additionalItems(bookings []*domain.Booking) ([]AdditionalSession, int) {
	items := make([]AdditionalSession, 0, len(bookings))
	total := 0

	for _, b := range bookings {
		rate := domain.TrainerRate(&b.StaffName)
		items = append(items, AdditionalSession{
			BookingID: b.ID,
			Date:      b.BookingDate,
			StartTime: b.StartTime,
			StaffName: b.StaffName,
			Rate:      rate,
			Status:    b.Status,
		})
		total += rate
	}

	return items, total
}
