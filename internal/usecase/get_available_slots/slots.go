package get_available_slots

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// generateCandidateSlots перечисляет кандидатные начала слотов внутри
// рабочего окна студии с шагом 15 минут. Кандидат остаётся, только если
// слот целиком (начало + длительность услуги) помещается до закрытия.
// Для даты в прошлом возвращается пустой список; для сегодняшней даты
// уже прошедшие начала отбрасываются.
func generateCandidateSlots(durationMinutes int, requestDate, now time.Time) ([]types.TimeString, error) {
	// Дата в прошлом: слотов нет
	if isDateInPast(requestDate, now) {
		return []types.TimeString{}, nil
	}

	windowStart := types.TimeString(domain.OperatingWindowStart)
	windowEnd := types.TimeString(domain.OperatingWindowEnd)

	candidates := make([]types.TimeString, 0)
	current := windowStart

	for current.IsBefore(windowEnd) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			return nil, err
		}
		if slotEnd.IsAfter(windowEnd) {
			break
		}

		candidates = append(candidates, current)

		current, err = current.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			return nil, err
		}
	}

	// Будущая дата: возвращаем все слоты
	if !isSameDay(requestDate, now) {
		return candidates, nil
	}

	// Сегодняшняя дата: оставляем только слоты, начинающиеся не раньше
	// текущего времени
	currentTime := types.NewTimeString(now)
	upcoming := make([]types.TimeString, 0, len(candidates))
	for _, c := range candidates {
		if !c.IsBefore(currentTime) {
			upcoming = append(upcoming, c)
		}
	}

	return upcoming, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// staffSchedule собранное расписание одного сотрудника на дату
type staffSchedule struct {
	staff    *domain.Staff
	shift    domain.EffectiveShift
	bookings []*domain.Booking
}

// isStaffAvailable проверяет, свободен ли сотрудник для слота
// [slotStart, slotEnd):
//  1. слот целиком внутри эффективной смены, без частичного выхода
//     за границы;
//  2. число пересекающихся подтверждённых бронирований строго меньше
//     MaxConcurrentBookings.
//
// Проверка ёмкости сознательно консервативная: она считает, что новое
// бронирование может совпасть со всеми уже пересекающимися
// одновременно. Такой подсчёт никогда не допускает лишнего, но может
// недопустить при «лесенке» пересечений. Это подсчёт пересечений, а не
// точная максимальная клика.
func isStaffAvailable(sched *staffSchedule, slotStart, slotEnd types.TimeString) bool {
	if !sched.shift.Available {
		return false
	}

	// Слот должен целиком помещаться в смену
	if slotStart.IsBefore(sched.shift.StartTime) || slotEnd.IsAfter(sched.shift.EndTime) {
		return false
	}

	overlapping := countOverlappingBookings(slotStart, slotEnd, sched.bookings)
	return overlapping < sched.staff.MaxConcurrentBookings
}

// countOverlappingBookings подсчитывает бронирования, пересекающиеся
// с интервалом [slotStart, slotEnd). Стандартный тест пересечения
// интервалов со строгими неравенствами: бронирования, граничащие
// с интервалом, пересечением не считаются.
func countOverlappingBookings(slotStart, slotEnd types.TimeString, bookings []*domain.Booking) int {
	count := 0

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}

		bookingEnd, err := b.EndTime()
		if err != nil {
			// Некорректное время бронирования, пропускаем
			continue
		}

		if b.StartTime.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			count++
		}
	}

	return count
}

// buildAvailableSlots собирает итоговый список: слот попадает в ответ,
// если хотя бы один сотрудник для него свободен, с перечнем этих
// сотрудников.
func buildAvailableSlots(candidates []types.TimeString, durationMinutes int, schedules []*staffSchedule) ([]Slot, error) {
	slots := make([]Slot, 0, len(candidates))

	for _, start := range candidates {
		end, err := start.AddMinutes(durationMinutes)
		if err != nil {
			return nil, err
		}

		available := make([]int64, 0)
		for _, sched := range schedules {
			if isStaffAvailable(sched, start, end) {
				available = append(available, sched.staff.ID)
			}
		}

		if len(available) > 0 {
			slots = append(slots, Slot{StartTime: start, StaffIDs: available})
		}
	}

	return slots, nil
}
