package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.MemberID <= 0 {
		return fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.MenuID <= 0 {
		return fmt.Errorf("%w: menuID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateHorizon проверяет горизонт бронирования плана: дата позже
// сегодня + limitDays отклоняется. Сравнение только по датам,
// время суток не участвует.
func validateHorizon(bookingDate time.Time, now time.Time, plan domain.Plan) error {
	horizonDays := plan.HorizonDays()

	maxDate := truncateToDate(now).AddDate(0, 0, horizonDays)
	bookingDateOnly := truncateToDate(bookingDate)

	if bookingDateOnly.After(maxDate) {
		return fmt.Errorf("%w: plan %s allows booking up to %d days ahead", ErrHorizonExceeded, plan, horizonDays)
	}

	return nil
}

// validateLeadTime проверяет правило 24 часов: начало бронирования
// раньше now + 24h отклоняется. Ровно 24 часа допустимо.
func validateLeadTime(startAt time.Time, now time.Time) error {
	if startAt.Before(now.Add(domain.MinBookingLeadTimeHours * time.Hour)) {
		return ErrTooLateToBook
	}
	return nil
}

// validateInsideShift проверяет, что слот целиком помещается
// в эффективную смену сотрудника на дату
func validateInsideShift(shift domain.EffectiveShift, slotStart, slotEnd types.TimeString) error {
	if !shift.Available {
		return ErrStaffUnavailable
	}

	if slotStart.IsBefore(shift.StartTime) || slotEnd.IsAfter(shift.EndTime) {
		return fmt.Errorf("%w: slot %s-%s is outside shift %s-%s",
			ErrStaffUnavailable, slotStart, slotEnd, shift.StartTime, shift.EndTime)
	}

	return nil
}

// hasOverlap проверяет пересечение слота [slotStart, slotEnd)
// с любым активным бронированием сотрудника. Создание требует полной
// свободы интервала: любое пересечение считается конфликтом, независимо
// от ёмкости сотрудника.
func hasOverlap(slotStart, slotEnd types.TimeString, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}

		bookingEnd, err := b.EndTime()
		if err != nil {
			continue
		}

		if b.StartTime.IsBefore(slotEnd) && bookingEnd.IsAfter(slotStart) {
			return true
		}
	}

	return false
}

// countQuotaBookings подсчитывает бронирования участника, занимающие
// квоту в календарном месяце: подтверждённые и отменённые со штрафом
func countQuotaBookings(bookings []*domain.Booking) int {
	count := 0
	for _, b := range bookings {
		if b.CountsTowardQuota() {
			count++
		}
	}
	return count
}

// monthBounds возвращает первую и последнюю дату календарного месяца,
// содержащего t
func monthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
