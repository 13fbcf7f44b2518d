package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	menuRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/menu"
	staffRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/staff"
)

// UseCase use case расчёта доступных слотов.
// Превращает недельные смены, исключения на дату и существующие
// бронирования в список доступных интервалов с учётом ёмкости
// каждого сотрудника.
type UseCase struct {
	bookingRepo  BookingRepository
	staffRepo    StaffRepository
	menuRepo     MenuRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	menuRepo MenuRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		menuRepo:     menuRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет расчёт доступности на дату.
// Единственная жёсткая ошибка: отсутствие услуги; отсутствие
// сотрудников, смен или свободных мест даёт пустой список слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s, menu=%d, staff=%v",
		req.Date.Format(domain.DateFormat), req.MenuID, req.StaffID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу, она определяет длительность слота
	menu, err := uc.menuRepo.GetByID(ctx, req.MenuID)
	if err != nil {
		if errors.Is(err, menuRepo.ErrMenuNotFound) {
			uc.logger.Warn("GetAvailableSlots: menu id=%d not found", req.MenuID)
			return nil, ErrMenuNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get menu id=%d: %v", req.MenuID, err)
		return nil, fmt.Errorf("%w: failed to get menu: %v", ErrInternal, err)
	}

	if !menu.IsActive {
		uc.logger.Warn("GetAvailableSlots: menu id=%d is inactive", req.MenuID)
		return nil, ErrMenuNotFound
	}

	// 3. Дата в прошлом: пустой ответ, репозитории не опрашиваем
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date=%s is in the past", req.Date.Format(domain.DateFormat))
		return emptyResponse(req, menu), nil
	}

	// 4. Определяем кандидатов: конкретный сотрудник или все активные
	candidates, err := uc.resolveCandidates(ctx, req.StaffID)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		uc.logger.Info("GetAvailableSlots: no candidate staff for date=%s", req.Date.Format(domain.DateFormat))
		return emptyResponse(req, menu), nil
	}

	staffIDs := make([]int64, len(candidates))
	for i, s := range candidates {
		staffIDs[i] = s.ID
	}

	// 5. Загружаем смены, исключения и бронирования кандидатов
	shifts, err := uc.staffRepo.GetShiftsByStaffIDs(ctx, staffIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get shifts: %v", err)
		return nil, fmt.Errorf("%w: failed to get shifts: %v", ErrInternal, err)
	}

	overrides, err := uc.staffRepo.GetOverridesByStaffIDsAndDate(ctx, staffIDs, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get overrides: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetActiveByStaffIDsAndDate(ctx, staffIDs, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Собираем расписание каждого сотрудника на дату
	schedules := buildSchedules(req.Date, candidates, shifts, overrides, bookings)

	// 7. Перечисляем кандидатные слоты рабочего окна с учётом
	// текущего времени
	candidateSlots, err := generateCandidateSlots(menu.DurationMinutes, req.Date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidate slots: %v", ErrInternal, err)
	}

	// 8. Оставляем слоты, доступные хотя бы одному сотруднику
	slots, err := buildAvailableSlots(candidateSlots, menu.DurationMinutes, schedules)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: %d slots available for date=%s, menu=%d (%d staff)",
		len(slots), req.Date.Format(domain.DateFormat), req.MenuID, len(candidates))

	return &Response{
		Date:                req.Date,
		MenuID:              menu.ID,
		MenuDurationMinutes: menu.DurationMinutes,
		Slots:               slots,
	}, nil
}

// resolveCandidates возвращает кандидатов на бронирование.
// Отсутствующий или неактивный сотрудник в фильтре не ошибка,
// а пустой список кандидатов.
func (uc *UseCase) resolveCandidates(ctx context.Context, staffID *int64) ([]*domain.Staff, error) {
	if staffID == nil {
		staffList, err := uc.staffRepo.ListActive(ctx)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to list active staff: %v", err)
			return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
		}
		return staffList, nil
	}

	s, err := uc.staffRepo.GetByID(ctx, *staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%d: %v", *staffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if !s.IsActive {
		return nil, nil
	}

	return []*domain.Staff{s}, nil
}

// buildSchedules раскладывает смены, исключения и бронирования
// по сотрудникам и вычисляет эффективную смену каждого на дату
func buildSchedules(
	date time.Time,
	candidates []*domain.Staff,
	shifts []*domain.Shift,
	overrides []*domain.ShiftOverride,
	bookings []*domain.Booking,
) []*staffSchedule {
	shiftsByStaff := make(map[int64][]*domain.Shift)
	for _, s := range shifts {
		shiftsByStaff[s.StaffID] = append(shiftsByStaff[s.StaffID], s)
	}

	overridesByStaff := make(map[int64][]*domain.ShiftOverride)
	for _, o := range overrides {
		overridesByStaff[o.StaffID] = append(overridesByStaff[o.StaffID], o)
	}

	bookingsByStaff := make(map[int64][]*domain.Booking)
	for _, b := range bookings {
		bookingsByStaff[b.StaffID] = append(bookingsByStaff[b.StaffID], b)
	}

	schedules := make([]*staffSchedule, 0, len(candidates))
	for _, staff := range candidates {
		schedules = append(schedules, &staffSchedule{
			staff:    staff,
			shift:    domain.ResolveShift(date, shiftsByStaff[staff.ID], overridesByStaff[staff.ID]),
			bookings: bookingsByStaff[staff.ID],
		})
	}

	return schedules
}

func emptyResponse(req *Request, menu *domain.ServiceMenu) *Response {
	return &Response{
		Date:                req.Date,
		MenuID:              menu.ID,
		MenuDurationMinutes: menu.DurationMinutes,
		Slots:               []Slot{},
	}
}
