package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/booking"
	memberRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/member"
	menuRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/menu"
	staffRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/staff"
)

// UseCase use case создания бронирования.
// Проверки и вставка выполняются в сериализуемой транзакции:
// проверка пересечений построена как check-then-act, два конкурентных
// запроса на один слот не должны пройти её одновременно. Второй
// рубеж: exclusion constraint в БД, его нарушение репозиторий
// возвращает как ErrSlotTaken, и мы транслируем его в тот же
// ErrSlotConflict, что и проверка.
type UseCase struct {
	bookingRepo  BookingRepository
	staffRepo    StaffRepository
	memberRepo   MemberRepository
	menuRepo     MenuRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	memberRepo MemberRepository,
	menuRepo MenuRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		staffRepo:    staffRepo,
		memberRepo:   memberRepo,
		menuRepo:     menuRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: member=%d, staff=%d, menu=%d, date=%s, time=%s",
		req.MemberID, req.StaffID, req.MenuID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем участника
	member, err := uc.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, memberRepo.ErrMemberNotFound) {
			uc.logger.Warn("CreateBooking: member id=%d not found", req.MemberID)
			return nil, ErrMemberNotFound
		}
		uc.logger.Error("CreateBooking: failed to get member id=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}

	if !member.IsActive {
		uc.logger.Warn("CreateBooking: member id=%d is inactive", req.MemberID)
		return nil, ErrMemberNotFound
	}

	// 3. Получаем сотрудника
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if !staff.IsActive {
		uc.logger.Warn("CreateBooking: staff id=%d is inactive", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 4. Получаем услугу, она определяет длительность
	menu, err := uc.menuRepo.GetByID(ctx, req.MenuID)
	if err != nil {
		if errors.Is(err, menuRepo.ErrMenuNotFound) {
			uc.logger.Warn("CreateBooking: menu id=%d not found", req.MenuID)
			return nil, ErrMenuNotFound
		}
		uc.logger.Error("CreateBooking: failed to get menu id=%d: %v", req.MenuID, err)
		return nil, fmt.Errorf("%w: failed to get menu: %v", ErrInternal, err)
	}

	if !menu.IsActive {
		uc.logger.Warn("CreateBooking: menu id=%d is inactive", req.MenuID)
		return nil, ErrMenuNotFound
	}

	// 5. Вычисляем конец слота
	slotEnd, err := req.StartTime.AddMinutes(menu.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid slot end: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Горизонт бронирования плана
	if err := validateHorizon(req.Date, now, member.Plan); err != nil {
		uc.logger.Warn("CreateBooking: horizon check failed for member=%d plan=%s: %v",
			member.ID, member.Plan, err)
		return nil, err
	}

	// 7. Правило 24 часов
	startAt, err := req.StartTime.On(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateLeadTime(startAt, now); err != nil {
		uc.logger.Warn("CreateBooking: lead time check failed: start=%s now=%s",
			startAt.Format("2006-01-02 15:04"), now.Format("2006-01-02 15:04"))
		return nil, err
	}

	bookingType := req.Type
	if bookingType == "" {
		bookingType = domain.TypeRegular
	}

	var result *domain.Booking
	var isOverLimit bool

	// 8. Проверки по данным и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Эффективная смена сотрудника на дату
		shifts, err := uc.staffRepo.GetShiftsByStaffIDs(txCtx, []int64{staff.ID})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get shifts: %v", err)
			return fmt.Errorf("%w: failed to get shifts: %v", ErrInternal, err)
		}

		overrides, err := uc.staffRepo.GetOverridesByStaffIDsAndDate(txCtx, []int64{staff.ID}, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get overrides: %v", err)
			return fmt.Errorf("%w: failed to get overrides: %v", ErrInternal, err)
		}

		shift := domain.ResolveShift(req.Date, shifts, overrides)
		if err := validateInsideShift(shift, req.StartTime, slotEnd); err != nil {
			uc.logger.Warn("CreateBooking: staff=%d unavailable on %s: %v",
				staff.ID, req.Date.Format(domain.DateFormat), err)
			return err
		}

		// 8.2. Бронирования сотрудника на дату с блокировкой (FOR UPDATE)
		staffBookings, err := uc.bookingRepo.GetByStaffWithFilter(txCtx, domain.StaffBookingsFilter{
			StaffID:   staff.ID,
			StartDate: &req.Date,
			EndDate:   &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get staff bookings: %v", err)
			return fmt.Errorf("%w: failed to get staff bookings: %v", ErrInternal, err)
		}

		// 8.3. Любое пересечение с активным бронированием считается конфликтом
		if hasOverlap(req.StartTime, slotEnd, staffBookings) {
			uc.logger.Warn("CreateBooking: slot %s-%s conflicts for staff=%d on %s",
				req.StartTime, slotEnd, staff.ID, req.Date.Format(domain.DateFormat))
			return ErrSlotConflict
		}

		// 8.4. Квота участника за календарный месяц бронирования.
		// Превышение не запрещает создание: бронирование помечается
		// как дополнительная сессия и тарифицируется отдельно.
		monthStart, monthEnd := monthBounds(req.Date)
		memberBookings, err := uc.bookingRepo.GetByMemberWithFilter(txCtx, domain.MemberBookingsFilter{
			MemberID:         member.ID,
			StartDate:        &monthStart,
			EndDate:          &monthEnd,
			IncludeCancelled: true,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get member bookings: %v", err)
			return fmt.Errorf("%w: failed to get member bookings: %v", ErrInternal, err)
		}

		quotaUsed := countQuotaBookings(memberBookings)
		isOverLimit = quotaUsed >= member.ContractedSessions
		if isOverLimit && bookingType == domain.TypeRegular {
			bookingType = domain.TypeAdditional
			uc.logger.Info("CreateBooking: member=%d over quota (%d/%d), booking becomes additional",
				member.ID, quotaUsed, member.ContractedSessions)
		}

		// 8.5. Создаем бронирование с денормализацией данных
		booking := &domain.Booking{
			MemberID:        member.ID,
			StaffID:         staff.ID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: menu.DurationMinutes,
			Status:          domain.StatusConfirmed,
			Type:            bookingType,
			StaffName:       staff.Name,
			MenuID:          menu.ID,
			MenuName:        menu.Name,
			MenuPrice:       menu.Price,
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				// Конкурентная вставка успела раньше: для вызывающего
				// это тот же конфликт слота, что и при проверке
				uc.logger.Warn("CreateBooking: concurrent insert took slot %s for staff=%d",
					req.StartTime, staff.ID)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (member=%d, staff=%d, overLimit=%v)",
		result.ID, member.ID, staff.ID, isOverLimit)

	return &Response{
		ID:              result.ID,
		MemberID:        result.MemberID,
		StaffID:         result.StaffID,
		StaffName:       result.StaffName,
		MenuID:          result.MenuID,
		MenuName:        result.MenuName,
		MenuPrice:       result.MenuPrice,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         slotEnd,
		DurationMinutes: result.DurationMinutes,
		Status:          result.Status,
		Type:            result.Type,
		Notes:           result.Notes,
		IsOverLimit:     isOverLimit,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
