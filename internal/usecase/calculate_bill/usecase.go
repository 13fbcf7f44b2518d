package calculate_bill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	memberRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/member"
)

// UseCase use case расчёта месячного счёта участника.
// Счёт состоит из трёх частей: базовая плата плана со скидкой за стаж,
// контрактные сессии по ставке основного тренера и дополнительные
// сессии сверх квоты по ставкам их тренеров.
type UseCase struct {
	memberRepo  MemberRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(memberRepo MemberRepository, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		memberRepo:  memberRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute выполняет use case расчёта счёта
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CalculateBill: member=%d, month=%s",
		req.MemberID, req.Month.Format(domain.MonthFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CalculateBill: validation failed: %v", err)
		return nil, err
	}

	// 1. Получаем участника
	member, err := uc.memberRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, memberRepo.ErrMemberNotFound) {
			uc.logger.Warn("CalculateBill: member id=%d not found", req.MemberID)
			return nil, ErrMemberNotFound
		}
		uc.logger.Error("CalculateBill: failed to get member id=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}

	if !member.IsActive {
		uc.logger.Warn("CalculateBill: member id=%d is inactive", req.MemberID)
		return nil, ErrMemberNotFound
	}

	// 2. Бронирования расчётного месяца, включая отменённые:
	// отменённые со штрафом тарифицируются
	monthStart, monthEnd := monthBounds(req.Month)
	bookings, err := uc.bookingRepo.GetByMemberWithFilter(ctx, domain.MemberBookingsFilter{
		MemberID:         member.ID,
		StartDate:        &monthStart,
		EndDate:          &monthEnd,
		IncludeCancelled: true,
	})
	if err != nil {
		uc.logger.Error("CalculateBill: failed to get bookings for member id=%d: %v", member.ID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 3. Скидка за стаж на конец расчётного месяца; ручная скидка
	// участника имеет приоритет над стажем
	stage := domain.StageForMember(member, monthEnd)

	// 4. Базовая плата со скидкой, округление вниз
	baseFee := member.Plan.BaseMonthlyFee()
	discountedFee := discountedBaseFee(baseFee, stage.DiscountRate)

	// 5. Контрактная плата: квота по ставке основного тренера
	mainRate := domain.TrainerRate(member.MainTrainer)
	contractedFee := mainRate * member.ContractedSessions

	// 6. Дополнительные сессии: сортировка по началу, первые
	// ContractedSessions покрыты контрактом, остальные по ставке
	// своего тренера
	billable := billableReservations(bookings)
	sortByStart(billable)
	_, overflow := splitByQuota(billable, member.ContractedSessions)
	items, additionalFee := additionalItems(overflow)

	total := discountedFee + contractedFee + additionalFee

	uc.logger.Info("CalculateBill: member=%d month=%s stage=%s total=%d (base=%d, contracted=%d, additional=%d)",
		member.ID, req.Month.Format(domain.MonthFormat), stage.Name, total,
		discountedFee, contractedFee, additionalFee)

	return &Response{
		MemberID:           member.ID,
		Month:              req.Month.Format(domain.MonthFormat),
		StageName:          stage.Name,
		DiscountRate:       stage.DiscountRate,
		BasePlanFee:        baseFee,
		DiscountedBaseFee:  discountedFee,
		ContractedSessions: member.ContractedSessions,
		MainTrainerRate:    mainRate,
		ContractedFee:      contractedFee,
		AdditionalSessions: items,
		AdditionalFee:      additionalFee,
		Total:              total,
	}, nil
}

func validateRequest(req *Request) error {
	if req.MemberID <= 0 {
		return fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	if req.Month.IsZero() {
		return fmt.Errorf("%w: month is required", ErrInvalidInput)
	}

	return nil
}

// monthBounds возвращает первую и последнюю дату календарного месяца,
// содержащего t
func monthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}
