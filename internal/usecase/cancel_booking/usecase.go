package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования.
// Статус выбирается по правилу 24 часов: отмена за 24 часа и более до
// начала проходит без штрафа, позже как cancelled_late. Поздняя отмена по
// уважительной причине (болезнь, утрата) может быть прощена один раз
// за календарный месяц. Чтение льготы и запись статуса идут в одной
// сериализуемой транзакции, чтобы две одновременные отмены не получили
// льготу обе.
type UseCase struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, member=%d", req.BookingID, req.MemberID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var resp *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование и проверка владельца. Чужое бронирование
		// неотличимо от несуществующего.
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if booking.MemberID != req.MemberID {
			uc.logger.Warn("CancelBooking: booking id=%d belongs to member=%d, requested by member=%d",
				booking.ID, booking.MemberID, req.MemberID)
			return ErrBookingNotFound
		}

		// 2. Повторная отмена запрещена: оба отменённых статуса терминальны
		if booking.IsCancelled() {
			uc.logger.Warn("CancelBooking: booking id=%d is already %s", booking.ID, booking.Status)
			return ErrAlreadyCancelled
		}

		startAt, err := booking.StartsAt()
		if err != nil {
			uc.logger.Error("CancelBooking: booking id=%d has invalid start time: %v", booking.ID, err)
			return fmt.Errorf("%w: invalid booking start time: %v", ErrInternal, err)
		}

		// 3. Правило 24 часов: ровно 24 часа до начала ещё без штрафа
		onTime := !startAt.Before(now.Add(domain.CancellationDeadlineHours * time.Hour))

		status, reason := resolveOutcome(onTime, req.Reason)
		relieved := false

		// 4. Месячная льгота: поздняя отмена по уважительной причине
		// прощается, если в календарном месяце бронирования льгота ещё
		// не использована
		if status == domain.StatusCancelledLate && reason.IsReliefEligible() {
			used, err := uc.reliefUsed(txCtx, booking)
			if err != nil {
				return err
			}
			if !used {
				status = domain.StatusCancelled
				relieved = true
				uc.logger.Info("CancelBooking: booking id=%d relieved by monthly grace (reason=%s)",
					booking.ID, reason)
			}
		}

		// 5. Фиксируем итоговый статус
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, status, reason); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		resp = &Response{
			BookingID:   booking.ID,
			Status:      status,
			Reason:      reason,
			Relieved:    relieved,
			CancelledAt: now,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled with status=%s (relieved=%v)",
		resp.BookingID, resp.Status, resp.Relieved)

	return resp, nil
}

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.MemberID <= 0 {
		return fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	if req.Reason != nil && !domain.ValidCancellationReason(*req.Reason) {
		return fmt.Errorf("%w: unknown cancellation reason %q", ErrInvalidInput, *req.Reason)
	}

	return nil
}

// resolveOutcome выбирает предварительный статус и причину отмены.
// Причина по умолчанию: normal для своевременной отмены, other для
// поздней без указанной причины.
func resolveOutcome(onTime bool, reason *domain.CancellationReason) (domain.BookingStatus, domain.CancellationReason) {
	if onTime {
		if reason != nil {
			return domain.StatusCancelled, *reason
		}
		return domain.StatusCancelled, domain.ReasonNormal
	}

	if reason != nil {
		return domain.StatusCancelledLate, *reason
	}
	return domain.StatusCancelledLate, domain.ReasonOther
}

// reliefUsed проверяет, использована ли месячная льгота: есть ли у
// участника в календарном месяце бронирования другое бронирование,
// уже прощённое: cancelled с уважительной причиной. Льгота одна на
// месяц на все уважительные причины вместе, не на каждую отдельно.
func (uc *UseCase) reliefUsed(ctx context.Context, booking *domain.Booking) (bool, error) {
	monthStart, monthEnd := monthBounds(booking.BookingDate)

	cancelled := domain.StatusCancelled
	monthBookings, err := uc.bookingRepo.GetByMemberWithFilter(ctx, domain.MemberBookingsFilter{
		MemberID:         booking.MemberID,
		StartDate:        &monthStart,
		EndDate:          &monthEnd,
		Status:           &cancelled,
		IncludeCancelled: true,
	})
	if err != nil {
		uc.logger.Error("CancelBooking: failed to get member bookings for relief check: %v", err)
		return false, fmt.Errorf("%w: failed to check monthly relief: %v", ErrInternal, err)
	}

	for _, b := range monthBookings {
		if b.ID == booking.ID {
			continue
		}
		if b.CancellationReason != nil && b.CancellationReason.IsReliefEligible() {
			return true, nil
		}
	}

	return false, nil
}

// monthBounds возвращает первую и последнюю дату календарного месяца,
// содержащего t
func monthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	return first, last
}
