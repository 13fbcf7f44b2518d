package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/booking"
	staffRepo "github.com/m04kA/GMS-BookingService/internal/infra/storage/staff"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
)

// Service сервис чтения бронирований: карточка, история участника,
// расписание сотрудника. Запись идёт только через usecase слои.
type Service struct {
	bookingRepo BookingRepository
	staffRepo   StaffRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, staffRepo StaffRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		staffRepo:   staffRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Участник видит только свои бронирования: чужое бронирование
// неотличимо от несуществующего.
func (s *Service) GetByID(ctx context.Context, id int64, memberID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for member=%d", id, memberID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.MemberID != memberID {
		s.logger.Warn("GetByID: booking id=%d belongs to member=%d, requested by member=%d",
			id, booking.MemberID, memberID)
		return nil, ErrBookingNotFound
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetMemberBookings получает историю бронирований участника
// Опционально фильтрует по периоду и статусу
func (s *Service) GetMemberBookings(ctx context.Context, req *models.GetMemberBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetMemberBookings: fetching bookings for member=%d, status=%v", req.MemberID, req.Status)

	if req.MemberID <= 0 {
		return nil, fmt.Errorf("%w: memberID must be positive", ErrInvalidInput)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetMemberBookings: invalid filter for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByMemberWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetMemberBookings: repository error for member=%d: %v", req.MemberID, err)
		return nil, fmt.Errorf("%w: GetMemberBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetMemberBookings: successfully fetched %d bookings for member=%d", len(bookings), req.MemberID)
	return models.FromDomainBookingList(bookings), nil
}

// GetStaffBookings получает бронирования сотрудника, опционально на дату.
// Используется стойкой регистрации для дневного расписания зала.
func (s *Service) GetStaffBookings(ctx context.Context, req *models.GetStaffBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStaffBookings: fetching bookings for staff=%d", req.StaffID)

	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	// Сотрудник должен существовать, иначе пустой список маскировал бы
	// опечатку в идентификаторе
	if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			s.logger.Warn("GetStaffBookings: staff id=%d not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("GetStaffBookings: failed to get staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffBookings - failed to get staff: %v", ErrInternal, err)
	}

	filter := domain.StaffBookingsFilter{
		StaffID:          req.StaffID,
		StartDate:        req.Date,
		EndDate:          req.Date,
		IncludeCancelled: req.IncludeCancelled,
	}

	bookings, err := s.bookingRepo.GetByStaffWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStaffBookings: repository error for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStaffBookings: successfully fetched %d bookings for staff=%d", len(bookings), req.StaffID)
	return models.FromDomainBookingList(bookings), nil
}
