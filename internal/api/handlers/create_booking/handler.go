package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/GMS-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMemberNotFound     = "участник не найден"
	msgStaffNotFound      = "сотрудник не найден"
	msgMenuNotFound       = "услуга не найдена"
	msgHorizonExceeded    = "дата бронирования за пределами горизонта вашего плана"
	msgTooLateToBook      = "бронирование возможно не позднее чем за 24 часа до начала"
	msgStaffUnavailable   = "сотрудник не работает в выбранное время"
	msgSlotConflict       = "выбранный временной слот уже занят"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		h.logger.Error("POST /bookings - No member id in context")
		handlers.RespondInternalError(w)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(memberID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: member_id=%d, staff_id=%d", memberID, req.StaffID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrMemberNotFound):
			h.logger.Warn("POST /bookings - Member not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, createBooking.ErrStaffNotFound):
			h.logger.Warn("POST /bookings - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createBooking.ErrMenuNotFound):
			h.logger.Warn("POST /bookings - Menu not found: menu_id=%d", req.MenuID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, createBooking.ErrHorizonExceeded):
			h.logger.Warn("POST /bookings - Horizon exceeded: member_id=%d, date=%s", memberID, req.BookingDate)
			handlers.RespondBadRequest(w, msgHorizonExceeded)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: member_id=%d, date=%s %s",
				memberID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrStaffUnavailable):
			h.logger.Warn("POST /bookings - Staff unavailable: staff_id=%d, date=%s", req.StaffID, req.BookingDate)
			handlers.RespondError(w, http.StatusConflict, msgStaffUnavailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: member_id=%d, staff_id=%d, error=%v",
				memberID, req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, member_id=%d, staff_id=%d",
		result.ID, memberID, req.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
