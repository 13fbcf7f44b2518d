package get_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/api/middleware"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный идентификатор бронирования"
	msgBookingNotFound  = "бронирование не найдено"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	memberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		h.logger.Error("GET /bookings/{id} - No member id in context")
		handlers.RespondInternalError(w)
		return
	}

	rawBookingID := mux.Vars(r)["bookingId"]
	bookingID, err := strconv.ParseInt(rawBookingID, 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("GET /bookings/{id} - Invalid booking id: %q", rawBookingID)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.GetByID(r.Context(), bookingID, memberID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d, member_id=%d",
				bookingID, memberID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id} - Booking fetched: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
