package get_staff_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidStaffID = "некорректный идентификатор сотрудника"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStaffNotFound  = "сотрудник не найден"
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

// Handle GET /api/v1/staff/{staffId}/bookings?date=YYYY-MM-DD&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawStaffID := mux.Vars(r)["staffId"]
	staffID, err := strconv.ParseInt(rawStaffID, 10, 64)
	if err != nil || staffID <= 0 {
		h.logger.Warn("GET /staff/{id}/bookings - Invalid staff id: %q", rawStaffID)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	req := &models.GetStaffBookingsRequest{StaffID: staffID}

	query := r.URL.Query()

	if rawDate := query.Get("date"); rawDate != "" {
		date, err := time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("GET /staff/{id}/bookings - Invalid date: %q", rawDate)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	req.IncludeCancelled = query.Get("includeCancelled") == "true"

	result, err := h.service.GetStaffBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{id}/bookings - Staff not found: staff_id=%d", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/bookings - Invalid input: staff_id=%d, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)

		default:
			h.logger.Error("GET /staff/{id}/bookings - Failed to get bookings: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/bookings - Fetched %d bookings: staff_id=%d",
		len(result.Bookings), staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
