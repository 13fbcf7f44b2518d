package get_member_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/api/middleware"
	"github.com/m04kA/GMS-BookingService/internal/domain"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings"
	"github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidMemberID = "некорректный идентификатор участника"
	msgAccessDenied    = "доступ только к собственной истории бронирований"
	msgInvalidFilter   = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/members/{memberId}/bookings?startDate=&endDate=&status=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authMemberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		h.logger.Error("GET /members/{id}/bookings - No member id in context")
		handlers.RespondInternalError(w)
		return
	}

	rawMemberID := mux.Vars(r)["memberId"]
	memberID, err := strconv.ParseInt(rawMemberID, 10, 64)
	if err != nil || memberID <= 0 {
		h.logger.Warn("GET /members/{id}/bookings - Invalid member id: %q", rawMemberID)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	// Участник видит только собственную историю
	if memberID != authMemberID {
		h.logger.Warn("GET /members/{id}/bookings - Access denied: member_id=%d, auth_member_id=%d",
			memberID, authMemberID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetMemberBookingsRequest{MemberID: memberID}

	query := r.URL.Query()

	if rawStart := query.Get("startDate"); rawStart != "" {
		startDate, err := time.Parse(domain.DateFormat, rawStart)
		if err != nil {
			h.logger.Warn("GET /members/{id}/bookings - Invalid startDate: %q", rawStart)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.StartDate = &startDate
	}

	if rawEnd := query.Get("endDate"); rawEnd != "" {
		endDate, err := time.Parse(domain.DateFormat, rawEnd)
		if err != nil {
			h.logger.Warn("GET /members/{id}/bookings - Invalid endDate: %q", rawEnd)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.EndDate = &endDate
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeCancelled = query.Get("includeCancelled") == "true"

	result, err := h.service.GetMemberBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /members/{id}/bookings - Invalid filter: member_id=%d, error=%v", memberID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /members/{id}/bookings - Failed to get bookings: member_id=%d, error=%v",
				memberID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /members/{id}/bookings - Fetched %d bookings: member_id=%d",
		len(result.Bookings), memberID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
