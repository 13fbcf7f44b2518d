package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/GMS-BookingService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate   = "требуется параметр date в формате YYYY-MM-DD"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingMenuID = "требуется параметр menuId"
	msgInvalidMenuID = "некорректный параметр menuId"
	msgInvalidStaff  = "некорректный параметр staffId"
	msgMenuNotFound  = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots?date=YYYY-MM-DD&menuId=N&staffId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	rawDate := query.Get("date")
	if rawDate == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date: %q", rawDate)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	rawMenuID := query.Get("menuId")
	if rawMenuID == "" {
		handlers.RespondBadRequest(w, msgMissingMenuID)
		return
	}

	menuID, err := strconv.ParseInt(rawMenuID, 10, 64)
	if err != nil || menuID <= 0 {
		h.logger.Warn("GET /available-slots - Invalid menuId: %q", rawMenuID)
		handlers.RespondBadRequest(w, msgInvalidMenuID)
		return
	}

	req := &getAvailableSlots.Request{
		Date:   date,
		MenuID: menuID,
	}

	if rawStaffID := query.Get("staffId"); rawStaffID != "" {
		staffID, err := strconv.ParseInt(rawStaffID, 10, 64)
		if err != nil || staffID <= 0 {
			h.logger.Warn("GET /available-slots - Invalid staffId: %q", rawStaffID)
			handlers.RespondBadRequest(w, msgInvalidStaff)
			return
		}
		req.StaffID = &staffID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMenuNotFound):
			h.logger.Warn("GET /available-slots - Menu not found: menu_id=%d", menuID)
			handlers.RespondNotFound(w, msgMenuNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /available-slots - Failed to compute slots: date=%s, menu_id=%d, error=%v",
				rawDate, menuID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /available-slots - Computed %d slots: date=%s, menu_id=%d",
		len(result.Slots), rawDate, menuID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
