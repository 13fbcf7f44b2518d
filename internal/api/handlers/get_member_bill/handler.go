package get_member_bill

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/GMS-BookingService/internal/api/handlers"
	"github.com/m04kA/GMS-BookingService/internal/api/middleware"
	"github.com/m04kA/GMS-BookingService/internal/domain"
	calculateBill "github.com/m04kA/GMS-BookingService/internal/usecase/calculate_bill"
)

const (
	msgInvalidMemberID = "некорректный идентификатор участника"
	msgAccessDenied    = "доступ только к собственному счёту"
	msgMissingMonth    = "требуется параметр month в формате YYYY-MM"
	msgInvalidMonth    = "некорректный формат месяца, ожидается YYYY-MM"
	msgMemberNotFound  = "участник не найден"
)

type Handler struct {
	useCase CalculateBillUseCase
	logger  Logger
}

func NewHandler(useCase CalculateBillUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/members/{memberId}/bill?month=YYYY-MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	authMemberID, ok := middleware.MemberIDFromContext(r.Context())
	if !ok {
		h.logger.Error("GET /members/{id}/bill - No member id in context")
		handlers.RespondInternalError(w)
		return
	}

	rawMemberID := mux.Vars(r)["memberId"]
	memberID, err := strconv.ParseInt(rawMemberID, 10, 64)
	if err != nil || memberID <= 0 {
		h.logger.Warn("GET /members/{id}/bill - Invalid member id: %q", rawMemberID)
		handlers.RespondBadRequest(w, msgInvalidMemberID)
		return
	}

	// Участник видит только собственный счёт
	if memberID != authMemberID {
		h.logger.Warn("GET /members/{id}/bill - Access denied: member_id=%d, auth_member_id=%d",
			memberID, authMemberID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	rawMonth := r.URL.Query().Get("month")
	if rawMonth == "" {
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	month, err := time.Parse(domain.MonthFormat, rawMonth)
	if err != nil {
		h.logger.Warn("GET /members/{id}/bill - Invalid month: %q", rawMonth)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &calculateBill.Request{
		MemberID: memberID,
		Month:    month,
	})
	if err != nil {
		switch {
		case errors.Is(err, calculateBill.ErrMemberNotFound):
			h.logger.Warn("GET /members/{id}/bill - Member not found: member_id=%d", memberID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, calculateBill.ErrInvalidInput):
			h.logger.Warn("GET /members/{id}/bill - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /members/{id}/bill - Failed to calculate bill: member_id=%d, month=%s, error=%v",
				memberID, rawMonth, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /members/{id}/bill - Bill calculated: member_id=%d, month=%s, total=%d",
		memberID, rawMonth, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
