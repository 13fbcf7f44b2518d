package cancel_booking

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	cancelBooking "github.com/m04kA/GMS-BookingService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"` // normal | sickness | bereavement | other
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID   int64  `json:"bookingId"`
	Status      string `json:"status"`
	Reason      string `json:"reason"`
	Relieved    bool   `json:"relieved"`
	Message     string `json:"message"`
	CancelledAt string `json:"cancelledAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(bookingID, memberID int64) *cancelBooking.Request {
	req := &cancelBooking.Request{
		BookingID: bookingID,
		MemberID:  memberID,
	}

	if r.Reason != nil {
		reason := domain.CancellationReason(*r.Reason)
		req.Reason = &reason
	}

	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response.
// Текст итога формируется здесь: ядро возвращает только статус и флаг льготы.
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:   resp.BookingID,
		Status:      string(resp.Status),
		Reason:      string(resp.Reason),
		Relieved:    resp.Relieved,
		Message:     outcomeMessage(resp),
		CancelledAt: resp.CancelledAt.Format(time.RFC3339),
	}
}

func outcomeMessage(resp *cancelBooking.Response) string {
	switch {
	case resp.Relieved:
		return "бронирование отменено, штраф снят месячной льготой"
	case resp.Status == domain.StatusCancelledLate:
		return "бронирование отменено со штрафом: сессия засчитана в квоту месяца"
	default:
		return "бронирование отменено без штрафа"
	}
}
