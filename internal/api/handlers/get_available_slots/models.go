package get_available_slots

import (
	"github.com/m04kA/GMS-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/GMS-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse временной слот с перечнем свободных сотрудников
type SlotResponse struct {
	Time     string  `json:"time"` // "10:00"
	StaffIDs []int64 `json:"staffIds"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date                string         `json:"date"` // "2026-03-10"
	MenuID              int64          `json:"menuId"`
	MenuDurationMinutes int            `json:"menuDurationMinutes"`
	Slots               []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			Time:     slot.StartTime.String(),
			StaffIDs: slot.StaffIDs,
		}
	}

	return &AvailableSlotsResponse{
		Date:                resp.Date.Format(domain.DateFormat),
		MenuID:              resp.MenuID,
		MenuDurationMinutes: resp.MenuDurationMinutes,
		Slots:               slots,
	}
}
