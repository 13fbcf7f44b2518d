package get_member_bill

import (
	"github.com/m04kA/GMS-BookingService/internal/domain"
	calculateBill "github.com/m04kA/GMS-BookingService/internal/usecase/calculate_bill"
)

// AdditionalSessionResponse строка детализации дополнительной сессии
type AdditionalSessionResponse struct {
	BookingID int64  `json:"bookingId"`
	Date      string `json:"date"` // "2026-03-10"
	StartTime string `json:"startTime"`
	StaffName string `json:"staffName"`
	Rate      int    `json:"rate"`
	Status    string `json:"status"`
}

// BillResponse HTTP response model со счётом за месяц
type BillResponse struct {
	MemberID int64  `json:"memberId"`
	Month    string `json:"month"` // "2026-03"

	StageName    string  `json:"stageName"`
	DiscountRate float64 `json:"discountRate"`

	BasePlanFee       int `json:"basePlanFee"`
	DiscountedBaseFee int `json:"discountedBaseFee"`

	ContractedSessions int `json:"contractedSessions"`
	MainTrainerRate    int `json:"mainTrainerRate"`
	ContractedFee      int `json:"contractedFee"`

	AdditionalSessions []AdditionalSessionResponse `json:"additionalSessions"`
	AdditionalFee      int                         `json:"additionalFee"`

	Total int `json:"total"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *calculateBill.Response) *BillResponse {
	items := make([]AdditionalSessionResponse, len(resp.AdditionalSessions))
	for i, item := range resp.AdditionalSessions {
		items[i] = AdditionalSessionResponse{
			BookingID: item.BookingID,
			Date:      item.Date.Format(domain.DateFormat),
			StartTime: item.StartTime.String(),
			StaffName: item.StaffName,
			Rate:      item.Rate,
			Status:    string(item.Status),
		}
	}

	return &BillResponse{
		MemberID:           resp.MemberID,
		Month:              resp.Month,
		StageName:          resp.StageName,
		DiscountRate:       resp.DiscountRate,
		BasePlanFee:        resp.BasePlanFee,
		DiscountedBaseFee:  resp.DiscountedBaseFee,
		ContractedSessions: resp.ContractedSessions,
		MainTrainerRate:    resp.MainTrainerRate,
		ContractedFee:      resp.ContractedFee,
		AdditionalSessions: items,
		AdditionalFee:      resp.AdditionalFee,
		Total:              resp.Total,
	}
}
