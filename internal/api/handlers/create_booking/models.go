package create_booking

import (
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
	createBooking "github.com/m04kA/GMS-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StaffID     int64   `json:"staffId"`
	MenuID      int64   `json:"menuId"`
	BookingDate string  `json:"bookingDate"` // "2026-03-10"
	StartTime   string  `json:"startTime"`   // "10:00"
	Type        *string `json:"type,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	MemberID        int64   `json:"memberId"`
	StaffID         int64   `json:"staffId"`
	StaffName       string  `json:"staffName"`
	MenuID          int64   `json:"menuId"`
	MenuName        string  `json:"menuName"`
	MenuPrice       float64 `json:"menuPrice"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Type            string  `json:"type"`
	IsOverLimit     bool    `json:"isOverLimit"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(memberID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		MemberID:  memberID,
		StaffID:   r.StaffID,
		MenuID:    r.MenuID,
		Date:      bookingDate,
		StartTime: startTime,
		Notes:     r.Notes,
	}

	if r.Type != nil {
		req.Type = domain.BookingType(*r.Type)
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		MemberID:        resp.MemberID,
		StaffID:         resp.StaffID,
		StaffName:       resp.StaffName,
		MenuID:          resp.MenuID,
		MenuName:        resp.MenuName,
		MenuPrice:       resp.MenuPrice,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
		Type:            string(resp.Type),
		IsOverLimit:     resp.IsOverLimit,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
