package models

import (
	"errors"
	"time"

	"github.com/m04kA/GMS-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetMemberBookingsRequest запрос на получение истории бронирований участника
type GetMemberBookingsRequest struct {
	MemberID         int64      `json:"memberId"`
	StartDate        *time.Time `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time `json:"endDate,omitempty"`          // Конец периода (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetMemberBookingsRequest) ToDomainFilter() (domain.MemberBookingsFilter, error) {
	filter := domain.MemberBookingsFilter{
		MemberID:         r.MemberID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// Явный фильтр по отменённому статусу подразумевает их включение
		if status != domain.StatusConfirmed {
			filter.IncludeCancelled = true
		}
	}

	return filter, nil
}

// GetStaffBookingsRequest запрос на получение бронирований сотрудника на дату
type GetStaffBookingsRequest struct {
	StaffID          int64      `json:"staffId"`
	Date             *time.Time `json:"date,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64  `json:"id"`
	MemberID        int64  `json:"memberId"`
	StaffID         int64  `json:"staffId"`
	BookingDate     string `json:"bookingDate"` // "2026-03-10"
	StartTime       string `json:"startTime"`   // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	Type            string `json:"type"`

	// Денормализованные данные
	StaffName string  `json:"staffName"`
	MenuID    int64   `json:"menuId"`
	MenuName  string  `json:"menuName"`
	MenuPrice float64 `json:"menuPrice"`
	Notes     *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		MemberID:        b.MemberID,
		StaffID:         b.StaffID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		Type:            string(b.Type),
		StaffName:       b.StaffName,
		MenuID:          b.MenuID,
		MenuName:        b.MenuName,
		MenuPrice:       b.MenuPrice,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.CancellationReason != nil {
		reasonStr := string(*b.CancellationReason)
		resp.CancellationReason = &reasonStr
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
