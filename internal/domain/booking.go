package domain

import (
	"time"

	"github.com/m04kA/GMS-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking.
// The set is closed: a booking is either active (confirmed) or in one of
// the two terminal cancelled states. "Completed" is a derived notion,
// a confirmed booking whose end time has passed, and is never stored.
type BookingStatus string

const (
	StatusConfirmed     BookingStatus = "confirmed"
	StatusCancelled     BookingStatus = "cancelled"
	StatusCancelledLate BookingStatus = "cancelled_late"
)

// CancellationReason classifies why a booking was cancelled
type CancellationReason string

const (
	ReasonNormal      CancellationReason = "normal"
	ReasonSickness    CancellationReason = "sickness"
	ReasonBereavement CancellationReason = "bereavement"
	ReasonOther       CancellationReason = "other"
)

// IsReliefEligible reports whether the reason qualifies for the
// once-per-month late-cancellation relief.
func (r CancellationReason) IsReliefEligible() bool {
	return r == ReasonSickness || r == ReasonBereavement
}

// BookingType classifies how the booking counts against the plan
type BookingType string

const (
	TypeRegular     BookingType = "regular"
	TypeAdditional  BookingType = "additional"
	TypeTransferIn  BookingType = "transfer_in"
	TypeTransferOut BookingType = "transfer_out"
	TypeTrial       BookingType = "trial"
)

// Booking represents a member's appointment with a staff member
type Booking struct {
	ID              int64
	MemberID        int64
	StaffID         int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus
	Type            BookingType

	// Denormalized for history and billing
	StaffName string
	MenuID    int64
	MenuName  string
	MenuPrice float64

	Notes              *string
	CancellationReason *CancellationReason
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking is in a terminal cancelled state
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled || b.Status == StatusCancelledLate
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// CountsTowardQuota returns true if the booking consumes one of the
// member's contracted sessions. A late cancellation keeps its slot in
// the quota: that is the penalty.
func (b *Booking) CountsTowardQuota() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCancelledLate
}

// EndTime returns the wall-clock end of the booking
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// StartsAt anchors the booking start onto its date
func (b *Booking) StartsAt() (time.Time, error) {
	return b.StartTime.On(b.BookingDate)
}

// ValidStatus reports whether s is one of the closed set of statuses.
// Checked at the persistence boundary before any write.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusCancelledLate:
		return true
	}
	return false
}

// ValidCancellationReason reports whether r is a known reason
func ValidCancellationReason(r CancellationReason) bool {
	switch r {
	case ReasonNormal, ReasonSickness, ReasonBereavement, ReasonOther:
		return true
	}
	return false
}

// StaffBookingsFilter фильтр для выборки бронирований сотрудника
type StaffBookingsFilter struct {
	StaffID          int64      // Обязательный параметр
	StartDate        *time.Time // Начало периода (опционально)
	EndDate          *time.Time // Конец периода (опционально)
	IncludeCancelled bool       // Включать ли отменённые бронирования
}

// MemberBookingsFilter фильтр для выборки бронирований участника
type MemberBookingsFilter struct {
	MemberID         int64
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *BookingStatus
	IncludeCancelled bool
}
