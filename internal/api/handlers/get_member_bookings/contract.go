package get_member_bookings

import (
	"context"

	"github.com/m04kA/GMS-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetMemberBookings(ctx context.Context, req *models.GetMemberBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
