package get_business_bookings

import (
	"context"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

type BookingService interface {
	GetBusinessBookings(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
