package get_business_bookings

import (
	"strconv"
	"time"

	getBooking "github.com/m04kA/LSM-AppointmentService/internal/api/handlers/get_booking"
	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// BookingsListResponse HTTP response model
type BookingsListResponse struct {
	BusinessID int64                         `json:"businessId"`
	Bookings   []*getBooking.BookingResponse `json:"bookings"`
}

// ToFilter строит фильтр выборки из query параметров
func ToFilter(businessID int64, dateStr, statusStr, includeInactiveStr string) (domain.BusinessBookingsFilter, error) {
	filter := domain.BusinessBookingsFilter{BusinessID: businessID}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	if statusStr != "" {
		status := domain.BookingStatus(statusStr)
		filter.Status = &status
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return filter, err
		}
		filter.IncludeInactive = includeInactive
	}

	return filter, nil
}

// FromDomainList конвертирует список бронирований в HTTP response
func FromDomainList(businessID int64, bookings []*domain.Booking) *BookingsListResponse {
	items := make([]*getBooking.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, getBooking.FromDomain(b))
	}

	return &BookingsListResponse{
		BusinessID: businessID,
		Bookings:   items,
	}
}
