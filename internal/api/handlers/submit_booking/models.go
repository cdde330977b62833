package submit_booking

import (
	"time"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	submitBooking "github.com/m04kA/LSM-AppointmentService/internal/usecase/submit_booking"
	"github.com/m04kA/LSM-AppointmentService/pkg/types"
)

// SubmitBookingRequest HTTP request model
type SubmitBookingRequest struct {
	BusinessID    int64  `json:"businessId"`
	ServiceID     string `json:"serviceId"`
	Date          string `json:"date"`      // "2024-06-10"
	StartTime     string `json:"startTime"` // "10:30"
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
}

// SubmitBookingResponse HTTP response model
type SubmitBookingResponse struct {
	Outcome         string  `json:"outcome"`
	BookingID       int64   `json:"bookingId"`
	SlotID          string  `json:"slotId"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	OriginalPrice   string  `json:"originalPrice"`
	FinalPrice      string  `json:"finalPrice"`
	DiscountLabel   *string `json:"discountLabel,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SubmitBookingRequest) ToUseCaseRequest() (*submitBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &submitBooking.Request{
		BusinessID:    r.BusinessID,
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Денежные суммы сериализуются строками, чтобы не терять точность в float
func FromUseCaseResponse(resp *submitBooking.Response) *SubmitBookingResponse {
	return &SubmitBookingResponse{
		Outcome:         string(resp.Outcome),
		BookingID:       resp.BookingID,
		SlotID:          resp.SlotID,
		Status:          string(resp.Status),
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		OriginalPrice:   resp.OriginalPrice.StringFixed(2),
		FinalPrice:      resp.FinalPrice.StringFixed(2),
		DiscountLabel:   resp.DiscountLabel,
	}
}
