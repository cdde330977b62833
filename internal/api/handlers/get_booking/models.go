package get_booking

import (
	"time"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	SlotID          string  `json:"slotId"`
	ServiceID       string  `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	OriginalPrice   string  `json:"originalPrice"`
	FinalPrice      string  `json:"finalPrice"`
	DiscountLabel   *string `json:"discountLabel,omitempty"`
	Status          string  `json:"status"`
	CancelReason    *string `json:"cancelReason,omitempty"`
	CancelledAt     *string `json:"cancelledAt,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// FromDomain конвертирует доменную модель в HTTP response
func FromDomain(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:              b.ID,
		BusinessID:      b.BusinessID,
		Date:            b.Date.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		SlotID:          b.SlotID,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		DurationMinutes: b.DurationMinutes,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		OriginalPrice:   b.OriginalPrice.StringFixed(2),
		FinalPrice:      b.FinalPrice.StringFixed(2),
		DiscountLabel:   b.DiscountLabel,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       b.UpdatedAt.Format(time.RFC3339),
	}

	if b.CancelReason != nil {
		reason := string(*b.CancelReason)
		resp.CancelReason = &reason
	}
	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}
