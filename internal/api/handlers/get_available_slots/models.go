package get_available_slots

import (
	"time"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/LSM-AppointmentService/internal/usecase/get_available_slots"
)

// UnavailableSlotResponse отфильтрованный кандидат с причиной
type UnavailableSlotResponse struct {
	StartTime string `json:"startTime"`
	Reason    string `json:"reason"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	BusinessID      int64                     `json:"businessId"`
	ServiceID       string                    `json:"serviceId"`
	ServiceName     string                    `json:"serviceName"`
	Date            string                    `json:"date"`
	DurationMinutes int                       `json:"durationMinutes"`
	Slots           []string                  `json:"slots"`
	Unavailable     []UnavailableSlotResponse `json:"unavailable"`
}

// ToUseCaseRequest строит модель use case из параметров запроса
func ToUseCaseRequest(businessID int64, serviceID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, s.String())
	}

	unavailable := make([]UnavailableSlotResponse, 0, len(resp.Unavailable))
	for _, u := range resp.Unavailable {
		unavailable = append(unavailable, UnavailableSlotResponse{
			StartTime: u.StartTime.String(),
			Reason:    string(u.Reason),
		})
	}

	return &AvailableSlotsResponse{
		BusinessID:      resp.BusinessID,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
		Unavailable:     unavailable,
	}
}
