package update_services

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// ServiceRequest услуга из каталога; пустой id означает новую услугу
type ServiceRequest struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// UpdateServicesRequest HTTP request model
type UpdateServicesRequest struct {
	Services []ServiceRequest `json:"services"`
}

// ToDomain конвертирует HTTP запрос в список доменных услуг
func (r *UpdateServicesRequest) ToDomain() ([]domain.ServiceOffering, error) {
	services := make([]domain.ServiceOffering, 0, len(r.Services))

	for _, s := range r.Services {
		price, err := decimal.NewFromString(s.Price)
		if err != nil {
			return nil, err
		}

		services = append(services, domain.ServiceOffering{
			ID:              s.ID,
			Name:            s.Name,
			Price:           price,
			DurationMinutes: s.DurationMinutes,
		})
	}

	return services, nil
}
