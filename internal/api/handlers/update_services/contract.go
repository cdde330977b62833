package update_services

import (
	"context"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

type ProfileService interface {
	UpdateServices(ctx context.Context, businessID int64, services []domain.ServiceOffering) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
