package get_business_profile

import (
	"context"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

type ProfileService interface {
	GetProfile(ctx context.Context, businessID int64) (*domain.BusinessProfile, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
