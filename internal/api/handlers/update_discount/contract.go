package update_discount

import (
	"context"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

type ProfileService interface {
	UpdateDiscount(ctx context.Context, businessID int64, rule *domain.DiscountRule) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
