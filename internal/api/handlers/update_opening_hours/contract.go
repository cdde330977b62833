package update_opening_hours

import (
	"context"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

type ProfileService interface {
	UpdateOpeningHours(ctx context.Context, businessID int64, schedule domain.WeekSchedule) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
