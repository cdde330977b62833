package update_exclusions

import (
	"context"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

type ProfileService interface {
	UpdateExclusions(ctx context.Context, businessID int64, rules domain.ExclusionRules) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
