package profile

import (
	"context"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// ProfileRepository интерфейс репозитория профилей бизнесов
type ProfileRepository interface {
	GetByID(ctx context.Context, businessID int64) (*domain.BusinessProfile, error)
	UpdateOpeningHours(ctx context.Context, businessID int64, schedule domain.WeekSchedule) error
	UpdateExclusions(ctx context.Context, businessID int64, rules domain.ExclusionRules) error
	UpdateDiscount(ctx context.Context, businessID int64, rule *domain.DiscountRule) error
	UpdateServices(ctx context.Context, businessID int64, services []domain.ServiceOffering) error
}

// ProfileCache интерфейс кеша профилей на чтение
// Явный объект с TTL, внедряется снаружи; инвалидируется на каждой записи
type ProfileCache interface {
	Get(businessID int64) (*domain.BusinessProfile, bool)
	Set(businessID int64, profile *domain.BusinessProfile)
	Invalidate(businessID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
