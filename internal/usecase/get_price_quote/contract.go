package get_price_quote

import (
	"context"
	"time"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// ProfileReader интерфейс чтения профиля бизнеса (может отдавать из кеша)
type ProfileReader interface {
	GetProfile(ctx context.Context, businessID int64) (*domain.BusinessProfile, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
