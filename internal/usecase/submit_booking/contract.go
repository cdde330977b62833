package submit_booking

import (
	"context"
	"time"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// Create вставляет попытку бронирования (append-only)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)

	// GetByID перечитывает запись - используется опросом конфликтов
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// ProfileReader интерфейс чтения профиля бизнеса (может отдавать из кеша)
type ProfileReader interface {
	GetProfile(ctx context.Context, businessID int64) (*domain.BusinessProfile, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Sleeper интерфейс паузы между чтениями опроса
// Пауза обязана прерываться отменой контекста: пользователь ушел -
// опрос останавливается, pending запись остается на внешнем разрешении
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
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

// RealSleeper реальная пауза на таймере для production
type RealSleeper struct{}

// Sleep ждет d или до отмены контекста
func (s *RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
