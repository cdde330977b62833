package bookings

import (
	"context"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
	Confirm(ctx context.Context, id int64) error
	Cancel(ctx context.Context, id int64, reason domain.CancelReason) error
}

// TxManager интерфейс менеджера транзакций
// Переход статуса выполняется под той же транзакцией, что и перечитывание
// записи: guard-проверка и update видят один снимок
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
