package submit_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	"github.com/m04kA/LSM-AppointmentService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	BusinessID int64            // ID бизнеса
	ServiceID  string           // ID услуги из каталога бизнеса
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала слота

	CustomerName  string // Имя клиента
	CustomerPhone string // Телефон клиента
}

// Outcome итог протокола отправки бронирования
type Outcome string

const (
	// OutcomeSuccess запись принята: окно опроса прошло без сигнала конфликта
	// либо статус ушел из pending не в отмену
	OutcomeSuccess Outcome = "success"

	// OutcomeConflict слот забрал конкурент: запись помечена
	// cancelled/slot_taken, клиенту нужно выбрать другое время
	OutcomeConflict Outcome = "conflict"
)

// Response модель ответа на создание бронирования
type Response struct {
	Outcome Outcome

	BookingID int64
	SlotID    string
	Status    domain.BookingStatus

	ServiceName     string
	DurationMinutes int

	// Снапшот цены, зафиксированный на записи
	OriginalPrice decimal.Decimal
	FinalPrice    decimal.Decimal
	DiscountLabel *string
}
