package get_available_slots

import (
	"time"

	"github.com/m04kA/LSM-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	ServiceID  string    // ID услуги (определяет длительность кандидата)
	Date       time.Time // Дата для получения слотов (без времени)
}

// UnavailableReason причина недоступности кандидата (для UI и диагностики)
type UnavailableReason string

const (
	// ReasonPast время уже прошло (только для сегодняшней даты)
	ReasonPast UnavailableReason = "past"

	// ReasonExcluded дата или время заблокированы владельцем
	ReasonExcluded UnavailableReason = "excluded"

	// ReasonBooked кандидат пересекается с существующим бронированием
	ReasonBooked UnavailableReason = "booked"
)

// UnavailableSlot отфильтрованный кандидат с причиной
type UnavailableSlot struct {
	StartTime types.TimeString
	Reason    UnavailableReason
}

// Response модель ответа со списками доступных и недоступных слотов
// Пустой список слотов - легитимный итог ("на эту дату броней нет"), не ошибка
type Response struct {
	BusinessID      int64
	ServiceID       string
	ServiceName     string
	Date            time.Time
	DurationMinutes int

	Slots       []types.TimeString // Доступные времена начала, по возрастанию
	Unavailable []UnavailableSlot  // Отфильтрованные кандидаты с причинами
}
