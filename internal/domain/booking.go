package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/LSM-AppointmentService/pkg/types"
)

// BookingStatus represents the status of a booking attempt
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// CancelReason причина отмены бронирования
type CancelReason string

const (
	// ReasonSlotTaken выставляется внешним детектором конфликтов,
	// когда слот успел занять другой клиент
	ReasonSlotTaken CancelReason = "slot_taken"

	// ReasonDeclined выставляется, когда бизнес отклонил заявку
	ReasonDeclined CancelReason = "declined"

	// ReasonOther отмена клиентом или бизнесом по любой другой причине
	ReasonOther CancelReason = "other"
)

// Booking represents a booking attempt against a business
// Создается в статусе pending; слот НЕ резервируется атомарно -
// гонка двух клиентов разрешается пост-фактум (см. usecase submit_booking)
type Booking struct {
	ID         int64
	BusinessID int64
	Date       time.Time
	StartTime  types.TimeString

	// Снапшот услуги на момент бронирования
	ServiceID       string
	ServiceName     string
	DurationMinutes int

	// Данные клиента
	CustomerName  string
	CustomerPhone string

	// Снапшот цены на момент бронирования - авторитетен навсегда,
	// последующие правки правила скидки его не меняют
	OriginalPrice decimal.Decimal
	FinalPrice    decimal.Decimal
	DiscountLabel *string

	// Диагностический ключ вида "2024-06-10_10-30"
	// НЕ является ограничением уникальности в хранилище
	SlotID string

	Status       BookingStatus
	CancelReason *CancelReason
	CancelledAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsFinal returns true if the booking reached a terminal state
// Отмененное бронирование неизменяемо
func (b *Booking) IsFinal() bool {
	return b.Status == StatusCancelled
}

// CanBeConfirmed returns true if the booking can transition to confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsConflictLoser returns true if the booking lost a slot race
func (b *Booking) IsConflictLoser() bool {
	return b.Status == StatusCancelled && b.CancelReason != nil && *b.CancelReason == ReasonSlotTaken
}

// EffectiveDuration возвращает длительность бронирования для проверки пересечений
// Некорректные значения нормализуются: отсутствие - к дефолту, слишком короткие - к минимуму
func (b *Booking) EffectiveDuration() int {
	if b.DurationMinutes <= 0 {
		return DefaultBookingDurationMinutes
	}
	if b.DurationMinutes < MinBookingDurationMinutes {
		return MinBookingDurationMinutes
	}
	return b.DurationMinutes
}

// NewSlotID строит диагностический ключ слота из даты и времени начала
func NewSlotID(date time.Time, startTime types.TimeString) string {
	hhmm := startTime.String()
	if len(hhmm) == 5 && hhmm[2] == ':' {
		hhmm = hhmm[:2] + "-" + hhmm[3:]
	}
	return date.Format(DateFormat) + "_" + hhmm
}

// BusinessBookingsFilter фильтр для выборки бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID      int64          // Обязательный параметр
	Date            *time.Time     // Конкретная дата (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
