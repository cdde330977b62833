package domain

// Default values
const (
	// DefaultSlotStepMinutes шаг генерации кандидатов слотов
	DefaultSlotStepMinutes = 30

	// DefaultBookingDurationMinutes длительность бронирования,
	// если в записи она отсутствует
	DefaultBookingDurationMinutes = 30

	// MinBookingDurationMinutes нижняя граница длительности существующего
	// бронирования при проверке пересечений
	MinBookingDurationMinutes = 15
)

// Business validation constants
const (
	MinCustomerNameLength  = 2
	MaxCustomerNameLength  = 100
	MaxServiceNameLength   = 200
	MinServiceDuration     = 5
	MaxServiceDuration     = 480 // 8 часов
	MaxSlotStepMinutes     = 240
	MinSlotStepMinutes     = 5
)

// DefaultPhonePattern паттерн российского мобильного номера по умолчанию
// Переопределяется в конфигурации (booking.phone_pattern)
const DefaultPhonePattern = `^(?:\+7|8)9[0-9]{9}$`

// Conflict poll defaults
// Запись слота не атомарна: после записи pending-заявки мы коротким
// ограниченным опросом ждем, не пометил ли внешний детектор запись как
// проигравшую гонку (cancelled/slot_taken)
const (
	DefaultConflictPollAttempts   = 6
	DefaultConflictPollIntervalMS = 350
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, занимающих слот
// Используются при выборке для фильтра доступности
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
