package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/LSM-AppointmentService/pkg/types"
)

var (
	// ErrInvalidSchedule возвращается при нарушении инварианта open < close
	ErrInvalidSchedule = errors.New("domain: open time must be before close time")
)

// DaySchedule расписание работы на один день недели
type DaySchedule struct {
	Open   types.TimeString
	Close  types.TimeString
	Closed bool
}

// Validate проверяет инвариант open < close для рабочего дня
// Нарушение - ошибка конфигурации, которая должна падать на границе
// редактирования, а не маскироваться под "все занято"
func (d DaySchedule) Validate() error {
	if d.Closed {
		return nil
	}
	if err := d.Open.Validate(); err != nil {
		return err
	}
	if err := d.Close.Validate(); err != nil {
		return err
	}
	if !d.Open.IsBefore(d.Close) {
		return fmt.Errorf("%w: open=%s close=%s", ErrInvalidSchedule, d.Open, d.Close)
	}
	return nil
}

// WeekSchedule расписание работы по дням недели
// Отсутствующий день трактуется как выходной
type WeekSchedule map[time.Weekday]DaySchedule

// ForDate возвращает расписание на день недели указанной даты
func (w WeekSchedule) ForDate(date time.Time) DaySchedule {
	day, ok := w[date.Weekday()]
	if !ok {
		return DaySchedule{Closed: true}
	}
	return day
}

// Validate проверяет расписание каждого дня
func (w WeekSchedule) Validate() error {
	for weekday, day := range w {
		if err := day.Validate(); err != nil {
			return fmt.Errorf("%s: %w", weekday, err)
		}
	}
	return nil
}

// ServiceOffering услуга, которую можно забронировать
// ID - стабильный uuid, присваиваемый при редактировании списка услуг
// (составной ключ имя+цена неоднозначен при совпадении услуг)
type ServiceOffering struct {
	ID              string
	Name            string
	Price           decimal.Decimal
	DurationMinutes int
}

// ExclusionRules правила блокировки, задаваемые владельцем
// независимо от загрузки бронированиями
type ExclusionRules struct {
	// ExcludedDates полностью заблокированные даты ("2024-06-10")
	ExcludedDates []string

	// ExcludedTimes заблокированные времена по датам
	ExcludedTimes map[string][]types.TimeString
}

// IsDateExcluded проверяет, заблокирована ли дата целиком
func (e ExclusionRules) IsDateExcluded(date time.Time) bool {
	key := date.Format(DateFormat)
	for _, d := range e.ExcludedDates {
		if d == key {
			return true
		}
	}
	return false
}

// IsTimeExcluded проверяет, заблокировано ли конкретное время на дату
func (e ExclusionRules) IsTimeExcluded(date time.Time, t types.TimeString) bool {
	for _, blocked := range e.ExcludedTimes[date.Format(DateFormat)] {
		if blocked == t {
			return true
		}
	}
	return false
}

// DiscountType тип скидки
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountAmount  DiscountType = "amount"
)

// DiscountAppliesTo область применения скидки
type DiscountAppliesTo string

const (
	AppliesToAll      DiscountAppliesTo = "all"
	AppliesToSpecific DiscountAppliesTo = "specific"
)

// DiscountRule промо-правило бизнеса
// Оценивается против текущей даты при чтении; на бронирование
// записывается снапшот результата, а не ссылка на правило
type DiscountRule struct {
	Enabled    bool
	Label      string
	Type       DiscountType
	Value      decimal.Decimal
	AppliesTo  DiscountAppliesTo
	ServiceIDs []string
	StartDate  *time.Time // nil = без нижней границы
	EndDate    *time.Time // nil = без верхней границы
	ShowBadge  bool
}

// IsActiveOn проверяет, действует ли правило на указанную дату
func (r *DiscountRule) IsActiveOn(today time.Time) bool {
	if r == nil || !r.Enabled || r.Value.LessThanOrEqual(decimal.Zero) {
		return false
	}

	day := dateOnly(today)
	if r.StartDate != nil && day.Before(dateOnly(*r.StartDate)) {
		return false
	}
	if r.EndDate != nil && day.After(dateOnly(*r.EndDate)) {
		return false
	}
	return true
}

// AppliesToService проверяет, применимо ли правило к услуге
func (r *DiscountRule) AppliesToService(serviceID string) bool {
	if r == nil {
		return false
	}
	if r.AppliesTo == AppliesToAll {
		return true
	}
	for _, id := range r.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// BusinessProfile профиль бизнеса, как его видит движок бронирований
// Владеется и мутируется профилем бизнеса; движок читает его
type BusinessProfile struct {
	BusinessID   int64
	Name         string
	OpeningHours WeekSchedule
	Exclusions   ExclusionRules
	Services     []ServiceOffering
	Discount     *DiscountRule

	UpdatedAt time.Time
}

// ServiceByID ищет услугу по идентификатору
func (p *BusinessProfile) ServiceByID(id string) (*ServiceOffering, bool) {
	for i := range p.Services {
		if p.Services[i].ID == id {
			return &p.Services[i], true
		}
	}
	return nil, false
}
