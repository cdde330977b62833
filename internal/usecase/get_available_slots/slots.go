package get_available_slots

import (
	"time"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	"github.com/m04kA/LSM-AppointmentService/pkg/types"
)

// generateCandidates генерирует кандидатов начала слота на день
// От открытия с шагом stepMinutes, пока кандидат + длительность услуги
// помещается до закрытия: последний возможный старт - close - duration.
// Если услуга длиннее рабочего дня, список пуст - это валидный итог
// "сегодня слотов нет", не ошибка
func generateCandidates(day domain.DaySchedule, serviceDuration, stepMinutes int) []types.TimeString {
	if day.Closed {
		return []types.TimeString{}
	}

	candidates := make([]types.TimeString, 0)
	current := day.Open

	for {
		end, err := current.AddMinutes(serviceDuration)
		if err != nil {
			// Вышли за пределы суток - дальше кандидатов нет
			break
		}
		if end.IsAfter(day.Close) {
			break
		}

		candidates = append(candidates, current)

		next, err := current.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return candidates
}

// filterCandidates разделяет кандидатов на доступные и недоступные
// Кандидат недоступен, если (в порядке приоритета причин):
//  1. past - дата запроса сегодняшняя и время уже прошло
//  2. excluded - дата целиком или конкретное время заблокированы владельцем
//  3. booked - интервал кандидата пересекается с активным бронированием
//
// Фильтрация - чистая функция своих входов: два прогона на одном
// снапшоте bookings дают одинаковый результат
func filterCandidates(
	candidates []types.TimeString,
	serviceDuration int,
	date time.Time,
	now time.Time,
	exclusions domain.ExclusionRules,
	bookings []*domain.Booking,
) ([]types.TimeString, []UnavailableSlot) {
	available := make([]types.TimeString, 0, len(candidates))
	unavailable := make([]UnavailableSlot, 0)

	dateExcluded := exclusions.IsDateExcluded(date)
	sameDay := isSameDay(date, now)
	nowTime := types.NewTimeString(now)

	for _, candidate := range candidates {
		if sameDay && !candidate.IsAfter(nowTime) {
			// Время уже прошло; будущие даты этим правилом не фильтруются
			unavailable = append(unavailable, UnavailableSlot{StartTime: candidate, Reason: ReasonPast})
			continue
		}

		if dateExcluded || exclusions.IsTimeExcluded(date, candidate) {
			unavailable = append(unavailable, UnavailableSlot{StartTime: candidate, Reason: ReasonExcluded})
			continue
		}

		if overlapsAnyBooking(candidate, serviceDuration, bookings) {
			unavailable = append(unavailable, UnavailableSlot{StartTime: candidate, Reason: ReasonBooked})
			continue
		}

		available = append(available, candidate)
	}

	return available, unavailable
}

// overlapsAnyBooking проверяет пересечение кандидата с активными бронированиями
// Интервалы полуоткрытые: касание границ пересечением не считается -
// бронирование до 10:00 не блокирует кандидата на 10:00.
// Длительности асимметричны: у кандидата - выбранная услуга,
// у бронирования - его собственная сохраненная длительность
func overlapsAnyBooking(candidate types.TimeString, serviceDuration int, bookings []*domain.Booking) bool {
	candidateEnd, err := candidate.AddMinutes(serviceDuration)
	if err != nil {
		// Конец кандидата не вычислить - пересечений не фиксируем
		return false
	}

	for _, booking := range bookings {
		// Пропускаем неактивные бронирования
		if !booking.IsActive() {
			continue
		}

		bookingStart := booking.StartTime
		bookingEnd, err := booking.StartTime.AddMinutes(booking.EffectiveDuration())
		if err != nil {
			continue
		}

		// Строгие неравенства: граничные случаи не считаются пересечением
		if bookingStart.IsBefore(candidateEnd) && candidate.IsBefore(bookingEnd) {
			return true
		}
	}

	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
