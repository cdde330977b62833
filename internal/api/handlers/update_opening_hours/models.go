package update_opening_hours

import (
	"fmt"
	"time"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	"github.com/m04kA/LSM-AppointmentService/pkg/types"
)

var weekdayKeys = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// DayScheduleRequest расписание одного дня
type DayScheduleRequest struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// UpdateOpeningHoursRequest HTTP request model
// Ключи - дни недели "monday".."sunday"; отсутствующий день считается выходным
type UpdateOpeningHoursRequest struct {
	OpeningHours map[string]DayScheduleRequest `json:"openingHours"`
}

// ToDomain конвертирует HTTP запрос в доменную модель расписания
func (r *UpdateOpeningHoursRequest) ToDomain() (domain.WeekSchedule, error) {
	schedule := make(domain.WeekSchedule, len(r.OpeningHours))

	for key, day := range r.OpeningHours {
		weekday, ok := weekdayKeys[key]
		if !ok {
			return nil, fmt.Errorf("unknown weekday key %q", key)
		}

		if day.Closed {
			schedule[weekday] = domain.DaySchedule{Closed: true}
			continue
		}

		open, err := types.NewTimeStringFromString(day.Open)
		if err != nil {
			return nil, fmt.Errorf("%s: open: %w", key, err)
		}
		closeTime, err := types.NewTimeStringFromString(day.Close)
		if err != nil {
			return nil, fmt.Errorf("%s: close: %w", key, err)
		}

		schedule[weekday] = domain.DaySchedule{Open: open, Close: closeTime}
	}

	return schedule, nil
}
