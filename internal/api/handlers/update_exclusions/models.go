package update_exclusions

import (
	"fmt"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	"github.com/m04kA/LSM-AppointmentService/pkg/types"
)

// UpdateExclusionsRequest HTTP request model
type UpdateExclusionsRequest struct {
	ExcludedDates []string            `json:"excludedDates"`
	ExcludedTimes map[string][]string `json:"excludedTimes"`
}

// ToDomain конвертирует HTTP запрос в доменную модель правил блокировки
func (r *UpdateExclusionsRequest) ToDomain() (domain.ExclusionRules, error) {
	rules := domain.ExclusionRules{
		ExcludedDates: r.ExcludedDates,
	}

	if len(r.ExcludedTimes) > 0 {
		rules.ExcludedTimes = make(map[string][]types.TimeString, len(r.ExcludedTimes))
		for date, timeStrs := range r.ExcludedTimes {
			times := make([]types.TimeString, 0, len(timeStrs))
			for _, raw := range timeStrs {
				t, err := types.NewTimeStringFromString(raw)
				if err != nil {
					return rules, fmt.Errorf("excludedTimes[%s]: %w", date, err)
				}
				times = append(times, t)
			}
			rules.ExcludedTimes[date] = times
		}
	}

	return rules, nil
}
