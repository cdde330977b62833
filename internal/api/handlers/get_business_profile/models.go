package get_business_profile

import (
	"time"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// Дни недели в ответе сериализуются ключами "monday".."sunday"
var weekdayNames = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// DayScheduleResponse расписание одного дня
type DayScheduleResponse struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed,omitempty"`
}

// ServiceResponse услуга из каталога бизнеса
type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           string `json:"price"`
	DurationMinutes int    `json:"durationMinutes"`
}

// ExclusionsResponse правила блокировки дат и времен
type ExclusionsResponse struct {
	ExcludedDates []string            `json:"excludedDates"`
	ExcludedTimes map[string][]string `json:"excludedTimes"`
}

// DiscountResponse правило скидки
type DiscountResponse struct {
	Enabled    bool     `json:"enabled"`
	Label      string   `json:"label,omitempty"`
	Type       string   `json:"type"`
	Value      string   `json:"value"`
	AppliesTo  string   `json:"appliesTo"`
	ServiceIDs []string `json:"serviceIds,omitempty"`
	StartDate  *string  `json:"startDate,omitempty"`
	EndDate    *string  `json:"endDate,omitempty"`
	ShowBadge  bool     `json:"showBadge"`
}

// ProfileResponse HTTP response model
type ProfileResponse struct {
	BusinessID   int64                          `json:"businessId"`
	Name         string                         `json:"name"`
	OpeningHours map[string]DayScheduleResponse `json:"openingHours"`
	Services     []ServiceResponse              `json:"services"`
	Exclusions   ExclusionsResponse             `json:"exclusions"`
	Discount     *DiscountResponse              `json:"discount,omitempty"`
}

// FromDomain конвертирует доменную модель профиля в HTTP response
func FromDomain(p *domain.BusinessProfile) *ProfileResponse {
	hours := make(map[string]DayScheduleResponse, len(p.OpeningHours))
	for weekday, day := range p.OpeningHours {
		if day.Closed {
			hours[weekdayNames[weekday]] = DayScheduleResponse{Closed: true}
			continue
		}
		hours[weekdayNames[weekday]] = DayScheduleResponse{
			Open:  day.Open.String(),
			Close: day.Close.String(),
		}
	}

	services := make([]ServiceResponse, 0, len(p.Services))
	for _, s := range p.Services {
		services = append(services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price.StringFixed(2),
			DurationMinutes: s.DurationMinutes,
		})
	}

	excludedTimes := make(map[string][]string, len(p.Exclusions.ExcludedTimes))
	for date, times := range p.Exclusions.ExcludedTimes {
		list := make([]string, 0, len(times))
		for _, t := range times {
			list = append(list, t.String())
		}
		excludedTimes[date] = list
	}

	excludedDates := p.Exclusions.ExcludedDates
	if excludedDates == nil {
		excludedDates = []string{}
	}

	return &ProfileResponse{
		BusinessID:   p.BusinessID,
		Name:         p.Name,
		OpeningHours: hours,
		Services:     services,
		Exclusions: ExclusionsResponse{
			ExcludedDates: excludedDates,
			ExcludedTimes: excludedTimes,
		},
		Discount: discountFromDomain(p.Discount),
	}
}

func discountFromDomain(rule *domain.DiscountRule) *DiscountResponse {
	if rule == nil {
		return nil
	}

	resp := &DiscountResponse{
		Enabled:    rule.Enabled,
		Label:      rule.Label,
		Type:       string(rule.Type),
		Value:      rule.Value.String(),
		AppliesTo:  string(rule.AppliesTo),
		ServiceIDs: rule.ServiceIDs,
		ShowBadge:  rule.ShowBadge,
	}

	if rule.StartDate != nil {
		start := rule.StartDate.Format(domain.DateFormat)
		resp.StartDate = &start
	}
	if rule.EndDate != nil {
		end := rule.EndDate.Format(domain.DateFormat)
		resp.EndDate = &end
	}

	return resp
}
