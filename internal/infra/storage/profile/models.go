package profile

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	"github.com/m04kA/LSM-AppointmentService/pkg/types"
)

// jsonb-модели документов профиля
// Дни недели сериализуются ключами "monday".."sunday"

type dayScheduleDoc struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

type weekScheduleDoc map[string]dayScheduleDoc

type exclusionsDoc struct {
	ExcludedDates []string            `json:"excludedDates"`
	ExcludedTimes map[string][]string `json:"excludedTimes"`
}

type serviceDoc struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"durationMinutes"`
}

type discountDoc struct {
	Enabled    bool            `json:"enabled"`
	Label      string          `json:"label"`
	Type       string          `json:"type"`
	Value      decimal.Decimal `json:"value"`
	AppliesTo  string          `json:"appliesTo"`
	ServiceIDs []string        `json:"serviceIds,omitempty"`
	StartDate  *string         `json:"startDate,omitempty"`
	EndDate    *string         `json:"endDate,omitempty"`
	ShowBadge  bool            `json:"showBadge"`
}

var weekdayKeys = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

func weekScheduleToDoc(schedule domain.WeekSchedule) weekScheduleDoc {
	doc := make(weekScheduleDoc, len(schedule))
	for weekday, day := range schedule {
		doc[weekdayNames[weekday]] = dayScheduleDoc{
			Open:   day.Open.String(),
			Close:  day.Close.String(),
			Closed: day.Closed,
		}
	}
	return doc
}

func weekScheduleFromDoc(doc weekScheduleDoc) (domain.WeekSchedule, error) {
	schedule := make(domain.WeekSchedule, len(doc))
	for key, day := range doc {
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
			return nil, fmt.Errorf("%s open: %v", key, err)
		}
		closeTime, err := types.NewTimeStringFromString(day.Close)
		if err != nil {
			return nil, fmt.Errorf("%s close: %v", key, err)
		}
		schedule[weekday] = domain.DaySchedule{Open: open, Close: closeTime}
	}
	return schedule, nil
}

func exclusionsToDoc(rules domain.ExclusionRules) exclusionsDoc {
	doc := exclusionsDoc{
		ExcludedDates: rules.ExcludedDates,
		ExcludedTimes: make(map[string][]string, len(rules.ExcludedTimes)),
	}
	if doc.ExcludedDates == nil {
		doc.ExcludedDates = []string{}
	}
	for date, blocked := range rules.ExcludedTimes {
		strs := make([]string, len(blocked))
		for i, t := range blocked {
			strs[i] = t.String()
		}
		doc.ExcludedTimes[date] = strs
	}
	return doc
}

func exclusionsFromDoc(doc exclusionsDoc) (domain.ExclusionRules, error) {
	rules := domain.ExclusionRules{
		ExcludedDates: doc.ExcludedDates,
		ExcludedTimes: make(map[string][]types.TimeString, len(doc.ExcludedTimes)),
	}
	for date, blocked := range doc.ExcludedTimes {
		parsed := make([]types.TimeString, 0, len(blocked))
		for _, s := range blocked {
			t, err := types.NewTimeStringFromString(s)
			if err != nil {
				return domain.ExclusionRules{}, fmt.Errorf("excluded time for %s: %v", date, err)
			}
			parsed = append(parsed, t)
		}
		rules.ExcludedTimes[date] = parsed
	}
	return rules, nil
}

func servicesToDoc(services []domain.ServiceOffering) []serviceDoc {
	docs := make([]serviceDoc, len(services))
	for i, s := range services {
		docs[i] = serviceDoc{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		}
	}
	return docs
}

func servicesFromDoc(docs []serviceDoc) []domain.ServiceOffering {
	services := make([]domain.ServiceOffering, len(docs))
	for i, d := range docs {
		services[i] = domain.ServiceOffering{
			ID:              d.ID,
			Name:            d.Name,
			Price:           d.Price,
			DurationMinutes: d.DurationMinutes,
		}
	}
	return services
}

func discountToDoc(rule *domain.DiscountRule) *discountDoc {
	if rule == nil {
		return nil
	}
	doc := &discountDoc{
		Enabled:    rule.Enabled,
		Label:      rule.Label,
		Type:       string(rule.Type),
		Value:      rule.Value,
		AppliesTo:  string(rule.AppliesTo),
		ServiceIDs: rule.ServiceIDs,
		ShowBadge:  rule.ShowBadge,
	}
	if rule.StartDate != nil {
		s := rule.StartDate.Format(domain.DateFormat)
		doc.StartDate = &s
	}
	if rule.EndDate != nil {
		s := rule.EndDate.Format(domain.DateFormat)
		doc.EndDate = &s
	}
	return doc
}

func discountFromDoc(doc *discountDoc) (*domain.DiscountRule, error) {
	if doc == nil {
		return nil, nil
	}
	rule := &domain.DiscountRule{
		Enabled:    doc.Enabled,
		Label:      doc.Label,
		Type:       domain.DiscountType(doc.Type),
		Value:      doc.Value,
		AppliesTo:  domain.DiscountAppliesTo(doc.AppliesTo),
		ServiceIDs: doc.ServiceIDs,
		ShowBadge:  doc.ShowBadge,
	}
	if doc.StartDate != nil {
		t, err := time.Parse(domain.DateFormat, *doc.StartDate)
		if err != nil {
			return nil, fmt.Errorf("discount startDate: %v", err)
		}
		rule.StartDate = &t
	}
	if doc.EndDate != nil {
		t, err := time.Parse(domain.DateFormat, *doc.EndDate)
		if err != nil {
			return nil, fmt.Errorf("discount endDate: %v", err)
		}
		rule.EndDate = &t
	}
	return rule, nil
}
