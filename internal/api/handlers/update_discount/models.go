package update_discount

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// DiscountRequest правило скидки; null в теле запроса снимает скидку
type DiscountRequest struct {
	Enabled    bool     `json:"enabled"`
	Label      string   `json:"label"`
	Type       string   `json:"type"`
	Value      string   `json:"value"`
	AppliesTo  string   `json:"appliesTo"`
	ServiceIDs []string `json:"serviceIds"`
	StartDate  *string  `json:"startDate"`
	EndDate    *string  `json:"endDate"`
	ShowBadge  bool     `json:"showBadge"`
}

// UpdateDiscountRequest HTTP request model
type UpdateDiscountRequest struct {
	Discount *DiscountRequest `json:"discount"`
}

// ToDomain конвертирует HTTP запрос в доменную модель правила скидки
func (r *UpdateDiscountRequest) ToDomain() (*domain.DiscountRule, error) {
	if r.Discount == nil {
		return nil, nil
	}

	value, err := decimal.NewFromString(r.Discount.Value)
	if err != nil {
		return nil, err
	}

	rule := &domain.DiscountRule{
		Enabled:    r.Discount.Enabled,
		Label:      r.Discount.Label,
		Type:       domain.DiscountType(r.Discount.Type),
		Value:      value,
		AppliesTo:  domain.DiscountAppliesTo(r.Discount.AppliesTo),
		ServiceIDs: r.Discount.ServiceIDs,
		ShowBadge:  r.Discount.ShowBadge,
	}

	if r.Discount.StartDate != nil {
		start, err := time.Parse(domain.DateFormat, *r.Discount.StartDate)
		if err != nil {
			return nil, err
		}
		rule.StartDate = &start
	}
	if r.Discount.EndDate != nil {
		end, err := time.Parse(domain.DateFormat, *r.Discount.EndDate)
		if err != nil {
			return nil, err
		}
		rule.EndDate = &end
	}

	return rule, nil
}
