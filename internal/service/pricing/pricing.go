package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// priceScale знаков после запятой в денежных суммах
const priceScale = 2

var hundred = decimal.NewFromInt(100)

// Quote результат расчета цены услуги с учетом скидки
// Original и Final округлены одинаково: это и отображаемая,
// и персистируемая на бронировании сумма - политика округления
// обязана совпадать везде
type Quote struct {
	Original decimal.Decimal
	Final    decimal.Decimal

	// BadgeLabel метка промо-бейджа; заполняется только когда скидка
	// реально применена и правило просит показывать бейдж
	BadgeLabel *string
}

// Applied возвращает true, если скидка изменила цену
func (q Quote) Applied() bool {
	return !q.Final.Equal(q.Original)
}

// Resolve вычисляет клиентскую цену услуги на дату today
//
// Правило не применяется, если оно выключено, с нулевым значением,
// вне окна дат (открытые границы - без ограничения) или не покрывает услугу.
// percent: round(original * (100 - value) / 100)
// amount:  round(original - value)
// Округление - round-half-up до копеек; результат не бывает отрицательным
func Resolve(originalPrice decimal.Decimal, serviceID string, rule *domain.DiscountRule, today time.Time) Quote {
	original := originalPrice.Round(priceScale)
	quote := Quote{Original: original, Final: original}

	if !rule.IsActiveOn(today) {
		return quote
	}
	if !rule.AppliesToService(serviceID) {
		return quote
	}

	var final decimal.Decimal
	switch rule.Type {
	case domain.DiscountPercent:
		final = original.Mul(hundred.Sub(rule.Value)).Div(hundred)
	case domain.DiscountAmount:
		final = original.Sub(rule.Value)
	default:
		return quote
	}

	final = final.Round(priceScale)
	if final.IsNegative() {
		final = decimal.Zero
	}

	quote.Final = final
	if quote.Applied() && rule.ShowBadge && rule.Label != "" {
		label := rule.Label
		quote.BadgeLabel = &label
	}

	return quote
}
