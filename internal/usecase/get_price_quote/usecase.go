package get_price_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/LSM-AppointmentService/internal/service/pricing"
	profileService "github.com/m04kA/LSM-AppointmentService/internal/service/profile"
)

// Request модель запроса на расчет цены услуги
type Request struct {
	BusinessID int64  // ID бизнеса
	ServiceID  string // ID услуги
}

// Response модель ответа с расчетом цены на сегодняшнюю дату
type Response struct {
	BusinessID  int64
	ServiceID   string
	ServiceName string

	OriginalPrice decimal.Decimal
	FinalPrice    decimal.Decimal
	BadgeLabel    *string
}

// UseCase use case расчета клиентской цены услуги
// Скидка оценивается на текущую дату: это витринная цена, снапшот
// на бронировании фиксируется отдельно при отправке заявки
type UseCase struct {
	profileReader ProfileReader
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(profileReader ProfileReader, logger Logger) *UseCase {
	return &UseCase{
		profileReader: profileReader,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет расчет цены
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if req.ServiceID == "" {
		return nil, fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	profile, err := uc.profileReader.GetProfile(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, profileService.ErrBusinessNotFound) {
			uc.logger.Warn("GetPriceQuote: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetPriceQuote: failed to get profile id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	service, ok := profile.ServiceByID(req.ServiceID)
	if !ok {
		uc.logger.Warn("GetPriceQuote: service id=%s not found in business id=%d", req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	quote := pricing.Resolve(service.Price, service.ID, profile.Discount, uc.timeProvider.Now())

	return &Response{
		BusinessID:    req.BusinessID,
		ServiceID:     service.ID,
		ServiceName:   service.Name,
		OriginalPrice: quote.Original,
		FinalPrice:    quote.Final,
		BadgeLabel:    quote.BadgeLabel,
	}, nil
}
