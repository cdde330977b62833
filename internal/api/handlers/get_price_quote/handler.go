package get_price_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LSM-AppointmentService/internal/api/handlers"
	getPriceQuote "github.com/m04kA/LSM-AppointmentService/internal/usecase/get_price_quote"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgBusinessNotFound  = "бизнес не найден"
	msgServiceNotFound   = "услуга не найдена"
	msgInvalidParams     = "некорректные параметры запроса"
)

// PriceQuoteResponse HTTP response model
type PriceQuoteResponse struct {
	BusinessID    int64   `json:"businessId"`
	ServiceID     string  `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	OriginalPrice string  `json:"originalPrice"`
	FinalPrice    string  `json:"finalPrice"`
	BadgeLabel    *string `json:"badgeLabel,omitempty"`
}

type Handler struct {
	useCase GetPriceQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetPriceQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/services/{serviceId}/price
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services/{sid}/price - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	serviceID := vars["serviceId"]

	result, err := h.useCase.Execute(r.Context(), &getPriceQuote.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getPriceQuote.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/services/{sid}/price - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getPriceQuote.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/services/{sid}/price - Service not found: business_id=%d, service_id=%s",
				businessID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getPriceQuote.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /businesses/{id}/services/{sid}/price - Failed: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/services/{sid}/price - Quote computed: business_id=%d, service_id=%s",
		businessID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, &PriceQuoteResponse{
		BusinessID:    result.BusinessID,
		ServiceID:     result.ServiceID,
		ServiceName:   result.ServiceName,
		OriginalPrice: result.OriginalPrice.StringFixed(2),
		FinalPrice:    result.FinalPrice.StringFixed(2),
		BadgeLabel:    result.BadgeLabel,
	})
}
