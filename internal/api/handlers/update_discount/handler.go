package update_discount

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LSM-AppointmentService/internal/api/handlers"
	"github.com/m04kA/LSM-AppointmentService/internal/service/profile"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDiscount    = "некорректное правило скидки"
	msgUnknownServiceRef  = "правило скидки ссылается на несуществующую услугу"
	msgBusinessNotFound   = "бизнес не найден"
)

type Handler struct {
	service ProfileService
	logger  Logger
}

func NewHandler(service ProfileService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/businesses/{businessId}/discount
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/discount - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req UpdateDiscountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/discount - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	rule, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/discount - Failed to parse rule: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateDiscount(r.Context(), businessID, rule); err != nil {
		switch {
		case errors.Is(err, profile.ErrUnknownServiceRef):
			h.logger.Warn("PUT /businesses/{id}/discount - Unknown service ref: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgUnknownServiceRef)

		case errors.Is(err, profile.ErrInvalidDiscount):
			h.logger.Warn("PUT /businesses/{id}/discount - Invalid rule: business_id=%d, error=%v",
				businessID, err)
			handlers.RespondBadRequest(w, msgInvalidDiscount)

		case errors.Is(err, profile.ErrBusinessNotFound):
			h.logger.Warn("PUT /businesses/{id}/discount - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("PUT /businesses/{id}/discount - Failed: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/discount - Discount updated: business_id=%d", businessID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
