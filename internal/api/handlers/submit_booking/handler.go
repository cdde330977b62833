package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/LSM-AppointmentService/internal/api/handlers"
	submitBooking "github.com/m04kA/LSM-AppointmentService/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidName        = "имя должно содержать не менее 2 символов"
	msgInvalidPhone       = "некорректный формат номера телефона"
	msgBusinessNotFound   = "бизнес не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgDateInPast         = "дата не может быть в прошлом"
	msgSlotTaken          = "это время только что заняли, выберите другое"
	msgBookingDeclined    = "бронирование было отклонено, попробуйте другое время"
	msgInvalidParams      = "некорректные параметры запроса"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Конфликт за слот - не ошибка сервера: ответ 409 с outcome=conflict
// возвращает клиента к выбору времени
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SubmitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date/time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrInvalidCustomerName):
			h.logger.Warn("POST /bookings - Invalid customer name: business_id=%d", req.BusinessID)
			handlers.RespondBadRequest(w, msgInvalidName)

		case errors.Is(err, submitBooking.ErrInvalidCustomerPhone):
			h.logger.Warn("POST /bookings - Invalid customer phone: business_id=%d", req.BusinessID)
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, submitBooking.ErrBusinessNotFound):
			h.logger.Warn("POST /bookings - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, submitBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: business_id=%d, service_id=%s",
				req.BusinessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, submitBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in past: business_id=%d, date=%s", req.BusinessID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, submitBooking.ErrBookingDeclined):
			h.logger.Warn("POST /bookings - Declined during submission: business_id=%d", req.BusinessID)
			handlers.RespondConflict(w, msgBookingDeclined)

		case errors.Is(err, submitBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("POST /bookings - Failed to submit booking: business_id=%d, error=%v",
				req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	if result.Outcome == submitBooking.OutcomeConflict {
		h.logger.Info("POST /bookings - Slot conflict: booking_id=%d, slot=%s",
			result.BookingID, result.SlotID)
		handlers.RespondJSON(w, http.StatusConflict, response)
		return
	}

	h.logger.Info("POST /bookings - Booking submitted: booking_id=%d, slot=%s, status=%s",
		result.BookingID, result.SlotID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
