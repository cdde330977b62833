package submit_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_booking: invalid input data")

	// ErrInvalidCustomerName возвращается при слишком коротком имени клиента
	ErrInvalidCustomerName = errors.New("submit_booking: customer name must be at least 2 characters")

	// ErrInvalidCustomerPhone возвращается, когда телефон не соответствует паттерну
	ErrInvalidCustomerPhone = errors.New("submit_booking: customer phone does not match the expected format")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("submit_booking: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в профиле
	ErrServiceNotFound = errors.New("submit_booking: service not found")

	// ErrInvalidDate возвращается при некорректной дате (нулевой или в прошлом)
	ErrInvalidDate = errors.New("submit_booking: invalid date")

	// ErrBookingDeclined возвращается, когда запись отменили в окне опроса
	// по причине, отличной от гонки за слот
	ErrBookingDeclined = errors.New("submit_booking: booking was cancelled during submission")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)
