package get_price_quote

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_price_quote: invalid input data")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("get_price_quote: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в профиле
	ErrServiceNotFound = errors.New("get_price_quote: service not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_price_quote: internal error")
)
