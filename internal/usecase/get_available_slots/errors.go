package get_available_slots

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("get_available_slots: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в профиле
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInvalidService возвращается, когда услуга сконфигурирована некорректно
	ErrInvalidService = errors.New("get_available_slots: service has invalid duration")

	// ErrInvalidDate возвращается при некорректной дате (нулевой или в прошлом)
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
