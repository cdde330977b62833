package profile

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда профиль бизнеса не найден
	ErrBusinessNotFound = errors.New("profile.service: business not found")

	// ErrInvalidSchedule возвращается при нарушении инварианта open < close
	// Ошибка конфигурации должна падать здесь, на границе редактирования,
	// а не маскироваться пустым списком слотов
	ErrInvalidSchedule = errors.New("profile.service: invalid opening hours")

	// ErrInvalidDiscount возвращается при некорректном правиле скидки
	ErrInvalidDiscount = errors.New("profile.service: invalid discount rule")

	// ErrInvalidService возвращается при некорректной услуге
	ErrInvalidService = errors.New("profile.service: invalid service")

	// ErrUnknownServiceRef возвращается, когда правило скидки ссылается
	// на несуществующую услугу
	ErrUnknownServiceRef = errors.New("profile.service: discount references unknown service")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("profile.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("profile.service: internal error")
)
