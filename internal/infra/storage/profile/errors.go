package profile

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль бизнеса не найден
	ErrProfileNotFound = errors.New("profile.repository: business profile not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("profile.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("profile.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("profile.repository: failed to scan row")

	// ErrEncodeDocument возвращается при ошибке сериализации jsonb документа
	ErrEncodeDocument = errors.New("profile.repository: failed to encode document")

	// ErrDecodeDocument возвращается при ошибке десериализации jsonb документа
	ErrDecodeDocument = errors.New("profile.repository: failed to decode document")
)
