package submit_booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Поля клиента проверяются локально, до любого похода в хранилище
func (uc *UseCase) validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	if err := validateCustomerName(req.CustomerName); err != nil {
		return err
	}

	return uc.validateCustomerPhone(req.CustomerPhone)
}

func validateCustomerName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < domain.MinCustomerNameLength {
		return ErrInvalidCustomerName
	}
	return nil
}

func (uc *UseCase) validateCustomerPhone(phone string) error {
	if !uc.phonePattern.MatchString(strings.TrimSpace(phone)) {
		return ErrInvalidCustomerPhone
	}
	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(requestDate, now time.Time) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}
	return nil
}

func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// compilePhonePattern компилирует паттерн телефона из конфигурации,
// с откатом на дефолтный при пустой строке
func compilePhonePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern = domain.DefaultPhonePattern
	}
	return regexp.Compile(pattern)
}
