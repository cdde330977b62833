package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	"github.com/m04kA/LSM-AppointmentService/internal/service/pricing"
	profileService "github.com/m04kA/LSM-AppointmentService/internal/service/profile"
)

// UseCase use case создания бронирования
//
// Хранилище не дает атомарного примитива "занять слот": два клиента могут
// одновременно пройти фильтр доступности и оба успешно записаться. Вместо
// блокировки протокол пишет pending-запись и коротким ограниченным опросом
// ждет, не пометил ли внешний детектор конфликтов запись как проигравшую
// (cancelled/slot_taken). Истекшее без сигнала окно - оптимистичный успех
type UseCase struct {
	bookingRepo   BookingRepository
	profileReader ProfileReader

	pollAttempts int
	pollInterval time.Duration
	phonePattern *regexp.Regexp

	timeProvider TimeProvider
	sleeper      Sleeper
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// Возвращает ошибку при некомпилируемом паттерне телефона
func NewUseCase(
	bookingRepo BookingRepository,
	profileReader ProfileReader,
	pollAttempts int,
	pollInterval time.Duration,
	phonePattern string,
	logger Logger,
) (*UseCase, error) {
	compiled, err := compilePhonePattern(phonePattern)
	if err != nil {
		return nil, fmt.Errorf("invalid phone pattern %q: %w", phonePattern, err)
	}

	if pollAttempts <= 0 {
		pollAttempts = domain.DefaultConflictPollAttempts
	}
	if pollInterval <= 0 {
		pollInterval = time.Duration(domain.DefaultConflictPollIntervalMS) * time.Millisecond
	}

	return &UseCase{
		bookingRepo:   bookingRepo,
		profileReader: profileReader,
		pollAttempts:  pollAttempts,
		pollInterval:  pollInterval,
		phonePattern:  compiled,
		timeProvider:  &RealTimeProvider{},
		sleeper:       &RealSleeper{},
		logger:        logger,
	}, nil
}

// Execute выполняет протокол отправки бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitBooking: business=%d, service=%s, date=%s, time=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Локальная валидация - невалидный ввод не тратит поход в хранилище
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("SubmitBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("SubmitBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Профиль и услуга - снапшот цены считается на текущую дату
	profile, err := uc.profileReader.GetProfile(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, profileService.ErrBusinessNotFound) {
			uc.logger.Warn("SubmitBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("SubmitBooking: failed to get profile id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	service, ok := profile.ServiceByID(req.ServiceID)
	if !ok {
		uc.logger.Warn("SubmitBooking: service id=%s not found in business id=%d", req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	quote := pricing.Resolve(service.Price, service.ID, profile.Discount, now)

	// 3. Формируем попытку: снапшот услуги и цены авторитетен навсегда,
	// последующие правки правила скидки записанную цену не меняют
	attempt := &domain.Booking{
		BusinessID:      req.BusinessID,
		Date:            req.Date,
		StartTime:       req.StartTime,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		DurationMinutes: service.DurationMinutes,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		OriginalPrice:   quote.Original,
		FinalPrice:      quote.Final,
		DiscountLabel:   quote.BadgeLabel,
		SlotID:          domain.NewSlotID(req.Date, req.StartTime),
		Status:          domain.StatusPending,
	}

	// 4. Запись pending - отказ хранилища здесь фатален для попытки,
	// частично ничего не сохраняется
	created, err := uc.bookingRepo.Create(ctx, attempt)
	if err != nil {
		uc.logger.Error("SubmitBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("SubmitBooking: created booking id=%d, slot=%s, polling for conflicts",
		created.ID, created.SlotID)

	// 5. Ограниченный опрос конфликтов
	final, outcome, err := uc.pollForConflict(ctx, created)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("SubmitBooking: booking id=%d resolved with outcome=%s, status=%s",
		final.ID, outcome, final.Status)

	return buildResponse(final, outcome), nil
}

// pollForConflict перечитывает запись до pollAttempts раз с паузой pollInterval
//
// cancelled/slot_taken - проигрыш гонки, outcome=conflict.
// Любой другой уход из pending - ранний успех, опрос останавливается.
// Ошибки чтения терпимы: запись существует в pending, сверка остается
// за внешним процессом (успех-с-неопределенностью).
// Истекшее окно без сигнала - оптимистичный успех
func (uc *UseCase) pollForConflict(ctx context.Context, created *domain.Booking) (*domain.Booking, Outcome, error) {
	latest := created

	for attempt := 1; attempt <= uc.pollAttempts; attempt++ {
		if err := uc.sleeper.Sleep(ctx, uc.pollInterval); err != nil {
			// Пользователь ушел - опрос останавливается, pending запись
			// остается до разрешения бизнесом или внешним процессом
			uc.logger.Warn("SubmitBooking: poll cancelled for booking id=%d after %d attempts: %v",
				created.ID, attempt-1, err)
			return nil, "", err
		}

		fresh, err := uc.bookingRepo.GetByID(ctx, created.ID)
		if err != nil {
			uc.logger.Warn("SubmitBooking: poll read %d/%d failed for booking id=%d: %v",
				attempt, uc.pollAttempts, created.ID, err)
			continue
		}
		latest = fresh

		if fresh.IsConflictLoser() {
			uc.logger.Info("SubmitBooking: booking id=%d lost the slot race on poll %d/%d",
				created.ID, attempt, uc.pollAttempts)
			return fresh, OutcomeConflict, nil
		}

		if fresh.Status == domain.StatusCancelled {
			// Отмена не из-за гонки (бизнес отклонил во время окна)
			uc.logger.Warn("SubmitBooking: booking id=%d was cancelled during poll", created.ID)
			return nil, "", ErrBookingDeclined
		}

		if fresh.Status != domain.StatusPending {
			return fresh, OutcomeSuccess, nil
		}
	}

	return latest, OutcomeSuccess, nil
}

func buildResponse(booking *domain.Booking, outcome Outcome) *Response {
	return &Response{
		Outcome:         outcome,
		BookingID:       booking.ID,
		SlotID:          booking.SlotID,
		Status:          booking.Status,
		ServiceName:     booking.ServiceName,
		DurationMinutes: booking.DurationMinutes,
		OriginalPrice:   booking.OriginalPrice,
		FinalPrice:      booking.FinalPrice,
		DiscountLabel:   booking.DiscountLabel,
	}
}
