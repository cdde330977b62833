package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	profileService "github.com/m04kA/LSM-AppointmentService/internal/service/profile"
	"github.com/m04kA/LSM-AppointmentService/pkg/types"
)

// UseCase use case для получения доступных слотов бронирования
type UseCase struct {
	bookingRepo   BookingRepository
	profileReader ProfileReader
	stepMinutes   int
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	profileReader ProfileReader,
	stepMinutes int,
	logger Logger,
) *UseCase {
	if stepMinutes <= 0 {
		stepMinutes = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		profileReader: profileReader,
		stepMinutes:   stepMinutes,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, service=%s, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем профиль бизнеса (через кеш - это read path)
	profile, err := uc.profileReader.GetProfile(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, profileService.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get profile id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	// 4. Находим услугу - её длительность определяет интервал кандидата
	service, ok := profile.ServiceByID(req.ServiceID)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: service id=%s not found in business id=%d", req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}
	if service.DurationMinutes <= 0 {
		uc.logger.Warn("GetAvailableSlots: service id=%s has invalid duration %d", req.ServiceID, service.DurationMinutes)
		return nil, ErrInvalidService
	}

	resp := &Response{
		BusinessID:      req.BusinessID,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		Date:            req.Date,
		DurationMinutes: service.DurationMinutes,
		Slots:           []types.TimeString{},
		Unavailable:     []UnavailableSlot{},
	}

	// 5. Расписание на день недели даты; закрытый или отсутствующий день - пустой ответ
	day := profile.OpeningHours.ForDate(req.Date)
	if day.Closed {
		uc.logger.Info("GetAvailableSlots: business id=%d is closed on %s",
			req.BusinessID, req.Date.Format(domain.DateFormat))
		return resp, nil
	}

	// 6. Генерируем кандидатов
	candidates := generateCandidates(day, service.DurationMinutes, uc.stepMinutes)

	// 7. Получаем существующие бронирования на дату - всегда свежие из хранилища
	filter := domain.BusinessBookingsFilter{
		BusinessID:      req.BusinessID,
		Date:            &req.Date,
		IncludeInactive: false, // Только pending и confirmed занимают слот
	}

	bookings, err := uc.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Фильтруем кандидатов
	resp.Slots, resp.Unavailable = filterCandidates(
		candidates,
		service.DurationMinutes,
		req.Date,
		now,
		profile.Exclusions,
		bookings,
	)

	uc.logger.Info("GetAvailableSlots: %d available, %d filtered for business=%d, date=%s",
		len(resp.Slots), len(resp.Unavailable), req.BusinessID, req.Date.Format(domain.DateFormat))

	return resp, nil
}
