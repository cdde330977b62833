package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/LSM-AppointmentService/internal/infra/storage/booking"
)

// Service сервис жизненного цикла бронирований
// Решения о допустимости перехода принимает доменная модель; перечитывание
// и update идут в одной транзакции, чтобы не потерять конкурентный переход
type Service struct {
	repo      BookingRepository
	txManager TxManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(repo BookingRepository, txManager TxManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetByID возвращает бронирование по идентификатору
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError("GetByID", id, err)
	}

	return booking, nil
}

// GetBusinessBookings возвращает бронирования бизнеса по фильтру
func (s *Service) GetBusinessBookings(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	if filter.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	list, err := s.repo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", filter.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	return list, nil
}

// Confirm переводит бронирование pending -> confirmed
func (s *Service) Confirm(ctx context.Context, id int64) error {
	s.logger.Info("Confirm: booking=%d", id)

	return s.transition(ctx, id, func(ctx context.Context, booking *domain.Booking) error {
		if booking.IsFinal() {
			return ErrBookingFinal
		}
		if !booking.CanBeConfirmed() {
			return fmt.Errorf("%w: cannot confirm booking in status %s", ErrInvalidTransition, booking.Status)
		}
		return s.repo.Confirm(ctx, id)
	})
}

// Decline отклоняет бронирование со стороны бизнеса
func (s *Service) Decline(ctx context.Context, id int64) error {
	s.logger.Info("Decline: booking=%d", id)

	return s.transition(ctx, id, func(ctx context.Context, booking *domain.Booking) error {
		if booking.IsFinal() {
			return ErrBookingFinal
		}
		if !booking.CanBeCancelled() {
			return fmt.Errorf("%w: cannot decline booking in status %s", ErrInvalidTransition, booking.Status)
		}
		return s.repo.Cancel(ctx, id, domain.ReasonDeclined)
	})
}

// Cancel отменяет бронирование по инициативе клиента или бизнеса
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: booking=%d", id)

	return s.transition(ctx, id, func(ctx context.Context, booking *domain.Booking) error {
		if booking.IsFinal() {
			return ErrBookingFinal
		}
		if !booking.CanBeCancelled() {
			return fmt.Errorf("%w: cannot cancel booking in status %s", ErrInvalidTransition, booking.Status)
		}
		return s.repo.Cancel(ctx, id, domain.ReasonOther)
	})
}

// MarkSlotTaken помечает pending-заявку проигравшей гонку за слот
// Это ручка внешнего детектора конфликтов: опрос в протоколе отправки
// замечает именно эту пометку. Повторная пометка уже проигравшей записи
// идемпотентна; подтвержденная запись пометке не подлежит
func (s *Service) MarkSlotTaken(ctx context.Context, id int64) error {
	s.logger.Info("MarkSlotTaken: booking=%d", id)

	return s.transition(ctx, id, func(ctx context.Context, booking *domain.Booking) error {
		if booking.IsConflictLoser() {
			// Детектор мог сработать дважды - это не ошибка
			return nil
		}
		if booking.IsFinal() {
			return ErrBookingFinal
		}
		if booking.Status != domain.StatusPending {
			return fmt.Errorf("%w: cannot mark booking in status %s as slot_taken", ErrInvalidTransition, booking.Status)
		}
		return s.repo.Cancel(ctx, id, domain.ReasonSlotTaken)
	})
}

// transition перечитывает запись и применяет переход в одной транзакции
func (s *Service) transition(ctx context.Context, id int64, apply func(ctx context.Context, booking *domain.Booking) error) error {
	if id <= 0 {
		return fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return s.mapRepoError("transition", id, err)
		}
		return apply(ctx, booking)
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrBookingFinal),
			errors.Is(err, ErrInvalidTransition),
			errors.Is(err, ErrInvalidInput):
			s.logger.Warn("transition: booking=%d rejected: %v", id, err)
			return err
		case errors.Is(err, bookingRepo.ErrBookingFinal):
			return ErrBookingFinal
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return ErrBookingNotFound
		default:
			s.logger.Error("transition: booking=%d failed: %v", id, err)
			return fmt.Errorf("%w: transition failed: %v", ErrInternal, err)
		}
	}

	return nil
}

func (s *Service) mapRepoError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return ErrBookingNotFound
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
