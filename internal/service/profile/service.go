package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	profileRepo "github.com/m04kA/LSM-AppointmentService/internal/infra/storage/profile"
)

// Service сервис профилей бизнесов
// Чтения идут через кеш с коротким TTL; каждая запись инвалидирует кеш
type Service struct {
	repo   ProfileRepository
	cache  ProfileCache
	logger Logger
}

// NewService создает новый экземпляр сервиса профилей
func NewService(repo ProfileRepository, cache ProfileCache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetProfile возвращает профиль бизнеса, по возможности из кеша
func (s *Service) GetProfile(ctx context.Context, businessID int64) (*domain.BusinessProfile, error) {
	if cached, ok := s.cache.Get(businessID); ok {
		return cached, nil
	}

	p, err := s.repo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			s.logger.Warn("GetProfile: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("GetProfile: repository error for business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetProfile - repository error: %v", ErrInternal, err)
	}

	s.cache.Set(businessID, p)
	return p, nil
}

// UpdateOpeningHours заменяет расписание работы бизнеса
// Инвариант open < close проверяется здесь, на границе редактирования:
// перепутанная пара времен - ошибка конфигурации, а не "все занято"
func (s *Service) UpdateOpeningHours(ctx context.Context, businessID int64, schedule domain.WeekSchedule) error {
	s.logger.Info("UpdateOpeningHours: business=%d", businessID)

	if err := schedule.Validate(); err != nil {
		s.logger.Warn("UpdateOpeningHours: validation failed for business=%d: %v", businessID, err)
		return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	if err := s.repo.UpdateOpeningHours(ctx, businessID, schedule); err != nil {
		return s.mapRepoError("UpdateOpeningHours", businessID, err)
	}

	s.cache.Invalidate(businessID)
	s.logger.Info("UpdateOpeningHours: updated business=%d", businessID)
	return nil
}

// UpdateExclusions заменяет правила блокировки дат и времен
func (s *Service) UpdateExclusions(ctx context.Context, businessID int64, rules domain.ExclusionRules) error {
	s.logger.Info("UpdateExclusions: business=%d, dates=%d, times=%d",
		businessID, len(rules.ExcludedDates), len(rules.ExcludedTimes))

	if err := validateExclusions(rules); err != nil {
		s.logger.Warn("UpdateExclusions: validation failed for business=%d: %v", businessID, err)
		return err
	}

	if err := s.repo.UpdateExclusions(ctx, businessID, rules); err != nil {
		return s.mapRepoError("UpdateExclusions", businessID, err)
	}

	s.cache.Invalidate(businessID)
	return nil
}

// UpdateDiscount заменяет правило скидки бизнеса (nil снимает правило)
// Правило со ссылками на несуществующие услуги отклоняется
func (s *Service) UpdateDiscount(ctx context.Context, businessID int64, rule *domain.DiscountRule) error {
	s.logger.Info("UpdateDiscount: business=%d", businessID)

	if rule != nil {
		if err := s.validateDiscount(ctx, businessID, rule); err != nil {
			s.logger.Warn("UpdateDiscount: validation failed for business=%d: %v", businessID, err)
			return err
		}
	}

	if err := s.repo.UpdateDiscount(ctx, businessID, rule); err != nil {
		return s.mapRepoError("UpdateDiscount", businessID, err)
	}

	s.cache.Invalidate(businessID)
	return nil
}

// UpdateServices заменяет список услуг бизнеса
// Услуги без идентификатора получают стабильный uuid: составной ключ
// имя+цена неоднозначен, если две услуги совпадают
func (s *Service) UpdateServices(ctx context.Context, businessID int64, services []domain.ServiceOffering) error {
	s.logger.Info("UpdateServices: business=%d, services=%d", businessID, len(services))

	for i := range services {
		if err := validateService(&services[i]); err != nil {
			s.logger.Warn("UpdateServices: validation failed for business=%d: %v", businessID, err)
			return err
		}
		if services[i].ID == "" {
			services[i].ID = uuid.NewString()
		}
	}

	if err := s.repo.UpdateServices(ctx, businessID, services); err != nil {
		return s.mapRepoError("UpdateServices", businessID, err)
	}

	s.cache.Invalidate(businessID)
	return nil
}

func (s *Service) mapRepoError(op string, businessID int64, err error) error {
	if errors.Is(err, profileRepo.ErrProfileNotFound) {
		s.logger.Warn("%s: business id=%d not found", op, businessID)
		return ErrBusinessNotFound
	}
	s.logger.Error("%s: repository error for business id=%d: %v", op, businessID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) validateDiscount(ctx context.Context, businessID int64, rule *domain.DiscountRule) error {
	if rule.Type != domain.DiscountPercent && rule.Type != domain.DiscountAmount {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidDiscount, rule.Type)
	}
	if rule.AppliesTo != domain.AppliesToAll && rule.AppliesTo != domain.AppliesToSpecific {
		return fmt.Errorf("%w: unknown appliesTo %q", ErrInvalidDiscount, rule.AppliesTo)
	}
	if rule.Value.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: value must not be negative", ErrInvalidDiscount)
	}
	if rule.Type == domain.DiscountPercent && rule.Value.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: percent value must not exceed 100", ErrInvalidDiscount)
	}
	if rule.StartDate != nil && rule.EndDate != nil && rule.EndDate.Before(*rule.StartDate) {
		return fmt.Errorf("%w: endDate before startDate", ErrInvalidDiscount)
	}

	if rule.AppliesTo == domain.AppliesToSpecific {
		current, err := s.repo.GetByID(ctx, businessID)
		if err != nil {
			if errors.Is(err, profileRepo.ErrProfileNotFound) {
				return ErrBusinessNotFound
			}
			return fmt.Errorf("%w: validateDiscount - repository error: %v", ErrInternal, err)
		}
		for _, id := range rule.ServiceIDs {
			if _, ok := current.ServiceByID(id); !ok {
				return fmt.Errorf("%w: service id=%s", ErrUnknownServiceRef, id)
			}
		}
	}

	return nil
}

func validateExclusions(rules domain.ExclusionRules) error {
	for _, d := range rules.ExcludedDates {
		if _, err := time.Parse(domain.DateFormat, d); err != nil {
			return fmt.Errorf("%w: excluded date %q", ErrInvalidInput, d)
		}
	}
	for d, blocked := range rules.ExcludedTimes {
		if _, err := time.Parse(domain.DateFormat, d); err != nil {
			return fmt.Errorf("%w: excluded times date %q", ErrInvalidInput, d)
		}
		for _, t := range blocked {
			if err := t.Validate(); err != nil {
				return fmt.Errorf("%w: excluded time for %s: %v", ErrInvalidInput, d, err)
			}
		}
	}
	return nil
}

func validateService(svc *domain.ServiceOffering) error {
	if svc.Name == "" || len(svc.Name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name length must be in [1, %d]", ErrInvalidService, domain.MaxServiceNameLength)
	}
	if svc.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidService)
	}
	if svc.DurationMinutes < domain.MinServiceDuration || svc.DurationMinutes > domain.MaxServiceDuration {
		return fmt.Errorf("%w: duration must be in [%d, %d] minutes",
			ErrInvalidService, domain.MinServiceDuration, domain.MaxServiceDuration)
	}
	return nil
}
