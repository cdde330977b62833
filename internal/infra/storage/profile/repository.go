package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	"github.com/m04kA/LSM-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/LSM-AppointmentService/pkg/psqlbuilder"
)

// Переиспользуем интерфейс исполнителя запросов из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий профилей бизнесов
// Профиль хранится как набор jsonb-документов: часы работы, исключения,
// услуги и правило скидки мутируются профилем целиком, движок их только читает
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает профиль бизнеса
func (r *Repository) GetByID(ctx context.Context, businessID int64) (*domain.BusinessProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"business_id",
		"name",
		"opening_hours",
		"exclusions",
		"services",
		"discount_rule",
		"updated_at",
	).
		From("business_profiles").
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		profile     domain.BusinessProfile
		hoursRaw    []byte
		exclRaw     []byte
		servicesRaw []byte
		discountRaw []byte
		updatedAt   sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&profile.BusinessID,
		&profile.Name,
		&hoursRaw,
		&exclRaw,
		&servicesRaw,
		&discountRaw,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan profile: %v", ErrScanRow, err)
	}

	profile.UpdatedAt = updatedAt.Time

	if err := r.decodeDocuments(&profile, hoursRaw, exclRaw, servicesRaw, discountRaw); err != nil {
		return nil, err
	}

	return &profile, nil
}

// UpdateOpeningHours заменяет расписание работы бизнеса
// Инвариант open < close проверяется в service-слое до вызова
func (r *Repository) UpdateOpeningHours(ctx context.Context, businessID int64, schedule domain.WeekSchedule) error {
	raw, err := json.Marshal(weekScheduleToDoc(schedule))
	if err != nil {
		return fmt.Errorf("%w: UpdateOpeningHours: %v", ErrEncodeDocument, err)
	}
	return r.updateDocument(ctx, businessID, "opening_hours", raw)
}

// UpdateExclusions заменяет правила блокировки дат и времен
func (r *Repository) UpdateExclusions(ctx context.Context, businessID int64, rules domain.ExclusionRules) error {
	raw, err := json.Marshal(exclusionsToDoc(rules))
	if err != nil {
		return fmt.Errorf("%w: UpdateExclusions: %v", ErrEncodeDocument, err)
	}
	return r.updateDocument(ctx, businessID, "exclusions", raw)
}

// UpdateDiscount заменяет правило скидки (nil снимает правило)
func (r *Repository) UpdateDiscount(ctx context.Context, businessID int64, rule *domain.DiscountRule) error {
	var raw []byte
	if rule != nil {
		var err error
		raw, err = json.Marshal(discountToDoc(rule))
		if err != nil {
			return fmt.Errorf("%w: UpdateDiscount: %v", ErrEncodeDocument, err)
		}
	}
	return r.updateDocument(ctx, businessID, "discount_rule", raw)
}

// UpdateServices заменяет список услуг бизнеса
func (r *Repository) UpdateServices(ctx context.Context, businessID int64, services []domain.ServiceOffering) error {
	raw, err := json.Marshal(servicesToDoc(services))
	if err != nil {
		return fmt.Errorf("%w: UpdateServices: %v", ErrEncodeDocument, err)
	}
	return r.updateDocument(ctx, businessID, "services", raw)
}

func (r *Repository) updateDocument(ctx context.Context, businessID int64, column string, raw []byte) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var value interface{}
	if raw != nil {
		value = raw
	}

	query, args, err := psqlbuilder.Update("business_profiles").
		Set(column, value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"business_id": businessID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: updateDocument(%s) - build update query: %v", ErrBuildQuery, column, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: updateDocument(%s) - execute update: %v", ErrExecQuery, column, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: updateDocument(%s) - get rows affected: %v", ErrExecQuery, column, err)
	}

	if rowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *Repository) decodeDocuments(profile *domain.BusinessProfile, hoursRaw, exclRaw, servicesRaw, discountRaw []byte) error {
	if len(hoursRaw) > 0 {
		var doc weekScheduleDoc
		if err := json.Unmarshal(hoursRaw, &doc); err != nil {
			return fmt.Errorf("%w: opening_hours: %v", ErrDecodeDocument, err)
		}
		schedule, err := weekScheduleFromDoc(doc)
		if err != nil {
			return fmt.Errorf("%w: opening_hours: %v", ErrDecodeDocument, err)
		}
		profile.OpeningHours = schedule
	}

	if len(exclRaw) > 0 {
		var doc exclusionsDoc
		if err := json.Unmarshal(exclRaw, &doc); err != nil {
			return fmt.Errorf("%w: exclusions: %v", ErrDecodeDocument, err)
		}
		rules, err := exclusionsFromDoc(doc)
		if err != nil {
			return fmt.Errorf("%w: exclusions: %v", ErrDecodeDocument, err)
		}
		profile.Exclusions = rules
	}

	if len(servicesRaw) > 0 {
		var docs []serviceDoc
		if err := json.Unmarshal(servicesRaw, &docs); err != nil {
			return fmt.Errorf("%w: services: %v", ErrDecodeDocument, err)
		}
		profile.Services = servicesFromDoc(docs)
	}

	if len(discountRaw) > 0 {
		var doc discountDoc
		if err := json.Unmarshal(discountRaw, &doc); err != nil {
			return fmt.Errorf("%w: discount_rule: %v", ErrDecodeDocument, err)
		}
		rule, err := discountFromDoc(&doc)
		if err != nil {
			return fmt.Errorf("%w: discount_rule: %v", ErrDecodeDocument, err)
		}
		profile.Discount = rule
	}

	return nil
}
