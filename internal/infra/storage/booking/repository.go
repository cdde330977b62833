package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	"github.com/m04kA/LSM-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/LSM-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
// Записи только добавляются и меняют статус; слот в хранилище не мутируется,
// поэтому write-write блокировка не нужна (цена - гонка read-then-write,
// разрешаемая в usecase submit_booking)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку на бронирование (append-only insert)
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"business_id",
			"booking_date",
			"start_time",
			"service_id",
			"service_name",
			"duration_minutes",
			"customer_name",
			"customer_phone",
			"original_price",
			"final_price",
			"discount_label",
			"slot_id",
			"status",
		).
		Values(
			booking.BusinessID,
			booking.Date,
			booking.StartTime,
			booking.ServiceID,
			booking.ServiceName,
			booking.DurationMinutes,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.OriginalPrice,
			booking.FinalPrice,
			booking.DiscountLabel,
			booking.SlotID,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Используется conflict poll после записи заявки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	booking, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByBusinessWithFilter получает бронирования бизнеса с фильтрацией
// по дате, статусу и активности
//
// Фильтр доступности дергает этот метод с Date и IncludeInactive=false:
// выборка (business, date, status in pending|confirmed), всегда свежая,
// мимо любых кешей
func (r *Repository) GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().
		Where(squirrel.Eq{"business_id": filter.BusinessID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		activeStatusStrings := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			activeStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings})
	}

	if filter.Date != nil {
		// Для конкретной даты сортируем по времени начала
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	// Внутри транзакции блокируем строки даты (для create с проверкой доступности)
	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBusinessWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Confirm переводит pending-заявку в confirmed
func (r *Repository) Confirm(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, id, query, args)
}

// Cancel отменяет бронирование с указанием причины
// Отмененная запись неизменяема: повторная отмена отклоняется guard-условием
func (r *Repository) Cancel(ctx context.Context, id int64, reason domain.CancelReason) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancel_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, executor, id, query, args)
}

// execTransition выполняет update перехода статуса и различает
// "не найдено" и "уже в терминальном статусе" по нулевому rows affected
func (r *Repository) execTransition(ctx context.Context, executor DBExecutor, id int64, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Guard-условие не прошло: либо записи нет, либо она уже финальна
		existing, err := r.GetByID(ctx, id)
		if err != nil {
			return ErrBookingNotFound
		}
		if existing.IsFinal() {
			return ErrBookingFinal
		}
		return ErrBookingNotFound
	}

	return nil
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"business_id",
		"booking_date",
		"start_time",
		"service_id",
		"service_name",
		"duration_minutes",
		"customer_name",
		"customer_phone",
		"original_price",
		"final_price",
		"discount_label",
		"slot_id",
		"status",
		"cancel_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).From("bookings")
}

func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelReason sql.NullString
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := scan(
		&booking.ID,
		&booking.BusinessID,
		&booking.Date,
		&booking.StartTime,
		&booking.ServiceID,
		&booking.ServiceName,
		&booking.DurationMinutes,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.OriginalPrice,
		&booking.FinalPrice,
		&booking.DiscountLabel,
		&booking.SlotID,
		&booking.Status,
		&cancelReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelReason.Valid {
		reason := domain.CancelReason(cancelReason.String)
		booking.CancelReason = &reason
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
