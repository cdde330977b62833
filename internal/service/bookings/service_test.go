package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	bookingRepo "github.com/m04kA/LSM-AppointmentService/internal/infra/storage/booking"
	"github.com/m04kA/LSM-AppointmentService/pkg/ptr"
)

type fakeRepo struct {
	bookings map[int64]*domain.Booking
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range r.bookings {
		if b.BusinessID == filter.BusinessID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *fakeRepo) Confirm(_ context.Context, id int64) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = domain.StatusConfirmed
	return nil
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, reason domain.CancelReason) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status == domain.StatusCancelled {
		return bookingRepo.ErrBookingFinal
	}
	b.Status = domain.StatusCancelled
	b.CancelReason = &reason
	b.CancelledAt = ptr.Ptr(time.Now())
	return nil
}

// noTxManager выполняет callback без транзакции
type noTxManager struct{}

func (noTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(bookings ...*domain.Booking) (*Service, *fakeRepo) {
	repo := &fakeRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return NewService(repo, noTxManager{}, nopLogger{}), repo
}

func pending(id int64) *domain.Booking {
	return &domain.Booking{ID: id, BusinessID: 1, Status: domain.StatusPending}
}

func confirmed(id int64) *domain.Booking {
	return &domain.Booking{ID: id, BusinessID: 1, Status: domain.StatusConfirmed}
}

func cancelledWith(id int64, reason domain.CancelReason) *domain.Booking {
	return &domain.Booking{
		ID:           id,
		BusinessID:   1,
		Status:       domain.StatusCancelled,
		CancelReason: &reason,
		CancelledAt:  ptr.Ptr(time.Now()),
	}
}

func TestService_Confirm(t *testing.T) {
	t.Run("pending booking is confirmed", func(t *testing.T) {
		svc, repo := newTestService(pending(1))

		require.NoError(t, svc.Confirm(context.Background(), 1))
		assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	})

	t.Run("already confirmed is rejected", func(t *testing.T) {
		svc, _ := newTestService(confirmed(1))

		err := svc.Confirm(context.Background(), 1)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancelled booking is immutable", func(t *testing.T) {
		svc, _ := newTestService(cancelledWith(1, domain.ReasonOther))

		err := svc.Confirm(context.Background(), 1)
		assert.ErrorIs(t, err, ErrBookingFinal)
	})

	t.Run("missing booking", func(t *testing.T) {
		svc, _ := newTestService()

		err := svc.Confirm(context.Background(), 42)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_Decline(t *testing.T) {
	svc, repo := newTestService(pending(1), confirmed(2))

	require.NoError(t, svc.Decline(context.Background(), 1))
	assert.Equal(t, domain.ReasonDeclined, *repo.bookings[1].CancelReason)

	// Подтвержденное бронирование бизнес тоже может отклонить
	require.NoError(t, svc.Decline(context.Background(), 2))
	assert.Equal(t, domain.ReasonDeclined, *repo.bookings[2].CancelReason)
}

func TestService_Cancel(t *testing.T) {
	svc, repo := newTestService(pending(1))

	require.NoError(t, svc.Cancel(context.Background(), 1))
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	assert.Equal(t, domain.ReasonOther, *repo.bookings[1].CancelReason)

	err := svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBookingFinal, "cancelled booking must stay immutable")
}

func TestService_MarkSlotTaken(t *testing.T) {
	t.Run("pending loser is flagged", func(t *testing.T) {
		svc, repo := newTestService(pending(1))

		require.NoError(t, svc.MarkSlotTaken(context.Background(), 1))
		assert.True(t, repo.bookings[1].IsConflictLoser())
	})

	t.Run("idempotent for an already flagged booking", func(t *testing.T) {
		svc, _ := newTestService(cancelledWith(1, domain.ReasonSlotTaken))

		assert.NoError(t, svc.MarkSlotTaken(context.Background(), 1))
	})

	t.Run("confirmed booking cannot lose its slot", func(t *testing.T) {
		svc, _ := newTestService(confirmed(1))

		err := svc.MarkSlotTaken(context.Background(), 1)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("cancelled for another reason is final", func(t *testing.T) {
		svc, _ := newTestService(cancelledWith(1, domain.ReasonDeclined))

		err := svc.MarkSlotTaken(context.Background(), 1)
		assert.ErrorIs(t, err, ErrBookingFinal)
	})
}

func TestService_GetByID(t *testing.T) {
	svc, _ := newTestService(pending(1))

	booking, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), booking.ID)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetBusinessBookings(t *testing.T) {
	svc, _ := newTestService(pending(1), confirmed(2))

	list, err := svc.GetBusinessBookings(context.Background(), domain.BusinessBookingsFilter{BusinessID: 1})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.GetBusinessBookings(context.Background(), domain.BusinessBookingsFilter{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
