package get_price_quote

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	profileService "github.com/m04kA/LSM-AppointmentService/internal/service/profile"
)

type fakeProfileReader struct {
	profile *domain.BusinessProfile
	err     error
}

func (r *fakeProfileReader) GetProfile(_ context.Context, _ int64) (*domain.BusinessProfile, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.profile, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_AppliesActiveDiscount(t *testing.T) {
	profile := &domain.BusinessProfile{
		BusinessID: 1,
		Services: []domain.ServiceOffering{
			{ID: "svc-1", Name: "Haircut", Price: decimal.NewFromInt(500), DurationMinutes: 60},
		},
		Discount: &domain.DiscountRule{
			Enabled:   true,
			Label:     "Opening week",
			Type:      domain.DiscountPercent,
			Value:     decimal.NewFromInt(20),
			AppliesTo: domain.AppliesToAll,
			ShowBadge: true,
		},
	}

	uc := NewUseCase(&fakeProfileReader{profile: profile}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: "svc-1"})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(500).Equal(resp.OriginalPrice))
	assert.True(t, decimal.NewFromInt(400).Equal(resp.FinalPrice))
	require.NotNil(t, resp.BadgeLabel)
	assert.Equal(t, "Opening week", *resp.BadgeLabel)
}

func TestExecute_NoDiscount(t *testing.T) {
	profile := &domain.BusinessProfile{
		BusinessID: 1,
		Services: []domain.ServiceOffering{
			{ID: "svc-1", Name: "Haircut", Price: decimal.NewFromInt(500), DurationMinutes: 60},
		},
	}

	uc := NewUseCase(&fakeProfileReader{profile: profile}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: "svc-1"})
	require.NoError(t, err)

	assert.True(t, resp.OriginalPrice.Equal(resp.FinalPrice))
	assert.Nil(t, resp.BadgeLabel)
}

func TestExecute_Errors(t *testing.T) {
	t.Run("business not found", func(t *testing.T) {
		uc := NewUseCase(&fakeProfileReader{err: profileService.ErrBusinessNotFound}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: "svc-1"})
		assert.ErrorIs(t, err, ErrBusinessNotFound)
	})

	t.Run("service not found", func(t *testing.T) {
		uc := NewUseCase(&fakeProfileReader{profile: &domain.BusinessProfile{BusinessID: 1}}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, ServiceID: "ghost"})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("invalid input", func(t *testing.T) {
		uc := NewUseCase(&fakeProfileReader{}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
