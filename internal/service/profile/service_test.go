package profile

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	"github.com/m04kA/LSM-AppointmentService/internal/infra/cache"
	profileRepo "github.com/m04kA/LSM-AppointmentService/internal/infra/storage/profile"
)

type fakeRepo struct {
	profiles map[int64]*domain.BusinessProfile
	getCalls int
}

func (r *fakeRepo) GetByID(_ context.Context, businessID int64) (*domain.BusinessProfile, error) {
	r.getCalls++
	p, ok := r.profiles[businessID]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	return p, nil
}

func (r *fakeRepo) UpdateOpeningHours(_ context.Context, businessID int64, schedule domain.WeekSchedule) error {
	p, ok := r.profiles[businessID]
	if !ok {
		return profileRepo.ErrProfileNotFound
	}
	p.OpeningHours = schedule
	return nil
}

func (r *fakeRepo) UpdateExclusions(_ context.Context, businessID int64, rules domain.ExclusionRules) error {
	p, ok := r.profiles[businessID]
	if !ok {
		return profileRepo.ErrProfileNotFound
	}
	p.Exclusions = rules
	return nil
}

func (r *fakeRepo) UpdateDiscount(_ context.Context, businessID int64, rule *domain.DiscountRule) error {
	p, ok := r.profiles[businessID]
	if !ok {
		return profileRepo.ErrProfileNotFound
	}
	p.Discount = rule
	return nil
}

func (r *fakeRepo) UpdateServices(_ context.Context, businessID int64, services []domain.ServiceOffering) error {
	p, ok := r.profiles[businessID]
	if !ok {
		return profileRepo.ErrProfileNotFound
	}
	p.Services = services
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(profiles ...*domain.BusinessProfile) (*Service, *fakeRepo) {
	repo := &fakeRepo{profiles: make(map[int64]*domain.BusinessProfile)}
	for _, p := range profiles {
		repo.profiles[p.BusinessID] = p
	}
	return NewService(repo, cache.New(time.Minute), nopLogger{}), repo
}

func TestService_GetProfile_UsesCache(t *testing.T) {
	svc, repo := newTestService(&domain.BusinessProfile{BusinessID: 1, Name: "Barbershop"})

	first, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Barbershop", first.Name)

	_, err = svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getCalls, "second read must be served from cache")
}

func TestService_GetProfile_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetProfile(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestService_UpdateOpeningHours_RejectsInvertedHours(t *testing.T) {
	svc, _ := newTestService(&domain.BusinessProfile{BusinessID: 1})

	err := svc.UpdateOpeningHours(context.Background(), 1, domain.WeekSchedule{
		time.Monday: {Open: "18:00", Close: "09:00"},
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestService_UpdateOpeningHours_InvalidatesCache(t *testing.T) {
	svc, repo := newTestService(&domain.BusinessProfile{BusinessID: 1})

	_, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)

	err = svc.UpdateOpeningHours(context.Background(), 1, domain.WeekSchedule{
		time.Monday: {Open: "09:00", Close: "17:00"},
	})
	require.NoError(t, err)

	updated, err := svc.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getCalls, "read after write must bypass the stale cache entry")
	assert.False(t, updated.OpeningHours.ForDate(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)).Closed)
}

func TestService_UpdateServices_AssignsStableIDs(t *testing.T) {
	svc, repo := newTestService(&domain.BusinessProfile{BusinessID: 1})

	services := []domain.ServiceOffering{
		{Name: "Haircut", Price: decimal.NewFromInt(500), DurationMinutes: 60},
		{ID: "existing-id", Name: "Manicure", Price: decimal.NewFromInt(300), DurationMinutes: 45},
	}

	err := svc.UpdateServices(context.Background(), 1, services)
	require.NoError(t, err)

	stored := repo.profiles[1].Services
	assert.NotEmpty(t, stored[0].ID, "new service must get a generated id")
	assert.Equal(t, "existing-id", stored[1].ID, "existing id must be preserved")
}

func TestService_UpdateDiscount_RejectsUnknownServiceRef(t *testing.T) {
	svc, _ := newTestService(&domain.BusinessProfile{
		BusinessID: 1,
		Services: []domain.ServiceOffering{
			{ID: "svc-1", Name: "Haircut", Price: decimal.NewFromInt(500), DurationMinutes: 60},
		},
	})

	rule := &domain.DiscountRule{
		Enabled:    true,
		Type:       domain.DiscountPercent,
		Value:      decimal.NewFromInt(10),
		AppliesTo:  domain.AppliesToSpecific,
		ServiceIDs: []string{"ghost"},
	}

	err := svc.UpdateDiscount(context.Background(), 1, rule)
	assert.ErrorIs(t, err, ErrUnknownServiceRef)
}

func TestService_UpdateDiscount_ValidRule(t *testing.T) {
	svc, repo := newTestService(&domain.BusinessProfile{
		BusinessID: 1,
		Services: []domain.ServiceOffering{
			{ID: "svc-1", Name: "Haircut", Price: decimal.NewFromInt(500), DurationMinutes: 60},
		},
	})

	rule := &domain.DiscountRule{
		Enabled:    true,
		Type:       domain.DiscountPercent,
		Value:      decimal.NewFromInt(20),
		AppliesTo:  domain.AppliesToSpecific,
		ServiceIDs: []string{"svc-1"},
	}

	require.NoError(t, svc.UpdateDiscount(context.Background(), 1, rule))
	assert.NotNil(t, repo.profiles[1].Discount)
}
