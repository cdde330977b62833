package submit_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	profileService "github.com/m04kA/LSM-AppointmentService/internal/service/profile"
	"github.com/m04kA/LSM-AppointmentService/pkg/ptr"
)

// fakeBookingRepo отдает на каждое чтение следующий снимок из reads,
// имитируя внешний детектор, меняющий запись между опросами
type fakeBookingRepo struct {
	created   *domain.Booking
	createErr error

	reads    []readResult
	getCalls int
}

type readResult struct {
	booking *domain.Booking
	err     error
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	stored := *booking
	stored.ID = 101
	r.created = &stored
	return &stored, nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	idx := r.getCalls
	r.getCalls++
	if idx >= len(r.reads) {
		// Дальше запись не меняется
		if len(r.reads) > 0 {
			last := r.reads[len(r.reads)-1]
			return last.booking, last.err
		}
		return r.created, nil
	}
	return r.reads[idx].booking, r.reads[idx].err
}

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

type instantSleeper struct {
	sleeps int
	err    error
}

func (s *instantSleeper) Sleep(_ context.Context, _ time.Duration) error {
	s.sleeps++
	return s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testProfile() *domain.BusinessProfile {
	return &domain.BusinessProfile{
		BusinessID: 1,
		Name:       "Barbershop",
		OpeningHours: domain.WeekSchedule{
			time.Monday: {Open: "09:00", Close: "17:00"},
		},
		Services: []domain.ServiceOffering{
			{ID: "svc-1", Name: "Haircut", Price: decimal.NewFromInt(500), DurationMinutes: 60},
		},
	}
}

func validRequest() *Request {
	return &Request{
		BusinessID:    1,
		ServiceID:     "svc-1",
		Date:          time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:30",
		CustomerName:  "Иван",
		CustomerPhone: "+79161234567",
	}
}

func newTestUseCase(t *testing.T, repo *fakeBookingRepo, reader *fakeProfileReader, sleeper Sleeper) *UseCase {
	t.Helper()
	uc, err := NewUseCase(repo, reader, 6, 350*time.Millisecond, "", nopLogger{})
	require.NoError(t, err)
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	uc.sleeper = sleeper
	return uc
}

func cancelled(b domain.Booking, reason domain.CancelReason) *domain.Booking {
	b.Status = domain.StatusCancelled
	b.CancelReason = &reason
	b.CancelledAt = ptr.Ptr(time.Now())
	return &b
}

func TestExecute_OptimisticSuccess(t *testing.T) {
	repo := &fakeBookingRepo{}
	sleeper := &instantSleeper{}
	uc := newTestUseCase(t, repo, &fakeProfileReader{profile: testProfile()}, sleeper)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, resp.Outcome)
	assert.Equal(t, int64(101), resp.BookingID)
	assert.Equal(t, "2024-06-10_10-30", resp.SlotID)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, 6, sleeper.sleeps, "poll must use the full window before optimistic acceptance")
	assert.Equal(t, 6, repo.getCalls)
}

func TestExecute_PersistsServiceAndPriceSnapshot(t *testing.T) {
	profile := testProfile()
	profile.Discount = &domain.DiscountRule{
		Enabled:   true,
		Label:     "Summer -20%",
		Type:      domain.DiscountPercent,
		Value:     decimal.NewFromInt(20),
		AppliesTo: domain.AppliesToAll,
		ShowBadge: true,
	}
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo, &fakeProfileReader{profile: profile}, &instantSleeper{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(500).Equal(resp.OriginalPrice))
	assert.True(t, decimal.NewFromInt(400).Equal(resp.FinalPrice))
	require.NotNil(t, resp.DiscountLabel)
	assert.Equal(t, "Summer -20%", *resp.DiscountLabel)

	require.NotNil(t, repo.created)
	assert.Equal(t, "Haircut", repo.created.ServiceName)
	assert.Equal(t, 60, repo.created.DurationMinutes)
	assert.True(t, decimal.NewFromInt(400).Equal(repo.created.FinalPrice))
}

func TestExecute_ConflictDetectedDuringPoll(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo, &fakeProfileReader{profile: testProfile()}, &instantSleeper{})

	// Два первых чтения видят pending, третье - проигрыш гонки
	pending := domain.Booking{ID: 101, SlotID: "2024-06-10_10-30", Status: domain.StatusPending}
	repo.reads = []readResult{
		{booking: &pending},
		{booking: &pending},
		{booking: cancelled(pending, domain.ReasonSlotTaken)},
	}

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, OutcomeConflict, resp.Outcome)
	assert.Equal(t, domain.StatusCancelled, resp.Status)
	assert.Equal(t, 3, repo.getCalls, "poll must stop at the conflict signal")
}

func TestExecute_EarlyConfirmationStopsPoll(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo, &fakeProfileReader{profile: testProfile()}, &instantSleeper{})

	confirmed := domain.Booking{ID: 101, SlotID: "2024-06-10_10-30", Status: domain.StatusConfirmed}
	repo.reads = []readResult{{booking: &confirmed}}

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, resp.Outcome)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, 1, repo.getCalls)
}

func TestExecute_PollReadErrorsTolerated(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo, &fakeProfileReader{profile: testProfile()}, &instantSleeper{})

	repo.reads = []readResult{{err: errors.New("connection reset")}}

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err, "poll read failures must not fail the submission")

	assert.Equal(t, OutcomeSuccess, resp.Outcome)
	assert.Equal(t, 6, repo.getCalls)
}

func TestExecute_DeclinedDuringPoll(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(t, repo, &fakeProfileReader{profile: testProfile()}, &instantSleeper{})

	pending := domain.Booking{ID: 101, Status: domain.StatusPending}
	repo.reads = []readResult{{booking: cancelled(pending, domain.ReasonDeclined)}}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBookingDeclined)
}

func TestExecute_ContextCancellationStopsPoll(t *testing.T) {
	repo := &fakeBookingRepo{}
	sleeper := &instantSleeper{err: context.Canceled}
	uc := newTestUseCase(t, repo, &fakeProfileReader{profile: testProfile()}, sleeper)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, repo.getCalls, "no reads after cancellation")
	require.NotNil(t, repo.created, "pending record stays for out-of-band resolution")
}

func TestExecute_CreateFailureIsFatal(t *testing.T) {
	repo := &fakeBookingRepo{createErr: errors.New("storage unavailable")}
	uc := newTestUseCase(t, repo, &fakeProfileReader{profile: testProfile()}, &instantSleeper{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeProfileReader{profile: testProfile()}, &instantSleeper{})

	tests := []struct {
		name    string
		mutate  func(req *Request)
		wantErr error
	}{
		{
			name:    "single character name",
			mutate:  func(req *Request) { req.CustomerName = "И" },
			wantErr: ErrInvalidCustomerName,
		},
		{
			name:    "name of spaces only",
			mutate:  func(req *Request) { req.CustomerName = "   " },
			wantErr: ErrInvalidCustomerName,
		},
		{
			name:    "short phone",
			mutate:  func(req *Request) { req.CustomerPhone = "+7916" },
			wantErr: ErrInvalidCustomerPhone,
		},
		{
			name:    "landline prefix",
			mutate:  func(req *Request) { req.CustomerPhone = "+74951234567" },
			wantErr: ErrInvalidCustomerPhone,
		},
		{
			name:    "malformed start time",
			mutate:  func(req *Request) { req.StartTime = "25:99" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing service",
			mutate:  func(req *Request) { req.ServiceID = "" },
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_PhoneFormats(t *testing.T) {
	uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeProfileReader{profile: testProfile()}, &instantSleeper{})

	valid := []string{"+79161234567", "89161234567"}
	for _, phone := range valid {
		req := validRequest()
		req.CustomerPhone = phone
		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err, "phone %s must be accepted", phone)
	}
}

func TestExecute_PastDate(t *testing.T) {
	uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeProfileReader{profile: testProfile()}, &instantSleeper{})

	req := validRequest()
	req.Date = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeProfileReader{err: profileService.ErrBusinessNotFound}, &instantSleeper{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(t, &fakeBookingRepo{}, &fakeProfileReader{profile: testProfile()}, &instantSleeper{})

	req := validRequest()
	req.ServiceID = "ghost"

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestRealSleeper_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := (&RealSleeper{}).Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
