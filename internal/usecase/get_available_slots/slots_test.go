package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
	"github.com/m04kA/LSM-AppointmentService/pkg/types"
)

func TestGenerateCandidates(t *testing.T) {
	tests := []struct {
		name            string
		day             domain.DaySchedule
		serviceDuration int
		stepMinutes     int
		want            []types.TimeString
	}{
		{
			name:            "full working day with hour-long service",
			day:             domain.DaySchedule{Open: "09:00", Close: "17:00"},
			serviceDuration: 60,
			stepMinutes:     30,
			want: []types.TimeString{
				"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
				"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
				"15:00", "15:30", "16:00",
			},
		},
		{
			name:            "last start is exactly close minus duration",
			day:             domain.DaySchedule{Open: "10:00", Close: "12:00"},
			serviceDuration: 30,
			stepMinutes:     30,
			want:            []types.TimeString{"10:00", "10:30", "11:00", "11:30"},
		},
		{
			name:            "service longer than working day yields no candidates",
			day:             domain.DaySchedule{Open: "09:00", Close: "10:00"},
			serviceDuration: 120,
			stepMinutes:     30,
			want:            []types.TimeString{},
		},
		{
			name:            "closed day yields no candidates",
			day:             domain.DaySchedule{Closed: true},
			serviceDuration: 30,
			stepMinutes:     30,
			want:            []types.TimeString{},
		},
		{
			name:            "duration not aligned to step",
			day:             domain.DaySchedule{Open: "09:00", Close: "11:00"},
			serviceDuration: 45,
			stepMinutes:     30,
			want:            []types.TimeString{"09:00", "09:30", "10:00"},
		},
		{
			name:            "closing at end of day marker",
			day:             domain.DaySchedule{Open: "23:00", Close: "24:00"},
			serviceDuration: 30,
			stepMinutes:     30,
			want:            []types.TimeString{"23:00", "23:30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := generateCandidates(tt.day, tt.serviceDuration, tt.stepMinutes)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateCandidates_AllWithinOpeningHours(t *testing.T) {
	day := domain.DaySchedule{Open: "08:15", Close: "20:45"}
	duration := 50

	for _, candidate := range generateCandidates(day, duration, 30) {
		end, err := candidate.AddMinutes(duration)
		require.NoError(t, err)
		assert.False(t, candidate.IsBefore(day.Open), "candidate %s starts before opening", candidate)
		assert.False(t, end.IsAfter(day.Close), "candidate %s ends after closing", candidate)
	}
}

func TestFilterCandidates_PastSlotsOnlyForToday(t *testing.T) {
	candidates := []types.TimeString{"09:00", "10:00", "11:00"}
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("same day filters elapsed times", func(t *testing.T) {
		now := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)

		available, unavailable := filterCandidates(candidates, 30, date, now, domain.ExclusionRules{}, nil)

		assert.Equal(t, []types.TimeString{"11:00"}, available)
		require.Len(t, unavailable, 2)
		assert.Equal(t, ReasonPast, unavailable[0].Reason)
		assert.Equal(t, ReasonPast, unavailable[1].Reason)
	})

	t.Run("future date keeps all times", func(t *testing.T) {
		now := time.Date(2024, 6, 9, 23, 0, 0, 0, time.UTC)

		available, unavailable := filterCandidates(candidates, 30, date, now, domain.ExclusionRules{}, nil)

		assert.Equal(t, candidates, available)
		assert.Empty(t, unavailable)
	})
}

func TestFilterCandidates_ExcludedDateBlocksEverything(t *testing.T) {
	candidates := []types.TimeString{"09:00", "09:30"}
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	exclusions := domain.ExclusionRules{ExcludedDates: []string{"2024-06-10"}}

	available, unavailable := filterCandidates(candidates, 30, date, now, exclusions, nil)

	assert.Empty(t, available)
	require.Len(t, unavailable, 2)
	for _, slot := range unavailable {
		assert.Equal(t, ReasonExcluded, slot.Reason)
	}
}

func TestFilterCandidates_ExcludedTime(t *testing.T) {
	candidates := []types.TimeString{"09:00", "09:30", "10:00"}
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	exclusions := domain.ExclusionRules{
		ExcludedTimes: map[string][]types.TimeString{"2024-06-10": {"09:30"}},
	}

	available, unavailable := filterCandidates(candidates, 30, date, now, exclusions, nil)

	assert.Equal(t, []types.TimeString{"09:00", "10:00"}, available)
	require.Len(t, unavailable, 1)
	assert.Equal(t, types.TimeString("09:30"), unavailable[0].StartTime)
	assert.Equal(t, ReasonExcluded, unavailable[0].Reason)
}

func TestFilterCandidates_BookingOverlap(t *testing.T) {
	// Бронирование 10:00 на 60 минут занимает [10:00, 11:00)
	bookings := []*domain.Booking{
		{StartTime: "10:00", DurationMinutes: 60, Status: domain.StatusConfirmed},
	}
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	candidates := []types.TimeString{"09:00", "09:30", "10:00", "10:30", "11:00"}
	available, unavailable := filterCandidates(candidates, 60, date, now, domain.ExclusionRules{}, bookings)

	// Часовой кандидат на 09:30 зацепил бы [09:30, 10:30) - пересечение;
	// 11:00 касается границы и остается доступным
	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, available)
	require.Len(t, unavailable, 3)
	for _, slot := range unavailable {
		assert.Equal(t, ReasonBooked, slot.Reason)
	}
}

func TestOverlapsAnyBooking(t *testing.T) {
	booking := func(start types.TimeString, duration int, status domain.BookingStatus) *domain.Booking {
		return &domain.Booking{StartTime: start, DurationMinutes: duration, Status: status}
	}

	tests := []struct {
		name      string
		candidate types.TimeString
		duration  int
		bookings  []*domain.Booking
		want      bool
	}{
		{
			name:      "candidate ends exactly at booking start",
			candidate: "09:00",
			duration:  60,
			bookings:  []*domain.Booking{booking("10:00", 60, domain.StatusPending)},
			want:      false,
		},
		{
			name:      "candidate starts exactly at booking end",
			candidate: "11:00",
			duration:  60,
			bookings:  []*domain.Booking{booking("10:00", 60, domain.StatusPending)},
			want:      false,
		},
		{
			name:      "partial overlap from the left",
			candidate: "09:30",
			duration:  60,
			bookings:  []*domain.Booking{booking("10:00", 60, domain.StatusPending)},
			want:      true,
		},
		{
			name:      "candidate fully inside booking",
			candidate: "10:15",
			duration:  15,
			bookings:  []*domain.Booking{booking("10:00", 60, domain.StatusConfirmed)},
			want:      true,
		},
		{
			name:      "booking fully inside candidate",
			candidate: "09:00",
			duration:  180,
			bookings:  []*domain.Booking{booking("10:00", 30, domain.StatusConfirmed)},
			want:      true,
		},
		{
			name:      "cancelled booking does not block",
			candidate: "10:00",
			duration:  60,
			bookings:  []*domain.Booking{booking("10:00", 60, domain.StatusCancelled)},
			want:      false,
		},
		{
			name:      "zero duration booking falls back to default length",
			candidate: "10:15",
			duration:  30,
			bookings:  []*domain.Booking{booking("10:00", 0, domain.StatusPending)},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, overlapsAnyBooking(tt.candidate, tt.duration, tt.bookings))
		})
	}
}

func TestOverlapsAnyBooking_Symmetry(t *testing.T) {
	// Пересечение симметрично: если A блокирует B, то B блокирует A
	a := types.TimeString("09:30")
	b := types.TimeString("10:00")

	abBlocks := overlapsAnyBooking(a, 60, []*domain.Booking{
		{StartTime: b, DurationMinutes: 60, Status: domain.StatusPending},
	})
	baBlocks := overlapsAnyBooking(b, 60, []*domain.Booking{
		{StartTime: a, DurationMinutes: 60, Status: domain.StatusPending},
	})

	assert.Equal(t, abBlocks, baBlocks)
	assert.True(t, abBlocks)
}
