package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/LSM-AppointmentService/pkg/ptr"
)

func TestBooking_Transitions(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	assert.True(t, pending.IsActive())
	assert.True(t, pending.CanBeConfirmed())
	assert.True(t, pending.CanBeCancelled())
	assert.False(t, pending.IsFinal())

	confirmed := &Booking{Status: StatusConfirmed}
	assert.True(t, confirmed.IsActive())
	assert.False(t, confirmed.CanBeConfirmed())
	assert.True(t, confirmed.CanBeCancelled())

	cancelled := &Booking{Status: StatusCancelled}
	assert.False(t, cancelled.IsActive())
	assert.False(t, cancelled.CanBeConfirmed())
	assert.False(t, cancelled.CanBeCancelled())
	assert.True(t, cancelled.IsFinal())
}

func TestBooking_IsConflictLoser(t *testing.T) {
	loser := &Booking{Status: StatusCancelled, CancelReason: ptr.Ptr(ReasonSlotTaken)}
	assert.True(t, loser.IsConflictLoser())

	declined := &Booking{Status: StatusCancelled, CancelReason: ptr.Ptr(ReasonDeclined)}
	assert.False(t, declined.IsConflictLoser())

	pending := &Booking{Status: StatusPending}
	assert.False(t, pending.IsConflictLoser())
}

func TestBooking_EffectiveDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		want     int
	}{
		{name: "normal duration kept", duration: 60, want: 60},
		{name: "missing defaults to 30", duration: 0, want: 30},
		{name: "negative defaults to 30", duration: -10, want: 30},
		{name: "too short floored at 15", duration: 5, want: 15},
		{name: "exactly minimum kept", duration: 15, want: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{DurationMinutes: tt.duration}
			assert.Equal(t, tt.want, b.EffectiveDuration())
		})
	}
}

func TestNewSlotID(t *testing.T) {
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-10_10-30", NewSlotID(date, "10:30"))
	assert.Equal(t, "2024-06-10_09-00", NewSlotID(date, "09:00"))
}
