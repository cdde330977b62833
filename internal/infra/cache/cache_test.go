package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestProfileCache_GetSet(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock(time.Minute, clock)

	_, ok := c.Get(1)
	assert.False(t, ok)

	profile := &domain.BusinessProfile{BusinessID: 1, Name: "Barbershop"}
	c.Set(1, profile)

	got, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Barbershop", got.Name)
}

func TestProfileCache_TTLExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)}
	c := NewWithClock(time.Minute, clock)

	c.Set(1, &domain.BusinessProfile{BusinessID: 1})

	clock.Advance(59 * time.Second)
	_, ok := c.Get(1)
	assert.True(t, ok, "entry within TTL must be served")

	clock.Advance(2 * time.Second)
	_, ok = c.Get(1)
	assert.False(t, ok, "entry past TTL must not be served")
}

func TestProfileCache_Invalidate(t *testing.T) {
	c := New(time.Minute)

	c.Set(1, &domain.BusinessProfile{BusinessID: 1})
	c.Set(2, &domain.BusinessProfile{BusinessID: 2})
	require.Equal(t, 2, c.Len())

	c.Invalidate(1)

	_, ok := c.Get(1)
	assert.False(t, ok)

	_, ok = c.Get(2)
	assert.True(t, ok, "invalidation is per-business")
}
