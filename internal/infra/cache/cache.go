package cache

import (
	"sync"
	"time"

	"github.com/m04kA/LSM-AppointmentService/internal/domain"
)

// Clock интерфейс источника времени (для тестирования)
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type entry struct {
	profile   *domain.BusinessProfile
	fetchedAt time.Time
}

// ProfileCache кеш профилей бизнесов с коротким TTL
//
// Явный объект, внедряемый в read path - не скрытое состояние уровня процесса.
// Снижает только объем чтений профилей; в историю консистентности не входит.
// Список бронирований через этот кеш НЕ ходит никогда: он всегда читается
// свежим при выборе даты, иначе окно гонки расширяется.
type ProfileCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	clock   Clock
	entries map[int64]entry
}

// New создает кеш профилей с указанным TTL
func New(ttl time.Duration) *ProfileCache {
	return NewWithClock(ttl, realClock{})
}

// NewWithClock создает кеш с внешним источником времени
func NewWithClock(ttl time.Duration, clock Clock) *ProfileCache {
	return &ProfileCache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[int64]entry),
	}
}

// Get возвращает профиль, если он есть в кеше и не протух
func (c *ProfileCache) Get(businessID int64) (*domain.BusinessProfile, bool) {
	c.mu.RLock()
	e, ok := c.entries[businessID]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.clock.Now().Sub(e.fetchedAt) > c.ttl {
		return nil, false
	}
	return e.profile, true
}

// Set сохраняет профиль в кеш
func (c *ProfileCache) Set(businessID int64, profile *domain.BusinessProfile) {
	c.mu.Lock()
	c.entries[businessID] = entry{profile: profile, fetchedAt: c.clock.Now()}
	c.mu.Unlock()
}

// Invalidate удаляет профиль из кеша
// Вызывается при каждой записи профиля
func (c *ProfileCache) Invalidate(businessID int64) {
	c.mu.Lock()
	delete(c.entries, businessID)
	c.mu.Unlock()
}

// Len возвращает количество записей в кеше (включая протухшие)
func (c *ProfileCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
