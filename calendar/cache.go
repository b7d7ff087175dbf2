package calendar

import (
	"context"
	"sync"
	"time"
)

// CachedSource is a read-through DaySource wrapper with a bounded TTL.
// It only avoids repeated lookups against a remote backing store;
// correctness of the engine never depends on it. Errors from the
// backing source are passed through and never cached.
type CachedSource struct {
	source DaySource
	ttl    time.Duration
	now    func() time.Time

	mu   sync.RWMutex
	days map[cacheKey]cacheEntry
}

type cacheKey struct {
	scheduleID string
	julian     int
}

type cacheEntry struct {
	day      CalendarDay
	expireAt time.Time
}

// NewCachedSource wraps source with a TTL cache. A non-positive ttl
// disables caching and every lookup hits the backing source.
func NewCachedSource(source DaySource, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		days:   map[cacheKey]cacheEntry{},
	}
}

// Day implements DaySource.
func (c *CachedSource) Day(ctx context.Context, scheduleID string, date time.Time) (CalendarDay, error) {
	if c.ttl <= 0 {
		return c.source.Day(ctx, scheduleID, date)
	}

	key := cacheKey{scheduleID: scheduleID, julian: julianDate(date)}
	now := c.now()

	c.mu.RLock()
	entry, ok := c.days[key]
	c.mu.RUnlock()
	if ok && now.Before(entry.expireAt) {
		return entry.day, nil
	}

	day, err := c.source.Day(ctx, scheduleID, date)
	if err != nil {
		return CalendarDay{}, err
	}

	c.mu.Lock()
	c.days[key] = cacheEntry{day: day, expireAt: now.Add(c.ttl)}
	c.mu.Unlock()
	return day, nil
}
