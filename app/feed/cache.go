package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL bounds snapshot staleness between refresh attempts.
const DefaultTTL = 300 * time.Second

// FetchError reports a refresh failure with no usable fallback snapshot.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch events feed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Cache owns the current feed snapshot. Get serves it while fresh, refreshes
// on expiry, and falls back to the last good snapshot when a refresh fails.
// The mutex is held across the fetch, so concurrent callers racing a refresh
// share the in-flight result instead of issuing a second fetch.
type Cache struct {
	fetcher Fetcher
	parser  *Parser
	ttl     time.Duration
	nowFn   func() time.Time

	mu       sync.Mutex
	snapshot *Snapshot
}

func NewCache(fetcher Fetcher, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		fetcher: fetcher,
		parser:  NewParser(),
		ttl:     ttl,
		nowFn:   time.Now,
	}
}

func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && c.nowFn().Sub(c.snapshot.FetchedAt) < c.ttl {
		return c.snapshot, nil
	}

	data, err := c.fetcher.Fetch(ctx)
	if err == nil {
		meta, entries, parseErr := c.parser.Run(data)
		if parseErr == nil {
			c.snapshot = &Snapshot{
				Meta:      *meta,
				Entries:   entries,
				FetchedAt: c.nowFn(),
			}
			slog.Debug("Feed snapshot refreshed", "entries", len(entries))
			return c.snapshot, nil
		}
		err = parseErr
	}

	// Serve the previous snapshot unchanged. Its capture timestamp is not
	// touched, so staleness keeps growing until a refresh succeeds.
	if c.snapshot != nil {
		slog.Warn("Feed refresh failed, serving stale snapshot",
			"age", c.nowFn().Sub(c.snapshot.FetchedAt), "error", err)
		return c.snapshot, nil
	}

	return nil, &FetchError{Err: err}
}

// Invalidate drops the current snapshot so the next Get refetches.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
}

// Status reports snapshot age and size for health checks. ok is false before
// the first successful fetch.
func (c *Cache) Status() (age time.Duration, entries int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot == nil {
		return 0, 0, false
	}
	return c.nowFn().Sub(c.snapshot.FetchedAt), len(c.snapshot.Entries), true
}
