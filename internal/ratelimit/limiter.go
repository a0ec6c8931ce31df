// Package ratelimit implements a fixed-window request counter keyed by client
// identity. The counter state lives behind Store so a single instance can keep
// it in memory while several instances share it through Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Default policy for public write endpoints.
const (
	DefaultLimit  = 5
	DefaultWindow = 15 * time.Minute
)

// Window is the counter state of one identity.
type Window struct {
	Count int
	Start time.Time
}

// Store records hits. Hit must atomically start a new window (count 1) when
// none exists or the current one has expired, or otherwise increment it, and
// return the resulting window.
type Store interface {
	Hit(ctx context.Context, key string, now time.Time, window time.Duration) (Window, error)
}

// Decision is the outcome of one Check.
type Decision struct {
	Allowed    bool
	Limit      int
	Count      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Limiter applies a fixed-window policy over a Store.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

// Option customises a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithPrefix namespaces the keys a Limiter writes.
func WithPrefix(prefix string) Option {
	return func(l *Limiter) { l.prefix = prefix }
}

// New returns a Limiter admitting limit hits per window. Non-positive values
// fall back to the defaults.
func New(store Store, limit int, window time.Duration, opts ...Option) *Limiter {
	if limit < 1 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	l := &Limiter{store: store, limit: limit, window: window, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Limit returns the number of hits admitted per window.
func (l *Limiter) Limit() int { return l.limit }

// Window returns the window length.
func (l *Limiter) Window() time.Duration { return l.window }

// Check counts one hit for identity and reports whether it is admitted. The
// hit is recorded before the caller forwards the request, so work abandoned
// downstream still consumes quota.
func (l *Limiter) Check(ctx context.Context, identity string) (Decision, error) {
	now := l.now()
	w, err := l.store.Hit(ctx, l.key(identity), now, l.window)
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit hit %q: %w", identity, err)
	}
	d := Decision{
		Allowed: w.Count <= l.limit,
		Limit:   l.limit,
		Count:   w.Count,
		ResetAt: w.Start.Add(l.window),
	}
	if rem := l.limit - w.Count; rem > 0 {
		d.Remaining = rem
	}
	if !d.Allowed {
		d.RetryAfter = d.ResetAt.Sub(now)
		if d.RetryAfter < 0 {
			d.RetryAfter = 0
		}
	}
	return d, nil
}

func (l *Limiter) key(identity string) string {
	if l.prefix == "" {
		return identity
	}
	return l.prefix + ":" + identity
}
