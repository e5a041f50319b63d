// Package ratelimit implements a best-effort in-process sliding-window
// request limiter keyed by client address. It mitigates abuse on a single
// node; it is not cross-instance admission control.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const DefaultWindow = 60 * time.Second

type sample struct {
	at    time.Time
	count int
}

// Limiter counts requests per client address inside a trailing window.
// Construct instances with New; tests inject their own clock via Now.
type Limiter struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string][]sample
	// limits remembers the last limit seen per address so the sweep and
	// subsequent calls agree; last caller wins when routes share an address.
	limits map[string]int

	// Now returns the current time; replaced in tests.
	Now func() time.Time
}

// New constructs a limiter; window <= 0 falls back to DefaultWindow.
func New(window time.Duration) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		window:  window,
		entries: make(map[string][]sample),
		limits:  make(map[string]int),
		Now:     time.Now,
	}
}

// Allow reports whether the address may make another request given the limit
// for this call site. Samples outside the window are purged first; a rejected
// request is not recorded. limit <= 0 disables limiting for the call.
func (l *Limiter) Allow(addr string, limit int) bool {
	if limit <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.Now()
	l.limits[addr] = limit

	windowStart := now.Add(-l.window)
	kept := l.entries[addr][:0]
	total := 0
	for _, s := range l.entries[addr] {
		if s.at.After(windowStart) {
			kept = append(kept, s)
			total += s.count
		}
	}
	l.entries[addr] = kept

	if total >= limit {
		return false
	}

	l.entries[addr] = append(l.entries[addr], sample{at: now, count: 1})
	return true
}

// sweep drops all samples outside the window and forgets addresses left empty,
// bounding memory without making every Allow pay for global cleanup.
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	windowStart := l.Now().Add(-l.window)
	for addr, samples := range l.entries {
		kept := samples[:0]
		for _, s := range samples {
			if s.at.After(windowStart) {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(l.entries, addr)
			delete(l.limits, addr)
		} else {
			l.entries[addr] = kept
		}
	}
}

// StartSweeper purges stale samples on the window interval until ctx is done.
func (l *Limiter) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(l.window)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.sweep()
			}
		}
	}()
}
