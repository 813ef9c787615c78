package guard

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	MaxAttempts   = 5
	LockoutWindow = 15 * time.Minute
)

// Lockout counts failed attempts per key over a sliding window. A key with
// max or more failures inside the window is locked until the oldest expires.
type Lockout struct {
	mu       sync.Mutex
	failures map[string][]time.Time
	max      int
	window   time.Duration
	clock    clockwork.Clock
}

// NewLockout creates a lockout allowing max failures per window.
func NewLockout(clock clockwork.Clock, max int, window time.Duration) *Lockout {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Lockout{
		failures: make(map[string][]time.Time),
		max:      max,
		window:   window,
		clock:    clock,
	}
}

// Locked reports whether key has exhausted its attempts.
func (l *Lockout) Locked(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prune(key)) >= l.max
}

// RecordFailure adds a failed attempt for key.
func (l *Lockout) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[key] = append(l.prune(key), l.clock.Now())
}

// Reset forgets all failures of key.
func (l *Lockout) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, key)
}

// prune drops expired entries. Caller holds mu.
func (l *Lockout) prune(key string) []time.Time {
	cutoff := l.clock.Now().Add(-l.window)
	entries := l.failures[key]
	valid := entries[:0]
	for _, t := range entries {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		delete(l.failures, key)
		return nil
	}
	l.failures[key] = valid
	return valid
}
