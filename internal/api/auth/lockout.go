package auth

import (
	"strings"
	"sync"
	"time"
)

// lockoutEntry tracks failed login attempts for an account.
type lockoutEntry struct {
	failures  int
	lockedAt  time.Time
	expiresAt time.Time
}

// LockoutTracker tracks failed login attempts per login name.
//
// State is in memory only and is lost on restart.
type LockoutTracker struct {
	mu              sync.RWMutex
	entries         map[string]*lockoutEntry // keyed by normalized login
	threshold       int                      // failures before lockout; <= 0 disables
	lockoutDuration time.Duration
	now             func() time.Time
	stop            chan struct{}
	stopOnce        sync.Once
}

// NewLockoutTracker creates a new lockout tracker and starts its cleanup
// goroutine. Call Stop to release it.
func NewLockoutTracker(threshold int, duration time.Duration) *LockoutTracker {
	lt := &LockoutTracker{
		entries:         make(map[string]*lockoutEntry),
		threshold:       threshold,
		lockoutDuration: duration,
		now:             time.Now,
		stop:            make(chan struct{}),
	}

	go lt.cleanupLoop()
	return lt
}

// Stop ends the cleanup goroutine.
func (t *LockoutTracker) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
}

func lockoutKey(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}

// RecordFailure records a failed login attempt.
// Returns true if the account is now locked.
func (t *LockoutTracker) RecordFailure(login string) bool {
	if t.threshold <= 0 {
		return false
	}
	key := lockoutKey(login)

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	entry, exists := t.entries[key]
	if !exists {
		entry = &lockoutEntry{}
		t.entries[key] = entry
	}

	// Still locked: don't extend
	if !entry.lockedAt.IsZero() && now.Before(entry.expiresAt) {
		return true
	}

	if !entry.lockedAt.IsZero() {
		entry.failures = 0
		entry.lockedAt = time.Time{}
		entry.expiresAt = time.Time{}
	}

	entry.failures++

	// Check if we should lock
	if entry.failures >= t.threshold {
		entry.lockedAt = now
		entry.expiresAt = now.Add(t.lockoutDuration)
		return true
	}

	return false
}

// IsLocked returns true if the account is currently locked.
func (t *LockoutTracker) IsLocked(login string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entry, exists := t.entries[lockoutKey(login)]
	if !exists || entry.lockedAt.IsZero() {
		return false
	}
	return t.now().Before(entry.expiresAt)
}

// RemainingLockoutTime returns how long until the lockout expires.
func (t *LockoutTracker) RemainingLockoutTime(login string) time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entry, exists := t.entries[lockoutKey(login)]
	if !exists {
		return 0
	}

	if entry.lockedAt.IsZero() {
		return 0
	}

	remaining := entry.expiresAt.Sub(t.now())
	if remaining < 0 {
		return 0
	}

	return remaining
}

// ClearFailures clears failed attempts on successful login.
func (t *LockoutTracker) ClearFailures(login string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.entries, lockoutKey(login))
}

// cleanupLoop periodically removes expired entries.
func (t *LockoutTracker) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.cleanup()
		case <-t.stop:
			return
		}
	}
}

// cleanup removes expired entries.
func (t *LockoutTracker) cleanup() {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for key, entry := range t.entries {
		// Remove entries with expired lockouts or no failures
		if entry.failures == 0 || (!entry.lockedAt.IsZero() && !now.Before(entry.expiresAt)) {
			delete(t.entries, key)
		}
	}
}
