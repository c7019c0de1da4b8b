package auth

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLockout(t *testing.T, threshold int, duration time.Duration) (*LockoutTracker, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	tracker := NewLockoutTracker(threshold, duration)
	tracker.now = clock.Now
	t.Cleanup(tracker.Stop)
	return tracker, clock
}

func TestLockoutTracker_LocksAtThreshold(t *testing.T) {
	tracker, _ := newTestLockout(t, 3, time.Minute)

	if tracker.IsLocked("alice") {
		t.Fatal("login should not be locked initially")
	}

	if tracker.RecordFailure("alice") || tracker.RecordFailure("alice") {
		t.Fatal("should not lock below threshold")
	}
	if tracker.IsLocked("alice") {
		t.Fatal("login should not be locked after 2 failures (threshold=3)")
	}

	if !tracker.RecordFailure("alice") {
		t.Error("third failure should report locked")
	}
	if !tracker.IsLocked("alice") {
		t.Error("login should be locked after 3 failures")
	}
}

func TestLockoutTracker_Expires(t *testing.T) {
	tracker, clock := newTestLockout(t, 2, time.Minute)

	tracker.RecordFailure("alice")
	tracker.RecordFailure("alice")

	clock.Advance(59 * time.Second)
	if !tracker.IsLocked("alice") {
		t.Fatal("login should still be locked")
	}
	if got := tracker.RemainingLockoutTime("alice"); got != time.Second {
		t.Errorf("remaining = %v, want 1s", got)
	}

	clock.Advance(time.Second)
	if tracker.IsLocked("alice") {
		t.Error("lockout should expire at its deadline")
	}
	if got := tracker.RemainingLockoutTime("alice"); got != 0 {
		t.Errorf("remaining = %v, want 0", got)
	}

	// A fresh failure after expiry starts a new count.
	if tracker.RecordFailure("alice") {
		t.Error("first failure after expiry should not lock")
	}
}

func TestLockoutTracker_DoesNotExtendWhileLocked(t *testing.T) {
	tracker, clock := newTestLockout(t, 1, time.Minute)

	tracker.RecordFailure("alice")
	clock.Advance(30 * time.Second)
	tracker.RecordFailure("alice")

	if got := tracker.RemainingLockoutTime("alice"); got != 30*time.Second {
		t.Errorf("remaining = %v, want 30s", got)
	}
}

func TestLockoutTracker_ClearFailures(t *testing.T) {
	tracker, _ := newTestLockout(t, 2, time.Hour)

	tracker.RecordFailure("alice")
	tracker.ClearFailures("alice")

	// Should need 2 failures again, not 1
	tracker.RecordFailure("alice")
	if tracker.IsLocked("alice") {
		t.Error("login should not be locked after clear and 1 failure")
	}
	tracker.RecordFailure("alice")
	if !tracker.IsLocked("alice") {
		t.Error("login should be locked after 2 failures")
	}

	tracker.ClearFailures("alice")
	if tracker.IsLocked("alice") {
		t.Error("login should not be locked after clear")
	}
}

func TestLockoutTracker_NormalizesLogin(t *testing.T) {
	tracker, _ := newTestLockout(t, 2, time.Hour)

	tracker.RecordFailure("Alice")
	tracker.RecordFailure(" alice ")

	if !tracker.IsLocked("ALICE") {
		t.Error("case and surrounding space should not split the count")
	}
	if tracker.IsLocked("bob") {
		t.Error("bob should not be locked")
	}
}

func TestLockoutTracker_Disabled(t *testing.T) {
	tracker, _ := newTestLockout(t, 0, time.Hour)

	for i := 0; i < 10; i++ {
		if tracker.RecordFailure("alice") {
			t.Fatal("disabled tracker should never lock")
		}
	}
	if tracker.IsLocked("alice") {
		t.Error("disabled tracker should never lock")
	}
}

func TestLockoutTracker_Cleanup(t *testing.T) {
	tracker, clock := newTestLockout(t, 1, time.Minute)

	tracker.RecordFailure("alice")
	clock.Advance(2 * time.Minute)
	tracker.cleanup()

	tracker.mu.RLock()
	defer tracker.mu.RUnlock()
	if _, ok := tracker.entries["alice"]; ok {
		t.Error("expired entry should be removed")
	}
}
