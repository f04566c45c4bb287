package breaker

import (
	"testing"
	"time"
)

// fakeClock 可手动推进的假时钟
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func newTestBreaker(threshold int, timeout time.Duration) (*Breaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := New(Config{
		FailureThreshold: threshold,
		OpenTimeout:      timeout,
		Clock:            clock.Now,
	})
	return b, clock
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(3, 30*time.Second)

	if b.State() != StateClosed {
		t.Fatalf("initial state = %v, want closed", b.State())
	}

	b.MarkFailure()
	b.MarkFailure()
	if b.State() != StateClosed {
		t.Errorf("state after 2 failures = %v, want closed", b.State())
	}

	b.MarkFailure()
	if b.State() != StateOpen {
		t.Errorf("state after 3 failures = %v, want open", b.State())
	}
	if b.Allow() {
		t.Error("open breaker should not allow calls")
	}
}

func TestBreaker_HalfOpenProbeAfterTimeout(t *testing.T) {
	b, clock := newTestBreaker(1, 30*time.Second)

	b.MarkFailure()
	if b.Allow() {
		t.Fatal("open breaker should reject before timeout")
	}

	clock.Advance(31 * time.Second)

	// 第一个请求作为试探放行，第二个在试探期间被拒绝
	if !b.Allow() {
		t.Fatal("breaker should admit a probe after the open timeout")
	}
	if b.State() != StateHalfOpen {
		t.Errorf("state = %v, want half-open", b.State())
	}
	if b.Allow() {
		t.Error("second call during probe should be rejected")
	}
}

func TestBreaker_ProbeOutcome(t *testing.T) {
	t.Run("probe success closes", func(t *testing.T) {
		b, clock := newTestBreaker(1, time.Second)
		b.MarkFailure()
		clock.Advance(2 * time.Second)
		b.Allow()
		b.MarkSuccess()
		if b.State() != StateClosed {
			t.Errorf("state = %v, want closed", b.State())
		}
		if !b.Allow() {
			t.Error("closed breaker should allow calls")
		}
	})

	t.Run("probe failure reopens", func(t *testing.T) {
		b, clock := newTestBreaker(5, time.Second)
		for i := 0; i < 5; i++ {
			b.MarkFailure()
		}
		clock.Advance(2 * time.Second)
		b.Allow()
		b.MarkFailure()
		if b.State() != StateOpen {
			t.Errorf("state = %v, want open", b.State())
		}
		if b.Allow() {
			t.Error("reopened breaker should reject until the next timeout")
		}
	})
}
