package service

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestRateLimiterRegistry_Allow(t *testing.T) {
	r := NewRateLimiterRegistry(3, time.Minute)
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if ok, _ := r.Allow("10.0.0.1"); !ok {
			t.Fatalf("Allow() #%d = false, want true", i+1)
		}
	}

	ok, retry := r.Allow("10.0.0.1")
	if ok {
		t.Fatal("Allow() over budget = true, want false")
	}
	if retry <= 0 || retry > 20*time.Second {
		t.Errorf("retry after = %v, want (0, 20s]", retry)
	}

	// Other keys have their own budget.
	if ok, _ := r.Allow("10.0.0.2"); !ok {
		t.Error("Allow() for a different key = false, want true")
	}

	// Refill: one token per window/requests.
	now = now.Add(21 * time.Second)
	if ok, _ := r.Allow("10.0.0.1"); !ok {
		t.Error("Allow() after refill = false, want true")
	}
}

func TestRateLimiterRegistry_RejectedDoesNotConsume(t *testing.T) {
	r := NewRateLimiterRegistry(1, time.Minute)
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }

	r.Allow("k")
	for i := 0; i < 10; i++ {
		r.Allow("k")
	}

	now = now.Add(2 * time.Minute)
	if ok, _ := r.Allow("k"); !ok {
		t.Error("Allow() after refill = false; rejected calls should not borrow future tokens")
	}
}

func TestRateLimiterRegistry_Sweep(t *testing.T) {
	r := NewRateLimiterRegistry(10, time.Minute)
	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }
	r.lastSweep.Store(now.UnixNano())

	r.Allow("a")
	r.Allow("b")
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	now = now.Add(2 * time.Minute)
	r.Allow("c")

	if r.Len() != 1 {
		t.Errorf("Len() after sweep = %d, want 1", r.Len())
	}
}

func TestNewRateLimiterRegistry_Defaults(t *testing.T) {
	r := NewRateLimiterRegistry(0, 0)
	if r.burst != 1 || r.window != time.Minute {
		t.Errorf("defaults burst=%d window=%v, want 1/1m", r.burst, r.window)
	}
}

func TestNewRateLimiterRegistry_SubNanosecondInterval(t *testing.T) {
	// 2000 requests per microsecond would round the interval down to zero.
	r := NewRateLimiterRegistry(2000, time.Microsecond)
	if r.limit == rate.Inf {
		t.Fatal("limit = rate.Inf, want a finite rate")
	}

	now := time.Unix(1000, 0)
	r.now = func() time.Time { return now }
	r.lastSweep.Store(now.UnixNano())

	for i := 0; i < 2000; i++ {
		if ok, _ := r.Allow("k"); !ok {
			t.Fatalf("Allow() #%d = false, want true", i+1)
		}
	}
	if ok, _ := r.Allow("k"); ok {
		t.Error("Allow() past the burst = true, want false")
	}
}
