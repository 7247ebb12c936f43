package service

import (
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/yndnr/sealslot-go/pkg/cmap"
)

// RateLimiterRegistry hands out one token-bucket limiter per caller key
// (the client IP at the HTTP layer). Each key may make Requests requests
// per Window, refilled continuously.
//
// Limiters idle for longer than one window are swept on the next call
// after a window has elapsed, so the registry does not grow without bound.
type RateLimiterRegistry struct {
	limiters  *cmap.Map[string, *limiterEntry]
	limit     rate.Limit
	burst     int
	window    time.Duration
	now       func() time.Time
	lastSweep atomic.Int64
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// NewRateLimiterRegistry creates a registry allowing requests per window.
func NewRateLimiterRegistry(requests int, window time.Duration) *RateLimiterRegistry {
	if requests < 1 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	// rate.Every(0) is rate.Inf, which would disable limiting.
	interval := window / time.Duration(requests)
	if interval <= 0 {
		interval = time.Nanosecond
	}

	r := &RateLimiterRegistry{
		limiters: cmap.New[string, *limiterEntry](),
		limit:    rate.Every(interval),
		burst:    requests,
		window:   window,
		now:      time.Now,
	}
	r.lastSweep.Store(r.now().UnixNano())
	return r
}

// Allow reports whether key may make a request now. When it may not, the
// returned duration is how long until the next request would be allowed.
func (r *RateLimiterRegistry) Allow(key string) (bool, time.Duration) {
	now := r.now()
	r.maybeSweep(now)

	e := r.getOrCreate(key)
	e.lastSeen.Store(now.UnixNano())

	res := e.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, r.window
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Len returns the number of tracked keys.
func (r *RateLimiterRegistry) Len() int {
	return r.limiters.Count()
}

func (r *RateLimiterRegistry) getOrCreate(key string) *limiterEntry {
	if e, ok := r.limiters.Get(key); ok {
		return e
	}
	e, _ := r.limiters.GetOrSet(key, &limiterEntry{
		limiter: rate.NewLimiter(r.limit, r.burst),
	})
	return e
}

func (r *RateLimiterRegistry) maybeSweep(now time.Time) {
	last := r.lastSweep.Load()
	if now.UnixNano()-last < int64(r.window) {
		return
	}
	if !r.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	cutoff := now.Add(-r.window).UnixNano()
	r.limiters.Prune(func(_ string, e *limiterEntry) bool {
		return e.lastSeen.Load() < cutoff
	})
}
