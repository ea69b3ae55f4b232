package admission

import (
	"math"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

type bucket struct {
	count   int
	resetAt time.Time
}

type bucketKey struct {
	endpoint string
	client   string
}

// RateLimiter is a fixed-window counter keyed by endpoint and client.
type RateLimiter struct {
	window           time.Duration
	max              int
	cleanupThreshold int
	now              func() time.Time

	lock      sync.Mutex
	buckets   map[bucketKey]*bucket
	nextSweep time.Time
	sweeps    int
}

func NewRateLimiter(window time.Duration, max int, cleanupThreshold int) *RateLimiter {
	return &RateLimiter{
		window:           window,
		max:              max,
		cleanupThreshold: cleanupThreshold,
		now:              time.Now,
		buckets:          make(map[bucketKey]*bucket),
	}
}

// WithClock replaces the time source, used by tests.
func (l *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	l.now = now
	return l
}

// Allow records a request and reports whether it fits into the current
// window. When denied it returns the whole seconds until the window resets,
// never less than one.
func (l *RateLimiter) Allow(endpoint string, client string) (bool, int) {
	l.lock.Lock()
	defer l.lock.Unlock()

	now := l.now()
	if len(l.buckets) > l.cleanupThreshold && !now.Before(l.nextSweep) {
		l.sweep(now)
	}

	key := bucketKey{endpoint: endpoint, client: client}
	b, ok := l.buckets[key]
	if !ok || !now.Before(b.resetAt) {
		l.buckets[key] = &bucket{count: 1, resetAt: now.Add(l.window)}
		return true, 0
	}

	if b.count < l.max {
		b.count++
		return true, 0
	}

	retryAfter := int(math.Ceil(b.resetAt.Sub(now).Seconds()))
	if retryAfter < 1 {
		retryAfter = 1
	}
	return false, retryAfter
}

func (l *RateLimiter) Size() int {
	l.lock.Lock()
	defer l.lock.Unlock()

	return len(l.buckets)
}

// Sweeps reports how many cleanup passes have run.
func (l *RateLimiter) Sweeps() int {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.sweeps
}

// sweep drops expired buckets. It runs at most once per window, so the scan
// is amortized over every request admitted in between.
func (l *RateLimiter) sweep(now time.Time) {
	l.sweeps++
	l.nextSweep = now.Add(l.window)
	for key, b := range l.buckets {
		if !now.Before(b.resetAt) {
			delete(l.buckets, key)
		}
	}
}

// ClientKey identifies the caller by the first X-Forwarded-For entry,
// falling back to X-Real-IP and the connection address.
func ClientKey(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
