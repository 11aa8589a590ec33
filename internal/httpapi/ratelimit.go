package httpapi

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	bucketTTL    = 5 * time.Minute
	bucketSweep  = 1 * time.Minute
	maxIPBuckets = 100_000
)

// ipLimiter keeps one token bucket per client IP. Idle buckets are swept
// inline from allow, so the map stays bounded and the limiter needs no
// background goroutine.
type ipLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	burst     int
	perSecond int
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func newIPLimiter(burst, perSecond int) *ipLimiter {
	return &ipLimiter{
		buckets:   make(map[string]*bucket),
		burst:     burst,
		perSecond: perSecond,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) >= bucketSweep {
		l.sweepLocked(now)
	}
	b, ok := l.buckets[ip]
	if !ok {
		if len(l.buckets) >= maxIPBuckets {
			l.evictOldestLocked()
		}
		b = &bucket{lim: rate.NewLimiter(rate.Limit(l.perSecond), l.burst)}
		l.buckets[ip] = b
	}
	b.seen = now
	return b.lim.Allow()
}

func (l *ipLimiter) sweepLocked(now time.Time) {
	l.lastSweep = now
	for ip, b := range l.buckets {
		if now.Sub(b.seen) > bucketTTL {
			delete(l.buckets, ip)
		}
	}
}

func (l *ipLimiter) evictOldestLocked() {
	var oldestIP string
	var oldest time.Time
	for ip, b := range l.buckets {
		if oldestIP == "" || b.seen.Before(oldest) {
			oldestIP = ip
			oldest = b.seen
		}
	}
	if oldestIP != "" {
		delete(l.buckets, oldestIP)
	}
}
