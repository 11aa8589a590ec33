package httpapi

import (
	"testing"
	"time"
)

func TestIPLimiterSweepsIdleBuckets(t *testing.T) {
	base := time.Now()
	clock := base
	l := newIPLimiter(1, 1)
	l.now = func() time.Time { return clock }
	l.lastSweep = base

	l.allow("10.0.0.1")
	clock = base.Add(bucketTTL + bucketSweep + time.Second)
	l.allow("10.0.0.2")

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.buckets["10.0.0.1"]; ok {
		t.Fatal("idle bucket survived the sweep")
	}
	if _, ok := l.buckets["10.0.0.2"]; !ok {
		t.Fatal("active bucket missing after sweep")
	}
}

func TestIPLimiterKeepsRecentBuckets(t *testing.T) {
	base := time.Now()
	clock := base
	l := newIPLimiter(1, 1)
	l.now = func() time.Time { return clock }
	l.lastSweep = base

	l.allow("10.0.0.1")
	clock = base.Add(bucketSweep + time.Second)
	l.allow("10.0.0.2")

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.buckets["10.0.0.1"]; !ok {
		t.Fatal("recent bucket evicted before its ttl")
	}
}
