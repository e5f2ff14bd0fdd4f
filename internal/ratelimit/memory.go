package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	cleanupInterval = 3 * time.Minute
	staleAfter      = 5 * time.Minute
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryLimiter is a per-key token bucket held in process memory. On Lambda
// each warm container keeps its own buckets.
type MemoryLimiter struct {
	mu       sync.Mutex
	limiters map[string]*entry
	rate     rate.Limit
	burst    int
	stop     chan struct{}
	once     sync.Once
}

// NewMemoryLimiter allows perMinute attempts per key per minute, with the
// whole budget available as a burst.
func NewMemoryLimiter(perMinute int) *MemoryLimiter {
	ml := &MemoryLimiter{
		limiters: make(map[string]*entry),
		rate:     rate.Limit(float64(perMinute) / 60.0),
		burst:    perMinute,
		stop:     make(chan struct{}),
	}
	go ml.cleanupLoop()
	return ml
}

func (ml *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	return ml.get(key).Allow(), nil
}

// Close stops the background cleanup.
func (ml *MemoryLimiter) Close() error {
	ml.once.Do(func() { close(ml.stop) })
	return nil
}

func (ml *MemoryLimiter) get(key string) *rate.Limiter {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	if e, ok := ml.limiters[key]; ok {
		e.lastSeen = time.Now()
		return e.limiter
	}

	l := rate.NewLimiter(ml.rate, ml.burst)
	ml.limiters[key] = &entry{limiter: l, lastSeen: time.Now()}
	return l
}

func (ml *MemoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ml.stop:
			return
		case <-ticker.C:
			ml.mu.Lock()
			for key, e := range ml.limiters {
				if time.Since(e.lastSeen) > staleAfter {
					delete(ml.limiters, key)
				}
			}
			ml.mu.Unlock()
		}
	}
}
