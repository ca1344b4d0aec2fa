package gateway

import (
	"sync"
	"time"
)

// tokenBucket is the process-wide limiter: capacity 2x qps, refilled by
// elapsed wall time. One bucket for the whole edge, not per client.
type tokenBucket struct {
	mu       sync.Mutex
	qps      float64
	capacity float64
	tokens   float64
	last     time.Time
}

func newTokenBucket(qps float64) *tokenBucket {
	return &tokenBucket{
		qps:      qps,
		capacity: qps * 2,
		tokens:   qps * 2,
		last:     time.Now(),
	}
}

func (b *tokenBucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.last).Seconds()
	b.last = now

	b.tokens += elapsed * b.qps
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}
	return false
}
