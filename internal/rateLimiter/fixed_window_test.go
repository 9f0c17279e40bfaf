package ratelimiter

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowLimiter(t *testing.T) {
	limiter := NewFixedWindowLimiter(2, time.Minute)

	allowed, _ := limiter.Allow("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("10.0.0.1")
	assert.True(t, allowed)

	allowed, retryAfter := limiter.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, time.Minute, retryAfter)

	// counts are per IP
	allowed, _ = limiter.Allow("10.0.0.2")
	assert.True(t, allowed)
}

func TestFixedWindowLimiterConcurrent(t *testing.T) {
	const limit = 50
	limiter := NewFixedWindowLimiter(limit, time.Minute)

	var wg sync.WaitGroup
	var allowed int64

	for i := 0; i < 4*limit; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := limiter.Allow("10.0.0.3"); ok {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, limit, allowed, "concurrent requests must never exceed the window limit")
}
