package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_ContactSellerBurstAndRefill(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(nil)
	rl.now = func() time.Time { return clock }

	for i := 0; i < 5; i++ {
		ok, _ := rl.Allow("u1", ActionContactSeller)
		assert.True(t, ok, "attempt %d", i+1)
	}

	ok, wait := rl.Allow("u1", ActionContactSeller)
	assert.False(t, ok)
	assert.Equal(t, 12*time.Minute, wait)

	ok, _ = rl.Allow("u2", ActionContactSeller)
	assert.True(t, ok, "buckets are per user")

	clock = clock.Add(12 * time.Minute)
	ok, _ = rl.Allow("u1", ActionContactSeller)
	assert.True(t, ok)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(map[string]Limit{"a": {Burst: 1, Every: time.Hour}})
	rl.now = func() time.Time { return clock }

	rl.Allow("u1", "a")
	clock = clock.Add(2 * time.Hour)
	rl.Cleanup(time.Hour)

	assert.Empty(t, rl.buckets)
}
