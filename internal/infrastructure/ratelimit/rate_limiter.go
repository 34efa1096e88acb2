package ratelimit

import (
	"sync"
	"time"
)

const (
	ActionContactSeller  = "contact_seller"
	ActionToggleFavorite = "toggle_favorite"
	ActionPublicAPI      = "public_api"
)

// Limit is a bucket of Burst tokens refilled one token every Every.
type Limit struct {
	Burst int
	Every time.Duration
}

var DefaultLimits = map[string]Limit{
	// 5 contact attempts per hour
	ActionContactSeller: {Burst: 5, Every: 12 * time.Minute},
	// 30 favorite toggles per minute
	ActionToggleFavorite: {Burst: 30, Every: 2 * time.Second},
	// 120 anonymous requests per minute per IP
	ActionPublicAPI: {Burst: 120, Every: 500 * time.Millisecond},
}

var fallbackLimit = Limit{Burst: 20, Every: 3 * time.Second}

type TokenBucket struct {
	tokens     int
	limit      Limit
	lastRefill time.Time
	lastUsed   time.Time
	mutex      sync.Mutex
}

func NewTokenBucket(limit Limit, now time.Time) *TokenBucket {
	return &TokenBucket{
		tokens:     limit.Burst,
		limit:      limit,
		lastRefill: now,
		lastUsed:   now,
	}
}

// Allow consumes a token when one is available, otherwise reports how long to wait.
func (tb *TokenBucket) Allow(now time.Time) (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.lastUsed = now
	if refill := int(now.Sub(tb.lastRefill) / tb.limit.Every); refill > 0 {
		tb.tokens = min(tb.tokens+refill, tb.limit.Burst)
		tb.lastRefill = tb.lastRefill.Add(time.Duration(refill) * tb.limit.Every)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}
	return false, tb.lastRefill.Add(tb.limit.Every).Sub(now)
}

// RateLimiter keeps one bucket per user and action.
type RateLimiter struct {
	limits  map[string]Limit
	buckets map[string]*TokenBucket
	now     func() time.Time
	mutex   sync.Mutex
}

func NewRateLimiter(limits map[string]Limit) *RateLimiter {
	if limits == nil {
		limits = DefaultLimits
	}
	return &RateLimiter{
		limits:  limits,
		buckets: make(map[string]*TokenBucket),
		now:     time.Now,
	}
}

func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	key := userID + ":" + action
	now := rl.now()

	rl.mutex.Lock()
	bucket, ok := rl.buckets[key]
	if !ok {
		limit, found := rl.limits[action]
		if !found {
			limit = fallbackLimit
		}
		bucket = NewTokenBucket(limit, now)
		rl.buckets[key] = bucket
	}
	rl.mutex.Unlock()

	return bucket.Allow(now)
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) {
	now := rl.now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	for key, bucket := range rl.buckets {
		bucket.mutex.Lock()
		idle := now.Sub(bucket.lastUsed)
		bucket.mutex.Unlock()
		if idle > maxIdle {
			delete(rl.buckets, key)
		}
	}
}

// StartCleanupRoutine runs Cleanup every 30 minutes until stop is closed.
func (rl *RateLimiter) StartCleanupRoutine(stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-stop:
				return
			}
		}
	}()
}
