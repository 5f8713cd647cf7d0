package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Actions with their own limits. Anything else gets the default.
const (
	ActionLogin          = "login"
	ActionSendMessage    = "send_message"
	ActionReportDisaster = "report_disaster"
	ActionIssueAlert     = "issue_alert"
)

type bucket struct {
	limiter  *rate.Limiter
	burst    int
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per user and action.
type RateLimiter struct {
	buckets map[string]*bucket
	mutex   sync.Mutex
	now     func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func limitFor(action string) (rate.Limit, int) {
	switch action {
	case ActionLogin:
		// 5 attempts, then one every 12 seconds
		return rate.Every(12 * time.Second), 5
	case ActionSendMessage:
		// 10 messages per minute
		return rate.Every(6 * time.Second), 10
	case ActionReportDisaster:
		return rate.Every(30 * time.Second), 3
	case ActionIssueAlert:
		return rate.Every(time.Minute), 5
	default:
		// 20 actions per minute
		return rate.Every(3 * time.Second), 20
	}
}

func (rl *RateLimiter) get(key, action string, now time.Time) *bucket {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	b, ok := rl.buckets[key]
	if !ok {
		limit, burst := limitFor(action)
		b = &bucket{limiter: rate.NewLimiter(limit, burst), burst: burst}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b
}

// Allow consumes a token for the user action. When none is available it
// returns false and how long until the next token.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	now := rl.now()
	b := rl.get(userID+":"+action, action, now)

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, 0
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// GetStatus returns the remaining and maximum tokens for a user action.
func (rl *RateLimiter) GetStatus(userID, action string) (tokens int, maxTokens int) {
	rl.mutex.Lock()
	b, ok := rl.buckets[userID+":"+action]
	rl.mutex.Unlock()
	if !ok {
		return 0, 0
	}
	return int(b.limiter.TokensAt(rl.now())), b.burst
}

// Cleanup removes buckets idle for more than an hour.
func (rl *RateLimiter) Cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > time.Hour {
			delete(rl.buckets, key)
		}
	}
}

// StartCleanupRoutine runs Cleanup every 30 minutes until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}
