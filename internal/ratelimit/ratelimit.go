// Package ratelimit provides inbound rate limiting using a token bucket
// for per-minute burst control.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limiter enforces a per-minute request limit.
type Limiter struct {
	rpm int // max requests per minute (0 = unlimited)

	mu sync.Mutex

	tokens    float64
	maxTokens float64
	lastRefil time.Time
}

// New creates a rate limiter with the given per-minute limit.
// A value of 0 means unlimited.
func New(rpm int) *Limiter {
	l := &Limiter{rpm: rpm}
	if rpm > 0 {
		l.tokens = float64(rpm)
		l.maxTokens = float64(rpm)
		l.lastRefil = time.Now()
	}
	return l
}

// ErrRateLimited is returned when a request is rejected by the rate limiter.
type ErrRateLimited struct {
	Limit      int           // the configured limit
	RetryAfter time.Duration // suggested wait time
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("rate limited (%d per minute max), retry after %s", e.Limit, e.RetryAfter.Truncate(time.Second))
}

// Allow takes a token if one is available. It never blocks; a rejected
// request gets an ErrRateLimited carrying the suggested retry delay.
func (l *Limiter) Allow() error {
	if l.rpm == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(l.lastRefil)
	l.tokens += elapsed.Seconds() * (float64(l.rpm) / 60.0)
	if l.tokens > l.maxTokens {
		l.tokens = l.maxTokens
	}
	l.lastRefil = now

	if l.tokens < 1.0 {
		deficit := 1.0 - l.tokens
		retryAfter := time.Duration(deficit / (float64(l.rpm) / 60.0) * float64(time.Second))
		if retryAfter < time.Millisecond {
			retryAfter = time.Millisecond
		}
		return &ErrRateLimited{Limit: l.rpm, RetryAfter: retryAfter}
	}

	l.tokens -= 1.0
	return nil
}

// Stats returns the current rate limiter state for observability.
type Stats struct {
	RPM        int     `json:"rpm"`
	TokensLeft float64 `json:"tokens_left"`
}

func (l *Limiter) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	tokens := l.tokens
	if l.rpm > 0 {
		elapsed := time.Since(l.lastRefil)
		tokens += elapsed.Seconds() * (float64(l.rpm) / 60.0)
		if tokens > l.maxTokens {
			tokens = l.maxTokens
		}
	}

	return Stats{RPM: l.rpm, TokensLeft: tokens}
}
