package rcsb

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter paces outbound requests with a token bucket.
// A nil *RateLimiter never blocks.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter returns a limiter allowing requestsPerSecond sustained and
// burst requests at once, or nil when requestsPerSecond is not positive.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		return nil
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a token is available or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return nil
	}
	return r.limiter.Wait(ctx)
}
