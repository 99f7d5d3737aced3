// Package ratelimit constructs token-bucket limiters for the Mist API.
package ratelimit

import "golang.org/x/time/rate"

// New creates a rate limiter for the given requests-per-minute budget.
// Tokens replenish continuously at requestsPerMinute/60 per second with a
// burst capacity of one second's worth of requests, so a discovery run can
// issue its site-stats calls back to back without tripping the org quota.
func New(requestsPerMinute int) *rate.Limiter {
	burst := requestsPerMinute / 60
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
}
