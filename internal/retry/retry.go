// Package retry holds shared retry policy helpers.
package retry

import (
	"strconv"
	"time"
)

// ShouldRetry returns true if the HTTP status code indicates a retryable error.
// Retryable errors include:
//   - 429 (Too Many Requests) - Mist org-level rate limit exceeded
//   - 5xx (Server Errors) - temporary server-side issues
func ShouldRetry(statusCode int) bool {
	return statusCode >= 500 || statusCode == 429
}

// ParseRetryAfter parses the Retry-After HTTP header and returns the
// duration to wait. Mist sends the header as a number of seconds; HTTP-date
// form is not supported and yields 0, as does an empty or malformed header.
func ParseRetryAfter(retryAfterHeader string) time.Duration {
	if retryAfterHeader == "" {
		return 0
	}

	seconds, err := strconv.Atoi(retryAfterHeader)
	if err != nil {
		return 0
	}

	return time.Duration(seconds) * time.Second
}
