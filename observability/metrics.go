package observability

import (
	"sync"
	"time"
)

// MetricsRecorder is an interface for recording metrics.
// Implementations can use any metrics library (Prometheus, StatsD, etc.).
type MetricsRecorder interface {
	// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)

	// RecordRetry records a retry attempt for an endpoint.
	RecordRetry(attempt int, endpoint string)

	// RecordRateLimit records a rate limit wait event.
	RecordRateLimit(endpoint string, wait time.Duration)

	// RecordError records an error occurrence.
	RecordError(operation, errorType string)
}

// noopMetricsRecorder is a no-operation metrics recorder that does nothing.
type noopMetricsRecorder struct{}

// NoopMetricsRecorder returns a metrics recorder that does nothing.
// This is the default recorder used when none is provided.
func NoopMetricsRecorder() MetricsRecorder {
	return &noopMetricsRecorder{}
}

func (m *noopMetricsRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}
func (m *noopMetricsRecorder) RecordRetry(int, string)                              {}
func (m *noopMetricsRecorder) RecordRateLimit(string, time.Duration)                {}
func (m *noopMetricsRecorder) RecordError(string, string)                           {}

// CallCounter is an in-memory MetricsRecorder that counts events.
// It is safe for concurrent use. The CLI uses it to report how many API
// calls a discovery run consumed; tests use it to assert client behavior.
type CallCounter struct {
	mu         sync.Mutex
	requests   int
	retries    int
	rateLimits int
	errors     int
}

// NewCallCounter returns a zeroed CallCounter.
func NewCallCounter() *CallCounter {
	return &CallCounter{}
}

func (c *CallCounter) RecordHTTPRequest(string, string, int, time.Duration) {
	c.mu.Lock()
	c.requests++
	c.mu.Unlock()
}

func (c *CallCounter) RecordRetry(int, string) {
	c.mu.Lock()
	c.retries++
	c.mu.Unlock()
}

func (c *CallCounter) RecordRateLimit(string, time.Duration) {
	c.mu.Lock()
	c.rateLimits++
	c.mu.Unlock()
}

func (c *CallCounter) RecordError(string, string) {
	c.mu.Lock()
	c.errors++
	c.mu.Unlock()
}

// Requests returns the number of HTTP requests recorded so far.
func (c *CallCounter) Requests() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requests
}

// Retries returns the number of retry attempts recorded so far.
func (c *CallCounter) Retries() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.retries
}

// Errors returns the number of errors recorded so far.
func (c *CallCounter) Errors() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors
}
