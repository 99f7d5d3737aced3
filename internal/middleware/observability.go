package middleware

import (
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/mist-tools/misttopo/observability"
)

// Observability returns a middleware that logs and records metrics for HTTP requests.
func Observability(logger observability.Logger, metrics observability.MetricsRecorder) func(http.RoundTripper) http.RoundTripper {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &observabilityTransport{
			next:    next,
			logger:  logger,
			metrics: metrics,
		}
	}
}

type observabilityTransport struct {
	next    http.RoundTripper
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

func (t *observabilityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	urlStr := req.URL.String()

	t.logger.Debug("http request started",
		observability.Field{Key: "method", Value: req.Method},
		observability.Field{Key: "url", Value: urlStr},
		observability.Field{Key: "path", Value: req.URL.Path},
	)

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		t.logger.Error("http request failed",
			observability.Field{Key: "method", Value: req.Method},
			observability.Field{Key: "url", Value: urlStr},
			observability.Field{Key: "duration", Value: duration},
			observability.Field{Key: "error", Value: err.Error()},
		)

		t.metrics.RecordError("http_request", "NetworkError")

		//nolint:wrapcheck // Observability middleware logs error but passes it through unchanged
		return nil, err
	}

	fields := []observability.Field{
		{Key: "method", Value: req.Method},
		{Key: "url", Value: urlStr},
		{Key: "status", Value: resp.StatusCode},
		{Key: "duration", Value: duration},
	}

	if resp.StatusCode >= http.StatusBadRequest {
		t.logger.Warn("http request completed with error", fields...)
	} else {
		t.logger.Debug("http request completed", fields...)
	}

	// Record metrics with normalized path to avoid unbounded cardinality
	t.metrics.RecordHTTPRequest(req.Method, normalizePath(req.URL.Path), resp.StatusCode, duration)

	return resp, nil
}

var (
	// orgPathPattern and sitePathPattern replace org and site identifiers
	// in Mist API paths: /api/v1/orgs/{org_id}/... and /api/v1/sites/{site_id}/...
	// Mist ids are UUIDs but the patterns accept any single segment so
	// self-hosted installs with custom ids normalize the same way.
	orgPathPattern  = regexp.MustCompile(`/orgs/[^/]+`)
	sitePathPattern = regexp.MustCompile(`/sites/[^/]+`)

	// normalizedPathCache caches normalized paths. A discovery run hits the
	// same handful of endpoints for every site, so the cache turns the
	// regex work into a map lookup after the first call per path.
	normalizedPathCache sync.Map
)

// normalizePath replaces org and site identifiers with placeholders so that
// per-path metrics stay bounded no matter how many sites an org has.
//
// Examples:
//   - /api/v1/orgs/9777c1a0-6ef6-11e6-8bbf-02e208b2d34f/inventory → /api/v1/orgs/:org/inventory
//   - /api/v1/sites/4ac1dcf4-9d8e-4dba-a94d-a71a9b21e931/stats/devices → /api/v1/sites/:site/stats/devices
func normalizePath(path string) string {
	if cached, ok := normalizedPathCache.Load(path); ok {
		//nolint:forcetypeassert // Cache only stores strings, type assertion is safe
		return cached.(string)
	}

	normalized := orgPathPattern.ReplaceAllString(path, "/orgs/:org")
	normalized = sitePathPattern.ReplaceAllString(normalized, "/sites/:site")

	normalizedPathCache.Store(path, normalized)

	return normalized
}
