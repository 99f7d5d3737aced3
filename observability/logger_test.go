package observability_test

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mist-tools/misttopo/observability"
)

func TestNoopLogger(t *testing.T) {
	t.Parallel()

	logger := observability.NoopLogger()

	// All methods should execute without panicking
	logger.Debug("test debug")
	logger.Info("test info")
	logger.Warn("test warn")
	logger.Error("test error")

	// With should return a logger
	newLogger := logger.With(observability.Field{Key: "key", Value: "value"})
	require.NotNil(t, newLogger)

	// With'd logger should also work
	newLogger.Info("test with logger")
}

func TestLogrusLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	backend := logrus.New()
	backend.SetOutput(&buf)
	backend.SetLevel(logrus.DebugLevel)

	logger := observability.NewLogrusLogger(backend)

	logger.Info("inventory fetched",
		observability.Field{Key: "devices", Value: 12},
		observability.Field{Key: "org_id", Value: "org-1"},
	)

	out := buf.String()
	assert.Contains(t, out, "inventory fetched")
	assert.Contains(t, out, "devices=12")
	assert.Contains(t, out, "org-1")
}

func TestLogrusLoggerWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	backend := logrus.New()
	backend.SetOutput(&buf)

	logger := observability.NewLogrusLogger(backend).With(
		observability.Field{Key: "site_id", Value: "site-a"},
	)

	logger.Warn("site stats unavailable")

	out := buf.String()
	assert.Contains(t, out, "site stats unavailable")
	assert.Contains(t, out, "site-a")
}

func TestCallCounter(t *testing.T) {
	t.Parallel()

	c := observability.NewCallCounter()

	c.RecordHTTPRequest("GET", "/api/v1/orgs/:org/inventory", 200, 0)
	c.RecordHTTPRequest("GET", "/api/v1/sites/:site/stats/devices", 200, 0)
	c.RecordRetry(1, "/api/v1/orgs/:org/sites")
	c.RecordError("http_request", "NetworkError")

	assert.Equal(t, 2, c.Requests())
	assert.Equal(t, 1, c.Retries())
	assert.Equal(t, 1, c.Errors())
}
