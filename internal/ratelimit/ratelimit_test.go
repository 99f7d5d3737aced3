package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mist-tools/misttopo/internal/ratelimit"
)

func TestNewAllowsBurst(t *testing.T) {
	t.Parallel()

	limiter := ratelimit.New(600) // 10/s, burst 10

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond, "burst should not block")
}

func TestNewMinimumBurst(t *testing.T) {
	t.Parallel()

	// Fewer than 60 requests/minute still permits one request immediately.
	limiter := ratelimit.New(5)
	assert.True(t, limiter.Allow())
}
