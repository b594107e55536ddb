package refresh_test

import (
	"context"
	"testing"
	"time"

	"demonchart/refresh"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request proceeds immediately", func(t *testing.T) {
		t.Parallel()

		limiter := refresh.NewDomainLimiter(1)

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("second request to same domain is throttled", func(t *testing.T) {
		t.Parallel()

		limiter := refresh.NewDomainLimiter(10) // 100ms between requests

		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("different domains are limited independently", func(t *testing.T) {
		t.Parallel()

		limiter := refresh.NewDomainLimiter(1)

		require.NoError(t, limiter.Wait(context.Background(), "a.example.com"))

		start := time.Now()
		require.NoError(t, limiter.Wait(context.Background(), "b.example.com"))
		assert.Less(t, time.Since(start), 100*time.Millisecond)
	})

	t.Run("returns error when context is canceled", func(t *testing.T) {
		t.Parallel()

		limiter := refresh.NewDomainLimiter(0.001) // effectively blocked

		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		err := limiter.Wait(ctx, "example.com")
		require.Error(t, err)
	})
}
