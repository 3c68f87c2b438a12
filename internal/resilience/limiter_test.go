package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNewLimiter_Disabled(t *testing.T) {
	assert.Nil(t, NewLimiter("helius", 0))
	assert.Nil(t, NewLimiter("helius", -1))
}

func TestNilLimiter_NeverBlocks(t *testing.T) {
	var a *AdaptiveLimiter
	assert.NoError(t, a.Wait(context.Background()))
	a.OnSuccess()
	a.OnRateLimit()
	assert.Equal(t, rate.Inf, a.Limit())
}

func TestAdaptiveLimiter_Adjusts(t *testing.T) {
	a := NewLimiter("birdeye", 10)
	require.NotNil(t, a)
	assert.Equal(t, rate.Limit(10), a.Limit())

	a.OnRateLimit()
	assert.Equal(t, rate.Limit(5), a.Limit())

	a.OnRateLimit()
	a.OnRateLimit()
	assert.Equal(t, rate.Limit(2.5), a.Limit(), "floored at a quarter of the initial rate")

	for i := 0; i < 20; i++ {
		a.OnSuccess()
	}
	assert.Equal(t, rate.Limit(20), a.Limit(), "capped at twice the initial rate")
}

func TestAdaptiveLimiter_WaitHonorsContext(t *testing.T) {
	a := NewLimiter("rugcheck", 0.001)
	require.NotNil(t, a)
	require.NoError(t, a.Wait(context.Background())) // consumes the burst

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.Error(t, a.Wait(ctx))
}
