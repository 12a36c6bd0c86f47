package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRateLimitService(t *testing.T) *RateLimitService {
	t.Helper()

	svc := &RateLimitService{sqlSvc: newTestStore(t)}
	svc.initDefaultConfigs()
	return svc
}

func TestRateLimitWindow(t *testing.T) {
	svc := newRateLimitService(t)

	// temp_login allows 5 requests per window
	for i := 0; i < 5; i++ {
		allowed, info, err := svc.IsAllowed("1.2.3.4", "temp_login")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 4-i, info.Remaining)
	}

	allowed, info, err := svc.IsAllowed("1.2.3.4", "temp_login")
	require.NoError(t, err)
	assert.False(t, allowed)
	require.NotNil(t, info.BlockedUntil)
	assert.True(t, info.BlockedUntil.After(time.Now()))
}

func TestRateLimitPerIdentifier(t *testing.T) {
	svc := newRateLimitService(t)

	for i := 0; i < 5; i++ {
		_, _, err := svc.IsAllowed("1.2.3.4", "temp_login")
		require.NoError(t, err)
	}

	// A different identifier has its own window
	allowed, _, err := svc.IsAllowed("5.6.7.8", "temp_login")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitUnknownEndpointAllows(t *testing.T) {
	svc := newRateLimitService(t)

	allowed, info, err := svc.IsAllowed("1.2.3.4", "unconfigured")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, -1, info.Remaining)
}

func TestResetRateLimit(t *testing.T) {
	svc := newRateLimitService(t)

	for i := 0; i < 6; i++ {
		_, _, err := svc.IsAllowed("1.2.3.4", "temp_login")
		require.NoError(t, err)
	}

	allowed, _, err := svc.IsAllowed("1.2.3.4", "temp_login")
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, svc.ResetRateLimit("1.2.3.4", "temp_login"))

	allowed, _, err = svc.IsAllowed("1.2.3.4", "temp_login")
	require.NoError(t, err)
	assert.True(t, allowed)
}
