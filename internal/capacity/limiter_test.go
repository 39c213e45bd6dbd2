package capacity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAcceptFlight_NoLimitConfigured(t *testing.T) {
	limiter := NewLimiter(NewMemoryLimitStore())

	ok, err := limiter.CanAcceptFlight(context.Background(), "WAW", time.Now(), 1000)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanAcceptFlight_StrictComparison(t *testing.T) {
	store := NewMemoryLimitStore()
	store.SetLimit("WAW", 2)
	limiter := NewLimiter(store)
	ctx := context.Background()
	date := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		scheduled int
		want      bool
	}{
		{0, true},
		{1, true},
		{2, false}, // at the ceiling the next flight is rejected
		{3, false},
	}

	for _, tt := range tests {
		ok, err := limiter.CanAcceptFlight(ctx, "WAW", date, tt.scheduled)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "scheduled=%d", tt.scheduled)
	}
}

func TestCanAcceptFlight_LimitsAreIndependentPerAirport(t *testing.T) {
	store := NewMemoryLimitStore()
	store.SetLimit("WAW", 1)
	limiter := NewLimiter(store)
	ctx := context.Background()

	ok, err := limiter.CanAcceptFlight(ctx, "WAW", time.Now(), 1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = limiter.CanAcceptFlight(ctx, "KRK", time.Now(), 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
