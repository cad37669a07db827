package utils

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashKey(t *testing.T) {
	a := HashKey("beach", "2026-11-01")
	assert.Len(t, a, 64)
	assert.Equal(t, a, HashKey("beach", "2026-11-01"))
	assert.NotEqual(t, a, HashKey("beach2026", "-11-01"))
}

func TestToAbsoluteURL(t *testing.T) {
	base, err := url.Parse("https://www.theflightdeal.com/category/flight-deals/dallas/")
	require.NoError(t, err)

	tests := []struct {
		relative string
		want     string
	}{
		{"/2026/10/01/deal/", "https://www.theflightdeal.com/2026/10/01/deal/"},
		{"page/2/", "https://www.theflightdeal.com/category/flight-deals/dallas/page/2/"},
		{" https://other.example/x ", "https://other.example/x"},
	}
	for _, tt := range tests {
		got, err := ToAbsoluteURL(base, tt.relative)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestJitter(t *testing.T) {
	assert.Equal(t, time.Second, Jitter(time.Second, time.Second))
	assert.Equal(t, 2*time.Second, Jitter(2*time.Second, time.Second))
	for i := 0; i < 50; i++ {
		d := Jitter(time.Second, 2*time.Second)
		assert.GreaterOrEqual(t, d, time.Second)
		assert.Less(t, d, 2*time.Second)
	}
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	assert.NoError(t, Sleep(context.Background(), 0))
}
