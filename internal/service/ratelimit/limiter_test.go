package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterBurstThenReject(t *testing.T) {
	l := NewMemoryLimiter(1, 3)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(context.Background(), "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok, "request %d", i)
	}
	ok, _ := l.Allow(context.Background(), "1.2.3.4")
	assert.False(t, ok)

	// another client has its own bucket
	ok, _ = l.Allow(context.Background(), "5.6.7.8")
	assert.True(t, ok)

	now = now.Add(time.Second)
	ok, _ = l.Allow(context.Background(), "1.2.3.4")
	assert.True(t, ok)
}

func TestMemoryLimiterSweepsIdleKeys(t *testing.T) {
	l := NewMemoryLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "a")
	_, _ = l.Allow(context.Background(), "b")
	assert.Equal(t, 2, l.Len())

	now = now.Add(time.Hour)
	_, _ = l.Allow(context.Background(), "c")
	assert.Equal(t, 1, l.Len())
}

func TestRedisLimiterWindowKey(t *testing.T) {
	l := NewRedisLimiter(nil, "nextworth", 10, time.Minute)
	l.now = func() time.Time { return time.Unix(125, 0) }
	assert.Equal(t, "nextworth:ratelimit:1.2.3.4:2", l.windowKey("1.2.3.4"))
}

func TestRedisLimiterUnreachable(t *testing.T) {
	cli := NewRedisClient(RedisConfig{Addr: "127.0.0.1:1"})
	defer cli.Close()

	l := NewRedisLimiter(cli, "nextworth", 10, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	ok, err := l.Allow(ctx, "1.2.3.4")
	assert.Error(t, err)
	assert.False(t, ok)
}
