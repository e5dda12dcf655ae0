package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for the shared limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RedisLimiter is a fixed-window counter shared by every replica that talks to
// the same Redis. Each key gets limit requests per window.
type RedisLimiter struct {
	cli    redis.Cmdable
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewRedisClient opens a client for cfg.
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
}

// NewRedisLimiter creates a limiter over cli.
func NewRedisLimiter(cli redis.Cmdable, prefix string, limit int64, window time.Duration) *RedisLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{cli: cli, prefix: prefix, limit: limit, window: window, now: time.Now}
}

// Allow increments the counter of the current window for key.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.windowKey(key)

	var incr *redis.IntCmd
	_, err := l.cli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis rate limit %s: %w", k, err)
	}
	return incr.Val() <= l.limit, nil
}

func (l *RedisLimiter) windowKey(key string) string {
	slot := l.now().UnixNano() / int64(l.window)
	return fmt.Sprintf("%s:ratelimit:%s:%d", l.prefix, key, slot)
}

var _ Limiter = (*RedisLimiter)(nil)
