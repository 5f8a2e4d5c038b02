package limiter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "LOGIN_FAIL:"

// RedisLimiter shares failure counters between instances. The window
// starts at the first failure and is not extended by later ones.
type RedisLimiter struct {
	client      redis.Cmdable
	maxAttempts int
	window      time.Duration
}

func NewRedisLimiter(client redis.Cmdable, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

func (l *RedisLimiter) Blocked(ctx context.Context, key string) (bool, error) {
	count, err := l.client.Get(ctx, keyPrefix+key).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= l.maxAttempts, nil
}

func (l *RedisLimiter) Fail(ctx context.Context, key string) (int, error) {
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, keyPrefix+key)
		pipe.ExpireNX(ctx, keyPrefix+key, l.window)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, keyPrefix+key).Err()
}

func (l *RedisLimiter) Limit() int {
	return l.maxAttempts
}
