package locks

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLocker layers a distributed SetNX lock over an in-process
// KeyedMutex so the critical section holds across instances. The TTL
// bounds how long a crashed holder can block others.
type RedisLocker struct {
	client *redis.Client
	local  *KeyedMutex
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{
		client: client,
		local:  NewKeyedMutex(),
		ttl:    ttl,
	}
}

func (r *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	unlockLocal, err := r.local.Lock(ctx, key)
	if err != nil {
		return nil, err
	}

	redisKey := "lock:" + key
	for {
		ok, err := r.client.SetNX(ctx, redisKey, "locked", r.ttl).Result()
		if err != nil {
			unlockLocal()
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			unlockLocal()
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}

	return func() {
		_ = r.client.Del(context.Background(), redisKey).Err()
		unlockLocal()
	}, nil
}
