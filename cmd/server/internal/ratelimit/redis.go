package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "platformapi-ratelimit-"

// RedisLimiterStore is an echo RateLimiterStore backed by a shared
// redis counter, one bucket per (limiter, identifier) per minute.
type RedisLimiterStore struct {
	db         *redis.Client
	limiterKey string
	perMinute  int64
	failOpen   bool
}

type RedisLimiterConfig struct {
	RedisClient *redis.Client
	LimiterKey  string
	PerMinute   int64
	FailOpen    bool
}

func NewRedisLimitStore(config RedisLimiterConfig) *RedisLimiterStore {
	return &RedisLimiterStore{
		db:         config.RedisClient,
		limiterKey: config.LimiterKey,
		perMinute:  config.PerMinute,
		failOpen:   config.FailOpen,
	}
}

// Allow is racy by up to N-1 extra requests for N concurrent writers.
// That slack is acceptable; a distributed lock here is not.
func (store *RedisLimiterStore) Allow(identifier string) (bool, error) {
	ctx := context.Background()

	key := keyPrefix + store.limiterKey + "-" + identifier

	remainingStr, err := store.db.Get(ctx, key).Result()
	switch {
	case err == nil:
		remaining, err := strconv.Atoi(remainingStr)
		if err != nil {
			return store.failOpen, err
		}
		if remaining <= 0 {
			return false, nil
		}
	case errors.Is(err, redis.Nil):
		// Fresh window.
		store.db.Set(ctx, key, store.perMinute, time.Minute)
	default:
		return store.failOpen, err
	}

	store.db.Decr(ctx, key)

	return true, nil
}
