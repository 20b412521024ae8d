package cache

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	TTLCourses = 30 * time.Second

	KeyCourses = "confetti:courses:all"
)

// ErrMiss is returned by GetJSON when the key is absent.
var ErrMiss = errors.New("cache miss")

func GetJSON(key string, dest any) error {
	if client == nil {
		return ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	data, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	} else if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func SetJSON(key string, value any, ttl time.Duration) error {
	if client == nil {
		return ErrNotInitialized
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return client.Set(ctx, key, data, ttl).Err()
}

func Delete(keys ...string) error {
	if client == nil {
		return ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return client.Del(ctx, keys...).Err()
}

// Incr bumps the counter at key, starting its expiry on the first hit.
func Incr(key string, window time.Duration) (int64, error) {
	if client == nil {
		return 0, ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	n, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}
