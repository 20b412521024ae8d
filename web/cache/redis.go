// Package cache holds the optional Redis connection used for sessions and
// the course listing cache. It runs against an external server or an
// in-process miniredis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/confetti-cuisine/confetti/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// EmbeddedAddr selects the in-process server.
const EmbeddedAddr = "embedded"

const opTimeout = 2 * time.Second

var ErrNotInitialized = errors.New("redis client not initialized")

var (
	client    *redis.Client
	miniRedis *miniredis.Miniredis
)

// InitRedis connects to addr, or starts miniredis when addr is EmbeddedAddr.
func InitRedis(addr string) error {
	if addr == EmbeddedAddr {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("failed to start embedded redis: %w", err)
		}
		miniRedis = mr
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		logger.Info("Embedded redis started on", mr.Addr())
		return nil
	}

	c := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	client = c
	logger.Info("Connected to redis at", addr)
	return nil
}

func GetClient() *redis.Client {
	return client
}

// Enabled reports whether InitRedis has succeeded.
func Enabled() bool {
	return client != nil
}

func Close() error {
	var err error
	if client != nil {
		err = client.Close()
		client = nil
	}
	if miniRedis != nil {
		miniRedis.Close()
		miniRedis = nil
	}
	return err
}
