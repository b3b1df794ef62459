package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

// redisStorage adapts the shared redis connection to fiber.Storage so
// limiter counters survive restarts and are shared between replicas.
type redisStorage struct {
	rds    *redis.Client
	prefix string
}

func newRedisStorage(rds *redis.Client) *redisStorage {
	return &redisStorage{
		rds:    rds,
		prefix: "ratelimit:",
	}
}

func (s *redisStorage) Get(key string) ([]byte, error) {
	val, err := s.rds.Get(context.Background(), s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *redisStorage) Set(key string, val []byte, exp time.Duration) error {
	return s.rds.Set(context.Background(), s.prefix+key, val, exp).Err()
}

func (s *redisStorage) Delete(key string) error {
	return s.rds.Del(context.Background(), s.prefix+key).Err()
}

func (s *redisStorage) Reset() error {
	iter := s.rds.Scan(context.Background(), 0, s.prefix+"*", 0).Iterator()
	for iter.Next(context.Background()) {
		if err := s.rds.Del(context.Background(), iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (s *redisStorage) Close() error {
	// lifecycle of the client belongs to the factory
	return nil
}

// NewRateLimiter builds the per-IP limiter middleware. Counters live in
// redis with the configured window as TTL.
func NewRateLimiter(app *config.AppConfig, rds *redis.Client) fiber.Handler {
	expiration := time.Minute
	if app.RateLimit.Expiration != nil && *app.RateLimit.Expiration > 0 {
		expiration = *app.RateLimit.Expiration
	}

	cfg := limiter.Config{
		Max:        app.RateLimit.Max,
		Expiration: expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.SendError(c, fiber.StatusTooManyRequests, "too many requests")
		},
	}
	if rds != nil {
		cfg.Storage = newRedisStorage(rds)
	}

	return limiter.New(cfg)
}
