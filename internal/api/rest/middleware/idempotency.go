package middleware

import (
	"context"
	"encoding/json"
	"time"

	"github.com/SundayYogurt/onboarding_service/pkg/logger"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	idempotencyTTL    = 24 * time.Hour
	idempotencyPrefix = "idempotency:"
)

// IdempotencyCache stores finished responses by idempotency key.
type IdempotencyCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type RedisCache struct {
	client *redis.Client
	log    *logger.Logger
}

func NewRedisCache(addr, password string, log *logger.Logger) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &RedisCache{client: rdb, log: log}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetBytes(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	} else if err != nil {
		c.log.Error("redis get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

func (c *RedisCache) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.log.Error("redis set error", "key", key, "error", err)
	}
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Idempotency replays the stored response for a repeated Idempotency-Key.
// Only successful responses are stored.
func Idempotency(cache IdempotencyCache, log *logger.Logger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		key := ctx.Get(HeaderIdempotencyKey)
		if key == "" || cache == nil {
			return ctx.Next()
		}
		cacheKey := idempotencyPrefix + ctx.Path() + ":" + key

		if raw, ok := cache.GetBytes(ctx.UserContext(), cacheKey); ok {
			var cached cachedResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				log.Info("returning cached response", "idempotency_key", key)
				ctx.Set(HeaderReplayed, "true")
				ctx.Set(fiber.HeaderContentType, cached.ContentType)
				return ctx.Status(cached.Status).Send(cached.Body)
			}
			log.Warn("discarding unreadable cached response", "idempotency_key", key)
		}

		if err := ctx.Next(); err != nil {
			return err
		}

		status := ctx.Response().StatusCode()
		if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
			return nil
		}
		data, err := json.Marshal(cachedResponse{
			Status:      status,
			ContentType: string(ctx.Response().Header.ContentType()),
			Body:        append([]byte(nil), ctx.Response().Body()...),
		})
		if err != nil {
			log.Error("marshal cached response failed", "error", err)
			return nil
		}
		cache.SetBytes(ctx.UserContext(), cacheKey, data, idempotencyTTL)
		return nil
	}
}
