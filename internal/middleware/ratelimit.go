package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mafgems/api/internal/metrics"
	"github.com/mafgems/api/pkg/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// WindowCounter counts hits on a key inside a fixed window
type WindowCounter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
}

// RedisCounter is a fixed-window counter on INCR + EXPIRE
type RedisCounter struct {
	redis redis.Cmdable
}

func NewRedisCounter(client redis.Cmdable) *RedisCounter {
	return &RedisCounter{redis: client}
}

func (r *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}

	// Set expiration on first request
	if count == 1 {
		r.redis.Expire(ctx, key, window)
		return count, window, nil
	}

	ttl, err := r.redis.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		// A key that lost its expiry would never reset
		r.redis.Expire(ctx, key, window)
		ttl = window
	}
	return count, ttl, nil
}

type RateLimiter struct {
	counter WindowCounter
	log     zerolog.Logger
	metrics *metrics.Metrics
}

// NewRateLimiter creates the limiter; a nil counter disables limiting
func NewRateLimiter(counter WindowCounter, log zerolog.Logger, m *metrics.Metrics) *RateLimiter {
	return &RateLimiter{counter: counter, log: log, metrics: m}
}

// Limit creates a rate limiting middleware keyed by user, or by client IP for anonymous callers
func (rl *RateLimiter) Limit(keyPrefix string, maxRequests int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl == nil || rl.counter == nil || maxRequests <= 0 {
			return c.Next()
		}

		subject := GetUserID(c)
		if subject == "" {
			subject = "ip:" + c.IP()
		}
		key := fmt.Sprintf("ratelimit:%s:%s", keyPrefix, subject)

		count, ttl, err := rl.counter.Hit(c.UserContext(), key, window)
		if err != nil {
			// If Redis fails, allow the request but log the error
			rl.log.Warn().Err(err).Str("key", key).Msg("[RateLimit] counter unavailable")
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(maxRequests))

		if count > int64(maxRequests) {
			rl.metrics.IncRateLimited(keyPrefix)
			c.Set("X-RateLimit-Remaining", "0")
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(ttl.Seconds())))
			return response.RateLimited(c)
		}

		c.Set("X-RateLimit-Remaining", strconv.Itoa(maxRequests-int(count)))
		return c.Next()
	}
}

// VideoLimit limits jewelry video submissions per hour
func (rl *RateLimiter) VideoLimit(maxPerHour int) fiber.Handler {
	return rl.Limit("video", maxPerHour, time.Hour)
}

// UploadLimit limits reference image uploads per hour
func (rl *RateLimiter) UploadLimit(maxPerHour int) fiber.Handler {
	return rl.Limit("upload", maxPerHour, time.Hour)
}
