package ratelimit

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// Limiter is a redis-backed fixed-window rate limiter keyed by client IP.
type Limiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

// NewLimiter creates a limiter allowing limit requests per window.
func NewLimiter(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{
		redis:  client,
		limit:  limit,
		window: window,
	}
}

// Middleware returns an echo middleware enforcing the limit. Redis
// failures let the request through: throttling is best-effort and must
// not take the API down with it.
func (l *Limiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("%s%s:%d", rateLimitPrefix, c.RealIP(), time.Now().Unix()/int64(l.window.Seconds()))

			count, err := l.redis.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if count == 1 {
				l.redis.Expire(ctx, key, l.window)
			}
			if count > int64(l.limit) {
				return echo.NewHTTPError(http.StatusServiceUnavailable)
			}

			return next(c)
		}
	}
}
