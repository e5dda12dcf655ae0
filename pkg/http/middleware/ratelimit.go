package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	applogger "NextWorth/pkg/logger"
)

// Allower decides whether a request identified by key may proceed.
type Allower interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects requests over the limit with 429. Limiter failures are
// logged and the request is let through.
func RateLimit(a Allower, l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()
			ok, err := a.Allow(c.Request().Context(), key)
			if err != nil {
				if l != nil {
					l.Warn("rate limiter unavailable, allowing request",
						applogger.Error(err),
						applogger.String("key", key),
					)
				}
				return next(c)
			}
			if !ok {
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "rate limit exceeded",
				})
			}
			return next(c)
		}
	}
}
