package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "NextWorth/pkg/logger"
)

// RequestLogging logs one line per HTTP request. 5xx responses are logged at
// error level, 4xx at warn, everything else at debug.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if l == nil {
				return next(c)
			}
			req := c.Request()
			start := time.Now()

			err := next(c)
			if err != nil {
				// let the error handler write the response before reading its status
				c.Error(err)
				err = nil
			}

			res := c.Response()
			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("path", req.URL.Path),
				applogger.Int("status", res.Status),
				applogger.Duration("latency_ms", time.Since(start)),
				applogger.String("remote_ip", c.RealIP()),
				applogger.String("request_id", RequestIDFrom(c)),
			}
			switch {
			case res.Status >= 500:
				l.Error("http request", fields...)
			case res.Status >= 400:
				l.Warn("http request", fields...)
			default:
				l.Debug("http request", fields...)
			}
			return err
		}
	}
}
