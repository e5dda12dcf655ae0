package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	applogger "NextWorth/pkg/logger"
)

// Recover returns recovery middleware. A panic in a handler is logged with its
// stack and answered with the opaque 500 body.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					perr, ok := r.(error)
					if !ok {
						perr = fmt.Errorf("%v", r)
					}
					if l != nil {
						l.Error("panic recovered",
							applogger.Error(perr),
							applogger.String("path", c.Request().URL.Path),
							applogger.String("request_id", RequestIDFrom(c)),
							applogger.String("stack", string(debug.Stack())),
						)
					}
					if !c.Response().Committed {
						err = c.JSON(http.StatusInternalServerError, map[string]string{
							"error": "internal server error",
						})
					}
				}
			}()
			return next(c)
		}
	}
}
