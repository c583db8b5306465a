package echohttp

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// request logging middleware. Logs the matched route next to the raw path
// so project and application requests aggregate per endpoint instead of
// per uuid.
func logger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			slog.Info("handled request",
				"method", c.Request().Method,
				"route", c.Path(),
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"duration", time.Since(start),
			)
			return err
		}
	}
}
