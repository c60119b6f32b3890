package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	applogger "MarketDash/pkg/logger"
)

// RequestLogging logs every HTTP request at debug level and failed ones at warn.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []applogger.Field{
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote", c.RealIP()),
				applogger.Int("status", c.Response().Status),
				applogger.Duration("duration_ms", time.Since(start)),
			}
			if err != nil || c.Response().Status >= 400 {
				if err != nil {
					fields = append(fields, applogger.Error(err))
				}
				l.Warn("http request", fields...)
				return nil
			}
			l.Debug("http request", fields...)
			return nil
		}
	}
}
