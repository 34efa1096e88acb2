package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"swapdmarket/pkg/errors"
	"swapdmarket/pkg/logger"
)

type Limiter interface {
	Allow(key, action string) (bool, time.Duration)
}

// RateLimit throttles requests per client IP.
func RateLimit(limiter Limiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			ok, wait := limiter.Allow(ip, action)
			if !ok {
				retry := int(wait.Seconds()) + 1
				logger.Warn("RATE LIMIT: blocked %s from %s (retry in %ds)", action, ip, retry)
				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				return errors.TooManyRequests("Rate limit exceeded", retry)
			}
			return next(c)
		}
	}
}
