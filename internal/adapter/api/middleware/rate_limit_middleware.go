package middleware

import (
	"fmt"
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"resqnet/internal/usecase"
	"resqnet/pkg/errors"
	"resqnet/pkg/logger"
	"resqnet/pkg/response"
)

// RateLimit throttles an action per user, or per client IP for Anonymous
// callers. A nil limiter disables throttling.
func RateLimit(limiter usecase.Limiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limiter == nil {
			return next
		}
		return func(c echo.Context) error {
			key := c.RealIP()
			if session := GetSession(c); session != nil {
				key = session.UserID
			}

			allowed, wait := limiter.Allow(key, action)
			if !allowed {
				seconds := int(math.Ceil(wait.Seconds()))
				logger.Warn("RATE LIMIT: %s blocked on %s (retry in %ds)", key, action, seconds)

				c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
				return response.Error(c, errors.TooManyRequests(
					fmt.Sprintf("Rate limit exceeded. Try again in %d seconds", seconds)))
			}
			return next(c)
		}
	}
}
