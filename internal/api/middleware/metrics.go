package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/useractivity/analytics/internal/api/metrics"
	"github.com/useractivity/analytics/internal/core/domain"
)

// RequestMetrics records request counts and latency per route. It runs before
// the central error handler, so the response status for failed requests is
// derived from the error itself, mirroring the handler's mapping.
func RequestMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			method := c.Request().Method
			status := statusFor(err, c.Response().Status)

			metrics.HTTPRequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(path, method).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

func statusFor(err error, committed int) int {
	if err == nil {
		return committed
	}

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNoSessions):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
