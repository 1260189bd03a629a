package middleware

import (
	"errors"
	"time"

	"zennexify/internal/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request count, latency and in-flight requests. Requests
// for the metrics endpoint itself are not recorded.
func Metrics(m *metrics.Metrics, skipPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == skipPath {
			return c.Next()
		}

		done := m.RequestStarted()
		defer done()
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		m.ObserveRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
