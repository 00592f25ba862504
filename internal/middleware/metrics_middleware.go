package middleware

import (
	"errors"
	"time"

	"github.com/arzan03/bssm-backend/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

// Metrics records request counts, latency and in-flight requests.
// Requests that match no route share the "unmatched" path label.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		metrics.IncrementInFlight()
		defer metrics.DecrementInFlight()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		path := c.Route().Path
		if status == fiber.StatusNotFound && err != nil {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Method(), path, status, time.Since(start))
		return err
	}
}
