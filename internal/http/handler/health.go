package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Check is one dependency probed by HealthCheck.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthCheck pings every dependency and reports 503 when one is down.
func HealthCheck(checks ...Check) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		for _, check := range checks {
			if err := check.Ping(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", check.Name+" unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
