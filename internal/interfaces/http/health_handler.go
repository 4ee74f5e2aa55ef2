package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health answers 200 when the store responds, 503 otherwise.
func Health(service string, store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if store != nil {
			if err := store.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded", "service": service, "database": "unreachable",
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service, "database": "ok"})
	}
}
