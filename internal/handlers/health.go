// Package handlers contains the HTTP route handler functions for the Golf
// Trip API. Each handler corresponds to one endpoint: it reads the request,
// loads what the scoring engine needs, calls into internal/engine, and writes
// a response.
package handlers

import "github.com/gofiber/fiber/v2"

// HealthCheck handles GET /health: a lightweight liveness probe for load
// balancers and container orchestration — no database, no auth.
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
