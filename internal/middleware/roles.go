// roles.go — role-based access control. The app has two global roles, admin
// and user; trip-level permissions (organizer vs player) are checked in the
// handlers against trip_players.
package middleware

import "github.com/gofiber/fiber/v2"

// RequireRole returns a middleware that allows only users whose global role
// matches one of the provided roles, responding 403 Forbidden otherwise.
//
//	api.Post("/courses", middleware.RequireRole("admin"), handlers.CreateCourse(db))
//
// RequireRole must run AFTER Auth, because Auth populates the "userRole"
// value in the request context.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals("userRole").(string)
		if !ok || userRole == "" {
			// No role means Auth wasn't applied or failed silently — deny with
			// 403 (not 401: the user may be authenticated but roleless).
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "forbidden",
			})
		}
		for _, role := range roles {
			if userRole == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "insufficient permissions",
		})
	}
}
