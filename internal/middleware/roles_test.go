package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// roleApp stands in for Auth by seeding userRole directly, then gates one
// route exactly the way main.go does.
func roleApp(role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("userRole", role)
		}
		return c.Next()
	})
	app.Post("/courses", RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	return app
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name string
		role string
		want int
	}{
		{"admin allowed", "admin", fiber.StatusCreated},
		{"regular user denied", "user", fiber.StatusForbidden},
		{"missing role denied", "", fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := roleApp(tc.role).Test(httptest.NewRequest("POST", "/courses", nil))
			require.NoError(t, err)
			require.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
