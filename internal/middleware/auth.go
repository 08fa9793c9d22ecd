// Package middleware contains HTTP middleware for the Golf Trip API.
// Middleware sits between the HTTP server and route handlers — it runs on
// every request passing through it, which makes it the place for
// cross-cutting concerns like authentication and access control.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/trentd187/golf-trip/internal/config"
	"github.com/trentd187/golf-trip/internal/models"
)

// Claims is the data we expect inside a Clerk JWT payload: the standard
// registered fields plus the custom claims configured in the Clerk dashboard
// JWT template ("role", "email", "name"). Without those template claims the
// role defaults to "user" and email/name fall back to placeholders.
type Claims struct {
	jwt.RegisteredClaims        // Subject = Clerk user ID, ExpiresAt, IssuedAt, etc.
	Role                 string `json:"role"`
	Email                string `json:"email"`
	Name                 string `json:"name"`
}

// Auth returns a Fiber middleware that:
//  1. Validates the JWT from the "Authorization: Bearer <token>" header
//  2. Finds the matching user in our database (creating one on first visit)
//  3. Syncs the user's role from the JWT into the database
//  4. Stores the user's internal UUID and role in the request context
//     (c.Locals) for downstream handlers
func Auth(cfg *config.Config, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid authorization header",
			})
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		// TODO: replace ParseUnverified with full JWKS signature verification.
		// ParseUnverified skips signature checking — fine for development but
		// must be replaced before production.
		token, _, err := jwt.NewParser().ParseUnverified(tokenStr, &Claims{})
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token",
			})
		}

		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid token claims",
			})
		}

		clerkUserID := claims.Subject
		if clerkUserID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token missing subject",
			})
		}

		// Lazy user sync: first authenticated request creates the record,
		// later requests just look it up.
		role := roleFromClaim(claims.Role)

		email := claims.Email
		if email == "" {
			// Deterministic, unique placeholder until the JWT template is set up
			email = fmt.Sprintf("%s@clerk.local", clerkUserID)
		}
		name := claims.Name
		if name == "" {
			name = "User"
		}

		var user models.User
		result := db.Where("clerk_id = ?", clerkUserID).First(&user)
		if result.Error != nil {
			if result.Error != gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "database error",
				})
			}
			user = models.User{
				ClerkID:     &clerkUserID,
				DisplayName: name,
				Email:       email,
				Role:        role,
			}
			if err := db.Create(&user).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to create user record",
				})
			}
		} else if user.Role != role && claims.Role != "" {
			// Role changed in Clerk — keep our copy in sync
			db.Model(&user).Update("role", role)
			user.Role = role
		}

		c.Locals("userID", user.ID.String())
		c.Locals("userRole", string(user.Role))
		return c.Next()
	}
}

// roleFromClaim converts the raw role claim into our typed UserRole,
// defaulting to the least-privileged role when missing or unrecognised.
func roleFromClaim(s string) models.UserRole {
	if s == "admin" {
		return models.UserRoleAdmin
	}
	return models.UserRoleUser
}
