package auth

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRoles gates a route group on the role claim that AuthMiddleware
// stored in Locals. Must be mounted after AuthMiddleware.
func RequireRoles(errorMessage string, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		if role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "You must be signed in")
		}
		if _, ok := allowed[role]; !ok {
			return fiber.NewError(fiber.StatusForbidden, errorMessage)
		}
		return c.Next()
	}
}
