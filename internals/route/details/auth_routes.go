package details

import (
	"github.com/gofiber/fiber/v2"

	authController "churchfinder_backend/internals/features/users/auth/controller"
	"churchfinder_backend/internals/middlewares"
)

// AuthRoutes mounts signup/signin/signout under /api/auth.
func AuthRoutes(api fiber.Router, deps *Deps) {
	ctrl := authController.NewAuthController(deps.DB)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/logout", ctrl.Logout)
}
