package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"churchfinder_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain: recovery first so a panic
// anywhere below still answers 500, then CORS, request logging, and the
// global rate limit.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
