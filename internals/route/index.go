package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"churchfinder_backend/internals/constants"
	authMiddleware "churchfinder_backend/internals/middlewares/auth"
	"churchfinder_backend/internals/route/details"
)

// SetupRoutes mounts the whole API surface:
//
//	/api/auth    - signup / signin / signout
//	/api/public  - anonymous browsing (search, detail, events, assistant)
//	/api/u       - signed-in users (profile, follows, registration wizard)
//	/api/a       - church admins (edit church, clergy, events)
//	/api/o       - super admins (review queue, approve/reject, delete)
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	deps := details.BuildDeps(db)
	api := app.Group("/api")

	details.AuthRoutes(api, deps)
	details.PublicRoutes(api, deps)

	user := api.Group("/u", authMiddleware.AuthMiddleware(db))
	details.UserRoutes(user, deps)

	admin := api.Group("/a", authMiddleware.AuthMiddleware(db))
	details.ChurchAdminRoutes(admin, deps)

	owner := api.Group("/o",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.RequireRoles(
			constants.RoleErrorSuperAdmin("church review"),
			constants.RoleSuperAdmin,
		),
	)
	details.SuperAdminRoutes(owner, deps)
}
