package details

import (
	"github.com/gofiber/fiber/v2"

	followController "churchfinder_backend/internals/features/churches/follows/controller"
	"churchfinder_backend/internals/features/churches/registration"
	userController "churchfinder_backend/internals/features/users/user/controller"
)

// UserRoutes mounts the signed-in surface under /api/u: profile, follows
// and the registration wizard. The caller applies the auth middleware.
func UserRoutes(u fiber.Router, deps *Deps) {
	users := userController.NewUserController(deps.DB)
	follows := followController.NewFollowController(deps.DB)
	reg := registration.NewController(deps.Registration, deps.Validate)

	u.Get("/me", users.GetMe)
	u.Put("/me", users.UpdateMe)

	u.Get("/churches/followed", follows.GetFollowed)
	u.Get("/churches/:id/follow", follows.IsFollowing)
	u.Post("/churches/:id/follow", follows.Follow)
	u.Delete("/churches/:id/follow", follows.Unfollow)

	u.Get("/registration", reg.GetDraft)
	u.Post("/registration", reg.GetDraft) // create-or-fetch
	u.Put("/registration", reg.SaveForm)
	u.Post("/registration/advance", reg.Advance)
	u.Post("/registration/back", reg.Back)
	u.Post("/registration/submit", reg.Submit)
}
