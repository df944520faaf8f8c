package details

import (
	"github.com/gofiber/fiber/v2"

	adminController "churchfinder_backend/internals/features/churches/admins/controller"
	churchController "churchfinder_backend/internals/features/churches/churches/controller"
	eventController "churchfinder_backend/internals/features/churches/events/controller"
)

// ChurchAdminRoutes mounts the church-management surface under /api/a. Row
// ownership is enforced per request through the authority resolver, so the
// group only needs authentication, not a role gate: a plain user simply
// manages zero churches.
func ChurchAdminRoutes(a fiber.Router, deps *Deps) {
	myChurches := adminController.NewAdminController(deps.DB)
	churches := churchController.NewChurchController(deps.DB, deps.Validate, deps.Geocoder, deps.Images, deps.Authority)
	events := eventController.NewEventController(deps.DB, deps.Validate, deps.Images, deps.Authority)

	a.Get("/churches", myChurches.GetMyChurches)
	a.Put("/churches/:id", churches.Update)
	a.Patch("/churches/:id/image", churches.UploadImage)
	a.Post("/churches/:id/verification-document", churches.UploadVerificationDocument)
	a.Post("/churches/:id/clergy", churches.AddClergy)
	a.Delete("/churches/:id/clergy/:clergyId", churches.RemoveClergy)

	a.Post("/churches/:id/events", events.Create)
	a.Put("/events/:eventId", events.Update)
	a.Delete("/events/:eventId", events.Delete)
	a.Patch("/events/:eventId/image", events.UploadImage)
}
