package details

import (
	"github.com/gofiber/fiber/v2"

	assistantController "churchfinder_backend/internals/features/assistant/controller"
	churchController "churchfinder_backend/internals/features/churches/churches/controller"
	eventController "churchfinder_backend/internals/features/churches/events/controller"
	"churchfinder_backend/internals/middlewares"
)

// PublicRoutes mounts the anonymous browse surface under /api/public:
// church search, church detail, events and the faith assistant.
func PublicRoutes(api fiber.Router, deps *Deps) {
	churches := churchController.NewChurchController(deps.DB, deps.Validate, deps.Geocoder, deps.Images, deps.Authority)
	events := eventController.NewEventController(deps.DB, deps.Validate, deps.Images, deps.Authority)
	assistant := assistantController.NewAssistantController(deps.Assistant)

	pub := api.Group("/public")
	pub.Get("/churches", churches.Search)
	pub.Get("/churches/:id", churches.GetByID)
	pub.Get("/churches/:id/events", events.ListByChurch)
	pub.Get("/events", events.List)
	pub.Get("/events/:id", events.GetByID)
	pub.Post("/assistant/ask", middlewares.AssistantRateLimiter(), assistant.Ask)
}
