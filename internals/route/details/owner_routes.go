package details

import (
	"github.com/gofiber/fiber/v2"

	"churchfinder_backend/internals/features/churches/approval"
)

// SuperAdminRoutes mounts the review surface under /api/o. The caller
// applies both the auth middleware and the super_admin role gate.
func SuperAdminRoutes(o fiber.Router, deps *Deps) {
	ctrl := approval.NewController(deps.DB, deps.Approval)

	o.Get("/churches", ctrl.ListAll)
	o.Get("/churches/pending", ctrl.ListPending)
	o.Post("/churches/:id/approve", ctrl.Approve)
	o.Post("/churches/:id/reject", ctrl.Reject)
	o.Delete("/churches/:id", ctrl.Delete)
}
