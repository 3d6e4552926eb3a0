// file: internals/features/scheduling/sessions/route/admin_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	ctl "trainingcenter_backend/internals/features/scheduling/sessions/controller"
)

// SessionAdminRoutes: dated occurrences and their lifecycle under /api/a
func SessionAdminRoutes(admin fiber.Router, s ctl.SessionService, v *validator.Validate) {
	h := ctl.New(s, v)

	grp := admin.Group("/sessions")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/export", h.Export)
	grp.Post("/check", h.Check)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id/reschedule", h.Reschedule)
	grp.Patch("/:id/postpone", h.Postpone)
	grp.Patch("/:id/start", h.Start)
	grp.Patch("/:id/complete", h.Complete)
	grp.Patch("/:id/cancel", h.Cancel)

	admin.Post("/schedules/:id/materialize", h.Materialize)
}
