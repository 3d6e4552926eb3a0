// file: internals/features/scheduling/schedules/route/admin_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	ctl "trainingcenter_backend/internals/features/scheduling/schedules/controller"
)

// ScheduleAdminRoutes: weekly slot management under /api/a
func ScheduleAdminRoutes(admin fiber.Router, s ctl.ScheduleService, v *validator.Validate) {
	h := ctl.New(s, v)

	grp := admin.Group("/schedules")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Post("/check", h.Check)
	grp.Get("/:id", h.Get)
	grp.Patch("/:id", h.Patch)
	grp.Patch("/:id/activate", h.Activate)
	grp.Patch("/:id/deactivate", h.Deactivate)
	grp.Delete("/:id", h.Delete)
}
