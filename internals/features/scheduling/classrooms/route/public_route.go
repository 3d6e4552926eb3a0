// file: internals/features/scheduling/classrooms/route/public_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	ctl "trainingcenter_backend/internals/features/scheduling/classrooms/controller"
)

func ClassroomPublicRoutes(public fiber.Router) {
	grp := public.Group("/classrooms")
	grp.Get("/", ctl.List)
	grp.Get("/:code", ctl.Get)
}
