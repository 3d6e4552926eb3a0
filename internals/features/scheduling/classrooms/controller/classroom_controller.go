// file: internals/features/scheduling/classrooms/controller/classroom_controller.go
package controller

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	m "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	helper "trainingcenter_backend/internals/helpers"
)

// List: GET /classrooms (static catalog)
func List(c *fiber.Ctx) error {
	all := m.All()
	return helper.JsonList(c, "ok", all, len(all))
}

// Get: GET /classrooms/:code
func Get(c *fiber.Ctx) error {
	room, err := m.ParseClassroom(c.Params("code"))
	if err != nil {
		return helper.JsonError(c, http.StatusNotFound, err.Error())
	}
	return helper.JsonOK(c, "ok", room.Info())
}
