// file: internals/features/scheduling/conflicts/controller/respond.go
package controller

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	conflictModel "trainingcenter_backend/internals/features/scheduling/conflicts/model"
	helper "trainingcenter_backend/internals/helpers"
)

// Report is the body of a dry-run check.
type Report struct {
	Conflicts []conflictModel.Conflict     `json:"conflicts"`
	Count     int                          `json:"count"`
	Kinds     []conflictModel.ConflictType `json:"kinds"`
	Blocking  bool                         `json:"blocking"`
}

func NewReport(conflicts []conflictModel.Conflict) Report {
	if conflicts == nil {
		conflicts = []conflictModel.Conflict{}
	}
	return Report{
		Conflicts: conflicts,
		Count:     len(conflicts),
		Kinds:     conflictModel.Kinds(conflicts),
		Blocking:  len(conflicts) > 0,
	}
}

// WriteError renders booking failures with their structured payload and
// falls back to storage error mapping for everything else.
func WriteError(c *fiber.Ctx, err error) error {
	be, ok := conflictModel.AsBookingError(err)
	if !ok {
		return helper.WritePGError(c, err)
	}
	switch be.Kind {
	case conflictModel.KindScheduleConflict:
		return helper.JsonConflict(c, string(be.Kind), be.Message, fiber.Map{
			"conflicts": be.Conflicts,
			"count":     be.Count,
		})
	case conflictModel.KindSessionConflict:
		return helper.JsonConflict(c, string(be.Kind), be.Message, fiber.Map{
			"conflict_type": be.ConflictType,
			"detail":        be.Detail,
			"conflicts":     be.Conflicts,
		})
	case conflictModel.KindInvalidSessionState:
		return helper.JsonErrorWithCode(c, http.StatusUnprocessableEntity, string(be.Kind), be.Message, fiber.Map{
			"from": be.From,
			"to":   be.To,
		})
	default:
		return helper.JsonErrorWithCode(c, http.StatusUnprocessableEntity, string(be.Kind), be.Message, nil)
	}
}
