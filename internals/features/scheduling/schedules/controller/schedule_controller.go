// file: internals/features/scheduling/schedules/controller/schedule_controller.go
package controller

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	conflictCtl "trainingcenter_backend/internals/features/scheduling/conflicts/controller"
	conflictModel "trainingcenter_backend/internals/features/scheduling/conflicts/model"
	d "trainingcenter_backend/internals/features/scheduling/schedules/dto"
	m "trainingcenter_backend/internals/features/scheduling/schedules/model"
	svc "trainingcenter_backend/internals/features/scheduling/schedules/service"
	helper "trainingcenter_backend/internals/helpers"
	"trainingcenter_backend/internals/helpers/dbtime"
)

// ScheduleService is what the handlers need from the booking service.
type ScheduleService interface {
	Check(ctx context.Context, candidate m.ScheduleModel, excludeID *uuid.UUID) ([]conflictModel.Conflict, error)
	Create(ctx context.Context, row *m.ScheduleModel) error
	Update(ctx context.Context, id uuid.UUID, patch func(*m.ScheduleModel)) (*m.ScheduleModel, error)
	Delete(ctx context.Context, id uuid.UUID) (*m.ScheduleModel, error)
	Get(ctx context.Context, id uuid.UUID) (*m.ScheduleModel, error)
	List(ctx context.Context, f svc.ListFilter) ([]m.ScheduleModel, error)
}

/* =========================
   Controller & Constructor
========================= */

type ScheduleController struct {
	Svc      ScheduleService
	Validate *validator.Validate
}

func New(s ScheduleService, v *validator.Validate) *ScheduleController {
	return &ScheduleController{Svc: s, Validate: v}
}

/* =========================
   Helpers
========================= */

// parseCreate reports ok=false once it has already written the error response.
func (ctl *ScheduleController) parseCreate(c *fiber.Ctx) (req d.CreateScheduleRequest, row m.ScheduleModel, ok bool, err error) {
	if err := c.BodyParser(&req); err != nil {
		return req, row, false, helper.JsonError(c, http.StatusBadRequest, "invalid body: "+err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return req, row, false, helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	row, err = req.ToModel()
	if err != nil {
		return req, row, false, helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	return req, row, true, nil
}

/* =========================
   Handlers
========================= */

// POST /schedules/check: dry run, never writes.
func (ctl *ScheduleController) Check(c *fiber.Ctx) error {
	req, row, ok, err := ctl.parseCreate(c)
	if !ok {
		return err
	}
	conflicts, err := ctl.Svc.Check(c.UserContext(), row, req.ExcludeID)
	if err != nil {
		return conflictCtl.WriteError(c, err)
	}
	return helper.JsonOK(c, "schedule check", conflictCtl.NewReport(conflicts))
}

// POST /schedules
func (ctl *ScheduleController) Create(c *fiber.Ctx) error {
	_, row, ok, err := ctl.parseCreate(c)
	if !ok {
		return err
	}
	if err := ctl.Svc.Create(c.UserContext(), &row); err != nil {
		zap.L().Debug("schedule create rejected", zap.Error(err))
		return conflictCtl.WriteError(c, err)
	}
	return helper.JsonCreated(c, "schedule created", d.FromModel(row))
}

// PATCH /schedules/:id
func (ctl *ScheduleController) Patch(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	var req d.UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid body: "+err.Error())
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	patch, err := req.Patch()
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	row, err := ctl.Svc.Update(c.UserContext(), id, patch)
	if err != nil {
		return conflictCtl.WriteError(c, err)
	}
	return helper.JsonUpdated(c, "schedule updated", d.FromModel(*row))
}

// PATCH /schedules/:id/activate and /deactivate
func (ctl *ScheduleController) setActive(active bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := helper.ParseUUIDParam(c, "id")
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
		row, err := ctl.Svc.Update(c.UserContext(), id, func(s *m.ScheduleModel) { s.ScheduleIsActive = active })
		if err != nil {
			return conflictCtl.WriteError(c, err)
		}
		return helper.JsonUpdated(c, "schedule updated", d.FromModel(*row))
	}
}

func (ctl *ScheduleController) Activate(c *fiber.Ctx) error   { return ctl.setActive(true)(c) }
func (ctl *ScheduleController) Deactivate(c *fiber.Ctx) error { return ctl.setActive(false)(c) }

// DELETE /schedules/:id (soft)
func (ctl *ScheduleController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	row, err := ctl.Svc.Delete(c.UserContext(), id)
	if err != nil {
		return conflictCtl.WriteError(c, err)
	}
	return helper.JsonDeleted(c, "schedule deleted", d.FromModel(*row))
}

// GET /schedules/:id
func (ctl *ScheduleController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	row, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return helper.WritePGError(c, err)
	}
	return helper.JsonOK(c, "ok", d.FromModel(*row))
}

// GET /schedules?group_id=&day_of_week=&classroom=&active=true
func (ctl *ScheduleController) List(c *fiber.Ctx) error {
	var f svc.ListFilter
	groupID, err := helper.ParseUUIDQuery(c, "group_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	f.GroupID = groupID
	if v := strings.TrimSpace(c.Query("day_of_week")); v != "" {
		day, err := dbtime.ParseDay(v)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
		f.Day = &day
	}
	if v := strings.TrimSpace(c.Query("classroom")); v != "" {
		room, err := roomModel.ParseClassroom(v)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
		f.Classroom = &room
	}
	f.ActiveOnly = c.QueryBool("active", false)

	rows, err := ctl.Svc.List(c.UserContext(), f)
	if err != nil {
		return helper.WritePGError(c, err)
	}
	return helper.JsonList(c, "ok", d.FromModels(rows), len(rows))
}
