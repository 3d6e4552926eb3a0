// file: internals/features/scheduling/sessions/controller/session_controller.go
package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	conflictCtl "trainingcenter_backend/internals/features/scheduling/conflicts/controller"
	conflictModel "trainingcenter_backend/internals/features/scheduling/conflicts/model"
	d "trainingcenter_backend/internals/features/scheduling/sessions/dto"
	"trainingcenter_backend/internals/features/scheduling/sessions/export"
	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
	svc "trainingcenter_backend/internals/features/scheduling/sessions/service"
	helper "trainingcenter_backend/internals/helpers"
	"trainingcenter_backend/internals/helpers/dbtime"
)

type SessionService interface {
	Check(ctx context.Context, candidate m.SessionModel, excludeID *uuid.UUID) ([]conflictModel.Conflict, error)
	Create(ctx context.Context, row *m.SessionModel) error
	Reschedule(ctx context.Context, id uuid.UUID, mv svc.Move) (*m.SessionModel, error)
	Start(ctx context.Context, id uuid.UUID) (*m.SessionModel, error)
	Complete(ctx context.Context, id uuid.UUID, topics string) (*m.SessionModel, error)
	Cancel(ctx context.Context, id uuid.UUID) (*m.SessionModel, error)
	Postpone(ctx context.Context, id uuid.UUID, mv svc.Move) (*m.SessionModel, *m.SessionModel, error)
	Materialize(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) (*svc.MaterializeResult, error)
	Get(ctx context.Context, id uuid.UUID) (*m.SessionModel, error)
	List(ctx context.Context, f svc.ListFilter) ([]m.SessionModel, error)
}

type SessionController struct {
	Svc      SessionService
	Validate *validator.Validate
}

func New(s SessionService, v *validator.Validate) *SessionController {
	return &SessionController{Svc: s, Validate: v}
}

/* =========================
   Helpers
========================= */

// bind parses and validates the body; ok=false means the response is written.
func (ctl *SessionController) bind(c *fiber.Ctx, req any) (ok bool, err error) {
	if err := c.BodyParser(req); err != nil {
		return false, helper.JsonError(c, http.StatusBadRequest, "invalid body: "+err.Error())
	}
	if n, isNorm := req.(interface{ Normalize() }); isNorm {
		n.Normalize()
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return false, helper.JsonValidationError(c, helper.ValidationErrors(err))
	}
	return true, nil
}

func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, svc.ErrSamePostponeDate),
		errors.Is(err, svc.ErrWindowInverted),
		errors.Is(err, svc.ErrWindowTooLarge):
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, svc.ErrScheduleNotActive):
		return helper.JsonError(c, http.StatusConflict, err.Error())
	}
	return conflictCtl.WriteError(c, err)
}

func (ctl *SessionController) parseCreate(c *fiber.Ctx) (req d.CreateSessionRequest, row m.SessionModel, ok bool, err error) {
	if ok, err := ctl.bind(c, &req); !ok {
		return req, row, false, err
	}
	row, err = req.ToModel()
	if err != nil {
		return req, row, false, helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	return req, row, true, nil
}

/* =========================
   Booking
========================= */

// POST /sessions/check
func (ctl *SessionController) Check(c *fiber.Ctx) error {
	req, row, ok, err := ctl.parseCreate(c)
	if !ok {
		return err
	}
	if row.SessionType == "" {
		row.SessionType = m.SessionTypeExtra
	}
	if row.SessionMode == "" {
		row.SessionMode = m.SessionModeOnsite
	}
	conflicts, err := ctl.Svc.Check(c.UserContext(), row, req.ExcludeID)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonOK(c, "session check", conflictCtl.NewReport(conflicts))
}

// POST /sessions
func (ctl *SessionController) Create(c *fiber.Ctx) error {
	_, row, ok, err := ctl.parseCreate(c)
	if !ok {
		return err
	}
	if err := ctl.Svc.Create(c.UserContext(), &row); err != nil {
		return writeError(c, err)
	}
	return helper.JsonCreated(c, "session created", d.FromModel(row))
}

// PATCH /sessions/:id/reschedule
func (ctl *SessionController) Reschedule(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	var req d.MoveSessionRequest
	if ok, err := ctl.bind(c, &req); !ok {
		return err
	}
	mv, err := req.ToMove()
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	row, err := ctl.Svc.Reschedule(c.UserContext(), id, mv)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonUpdated(c, "session rescheduled", d.FromModel(*row))
}

// PATCH /sessions/:id/postpone
func (ctl *SessionController) Postpone(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	var req d.MoveSessionRequest
	if ok, err := ctl.bind(c, &req); !ok {
		return err
	}
	mv, err := req.ToMove()
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	orig, makeUp, err := ctl.Svc.Postpone(c.UserContext(), id, mv)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonUpdated(c, "session postponed", fiber.Map{
		"session": d.FromModel(*orig),
		"make_up": d.FromModel(*makeUp),
	})
}

/* =========================
   Status
========================= */

// PATCH /sessions/:id/start
func (ctl *SessionController) Start(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	row, err := ctl.Svc.Start(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonUpdated(c, "session started", d.FromModel(*row))
}

// PATCH /sessions/:id/complete
func (ctl *SessionController) Complete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	var req d.CompleteSessionRequest
	if ok, err := ctl.bind(c, &req); !ok {
		return err
	}
	row, err := ctl.Svc.Complete(c.UserContext(), id, req.Topics)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonUpdated(c, "session completed", d.FromModel(*row))
}

// PATCH /sessions/:id/cancel
func (ctl *SessionController) Cancel(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	row, err := ctl.Svc.Cancel(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonUpdated(c, "session cancelled", d.FromModel(*row))
}

/* =========================
   Materialize
========================= */

// POST /schedules/:id/materialize
func (ctl *SessionController) Materialize(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	var req d.MaterializeRequest
	if ok, err := ctl.bind(c, &req); !ok {
		return err
	}
	from, to, err := req.Window()
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	res, err := ctl.Svc.Materialize(c.UserContext(), id, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return helper.JsonCreated(c, "sessions materialized", fiber.Map{
		"created":  d.FromModels(res.Created),
		"existing": res.Existing,
		"skipped":  res.Skipped,
	})
}

/* =========================
   Reads
========================= */

// GET /sessions/:id
func (ctl *SessionController) Get(c *fiber.Ctx) error {
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

// parseListFilter reads the shared listing query: from, to, classroom,
// group_id, schedule_id and a comma separated status list.
func parseListFilter(c *fiber.Ctx) (svc.ListFilter, error) {
	var f svc.ListFilter
	for _, p := range []struct {
		key string
		dst **time.Time
	}{{"from", &f.From}, {"to", &f.To}} {
		if v := strings.TrimSpace(c.Query(p.key)); v != "" {
			t, err := dbtime.ParseDate(v)
			if err != nil {
				return f, err
			}
			*p.dst = &t
		}
	}
	for _, p := range []struct {
		key string
		dst **uuid.UUID
	}{{"group_id", &f.GroupID}, {"schedule_id", &f.ScheduleID}} {
		id, err := helper.ParseUUIDQuery(c, p.key)
		if err != nil {
			return f, err
		}
		*p.dst = id
	}
	if v := strings.TrimSpace(c.Query("classroom")); v != "" {
		room, err := roomModel.ParseClassroom(v)
		if err != nil {
			return f, err
		}
		f.Classroom = &room
	}
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		for _, part := range strings.Split(v, ",") {
			st := m.SessionStatus(strings.ToUpper(strings.TrimSpace(part)))
			if !st.Valid() {
				return f, fmt.Errorf("invalid status %q", part)
			}
			f.Statuses = append(f.Statuses, st)
		}
	}
	return f, nil
}

// GET /sessions?from=&to=&classroom=&group_id=&schedule_id=&status=SCHEDULED,IN_PROGRESS
func (ctl *SessionController) List(c *fiber.Ctx) error {
	f, err := parseListFilter(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	rows, err := ctl.Svc.List(c.UserContext(), f)
	if err != nil {
		return helper.WritePGError(c, err)
	}
	return helper.JsonList(c, "ok", d.FromModels(rows), len(rows))
}

// GET /sessions/export?from=&to=... same filters as List, answered as a
// timetable workbook with one sheet per classroom.
func (ctl *SessionController) Export(c *fiber.Ctx) error {
	f, err := parseListFilter(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if f.From == nil || f.To == nil {
		return helper.JsonError(c, http.StatusBadRequest, "from and to are required")
	}
	if f.To.Sub(*f.From) > svc.MaxMaterializeDays*24*time.Hour {
		return helper.JsonError(c, http.StatusBadRequest, svc.ErrWindowTooLarge.Error())
	}
	rows, err := ctl.Svc.List(c.UserContext(), f)
	if err != nil {
		return helper.WritePGError(c, err)
	}

	var buf bytes.Buffer
	if err := export.WriteTimetable(&buf, rows); err != nil {
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
	name := fmt.Sprintf("timetable_%s_%s.xlsx", f.From.Format(dbtime.DateLayout), f.To.Format(dbtime.DateLayout))
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+name)
	return c.Send(buf.Bytes())
}
