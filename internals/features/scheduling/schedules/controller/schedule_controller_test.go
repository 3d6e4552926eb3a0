package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	conflictModel "trainingcenter_backend/internals/features/scheduling/conflicts/model"
	conflictSvc "trainingcenter_backend/internals/features/scheduling/conflicts/service"
	m "trainingcenter_backend/internals/features/scheduling/schedules/model"
	svc "trainingcenter_backend/internals/features/scheduling/schedules/service"
	"trainingcenter_backend/internals/features/scheduling/validation"
	"trainingcenter_backend/internals/helpers/dbtime"
)

/* =========================
   In-memory service on top of the real checker
========================= */

type memSchedules struct {
	rows    []m.ScheduleModel
	checker *conflictSvc.Checker
}

func (s *memSchedules) ListActiveByDay(_ context.Context, day dbtime.DayOfWeek, excludeID *uuid.UUID) ([]m.ScheduleModel, error) {
	var out []m.ScheduleModel
	for _, r := range s.rows {
		if r.ScheduleDay == day && r.ScheduleIsActive && (excludeID == nil || r.ScheduleID != *excludeID) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memSchedules) Check(ctx context.Context, c m.ScheduleModel, excludeID *uuid.UUID) ([]conflictModel.Conflict, error) {
	return s.checker.CheckScheduleConflict(ctx, c, excludeID)
}

func (s *memSchedules) Create(ctx context.Context, row *m.ScheduleModel) error {
	row.ScheduleID = uuid.New()
	row.ScheduleIsActive = true
	if err := s.checker.AssertNoScheduleConflict(ctx, *row, nil); err != nil {
		return err
	}
	s.rows = append(s.rows, *row)
	return nil
}

func (s *memSchedules) Update(ctx context.Context, id uuid.UUID, patch func(*m.ScheduleModel)) (*m.ScheduleModel, error) {
	for i := range s.rows {
		if s.rows[i].ScheduleID != id {
			continue
		}
		row := s.rows[i]
		patch(&row)
		if row.ScheduleIsActive {
			if err := s.checker.AssertNoScheduleConflict(ctx, row, &row.ScheduleID); err != nil {
				return nil, err
			}
		}
		s.rows[i] = row
		return &row, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memSchedules) Delete(_ context.Context, id uuid.UUID) (*m.ScheduleModel, error) {
	for i, r := range s.rows {
		if r.ScheduleID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memSchedules) Get(_ context.Context, id uuid.UUID) (*m.ScheduleModel, error) {
	for _, r := range s.rows {
		if r.ScheduleID == id {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memSchedules) List(_ context.Context, _ svc.ListFilter) ([]m.ScheduleModel, error) {
	return s.rows, nil
}

type memGroups map[uuid.UUID]uuid.UUID // group -> teacher

func (g memGroups) TeacherIDOf(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	return g[id], nil
}
func (g memGroups) SubjectIDOf(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	return id, nil
}
func (g memGroups) EnrolledStudentIDs(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func newTestApp(groups memGroups) (*fiber.App, *memSchedules) {
	store := &memSchedules{}
	store.checker = conflictSvc.NewChecker(store, nil, groups, groups)

	app := fiber.New()
	mount(app, store)
	return app, store
}

// mount mirrors the admin route table without the /api/a prefix.
func mount(app *fiber.App, s ScheduleService) {
	h := New(s, validation.New())
	app.Post("/schedules", h.Create)
	app.Post("/schedules/check", h.Check)
	app.Patch("/schedules/:id", h.Patch)
	app.Patch("/schedules/:id/deactivate", h.Deactivate)
	app.Patch("/schedules/:id/activate", h.Activate)
	app.Get("/schedules/:id", h.Get)
}

type envelope struct {
	Success   bool            `json:"success"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
	Errors    map[string][]string
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return resp.StatusCode, env
}

func scheduleBody(group uuid.UUID, day, start, end, room string) string {
	return `{"group_id":"` + group.String() + `","day_of_week":"` + day + `","start_time":"` + start +
		`","end_time":"` + end + `","classroom":"` + room + `"}`
}

/* =========================
   Tests
========================= */

func TestCreateThenOverlapIsRejected(t *testing.T) {
	ga, gb := uuid.New(), uuid.New()
	app, _ := newTestApp(memGroups{ga: uuid.New(), gb: uuid.New()})

	status, env := do(t, app, http.MethodPost, "/schedules", scheduleBody(ga, "MONDAY", "09:00", "11:00", "PHYSICAL_1"))
	if status != fiber.StatusCreated || !env.Success {
		t.Fatalf("create A: status=%d env=%+v", status, env)
	}
	var created struct {
		ID uuid.UUID `json:"schedule_id"`
	}
	_ = json.Unmarshal(env.Data, &created)

	status, env = do(t, app, http.MethodPost, "/schedules", scheduleBody(gb, "monday", "10:00", "12:00", "physical_1"))
	if status != fiber.StatusConflict || env.ErrorCode != "SCHEDULE_CONFLICT" {
		t.Fatalf("create B: status=%d code=%s", status, env.ErrorCode)
	}
	var payload struct {
		Count     int `json:"count"`
		Conflicts []struct {
			Type      string    `json:"conflict_type"`
			BookingID uuid.UUID `json:"booking_id"`
		} `json:"conflicts"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if payload.Count != 1 || payload.Conflicts[0].Type != "CLASSROOM_OCCUPIED" || payload.Conflicts[0].BookingID != created.ID {
		t.Fatalf("unexpected payload %+v", payload)
	}

	// different room, different teacher: fine
	status, _ = do(t, app, http.MethodPost, "/schedules", scheduleBody(gb, "MONDAY", "10:00", "12:00", "PHYSICAL_2"))
	if status != fiber.StatusCreated {
		t.Fatalf("create B elsewhere: status=%d", status)
	}
}

func TestCreateValidation(t *testing.T) {
	g := uuid.New()
	app, _ := newTestApp(memGroups{g: uuid.New()})

	status, env := do(t, app, http.MethodPost, "/schedules", scheduleBody(g, "FUNDAY", "09:00", "11:00", "PHYSICAL_1"))
	if status != fiber.StatusUnprocessableEntity || env.ErrorCode != "VALIDATION_ERROR" {
		t.Fatalf("bad day: status=%d code=%s", status, env.ErrorCode)
	}

	status, env = do(t, app, http.MethodPost, "/schedules", scheduleBody(g, "MONDAY", "11:00", "11:00", "PHYSICAL_1"))
	if status != fiber.StatusUnprocessableEntity || env.ErrorCode != "INVALID_TIME_RANGE" {
		t.Fatalf("empty range: status=%d code=%s", status, env.ErrorCode)
	}

	status, _ = do(t, app, http.MethodPost, "/schedules", `{"group_id":`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("broken json: status=%d", status)
	}
}

func TestDryRunCheckDoesNotWrite(t *testing.T) {
	ga, gb := uuid.New(), uuid.New()
	teacher := uuid.New()
	app, store := newTestApp(memGroups{ga: teacher, gb: teacher})

	do(t, app, http.MethodPost, "/schedules", scheduleBody(ga, "FRIDAY", "13:00", "15:00", "VIRTUAL"))

	status, env := do(t, app, http.MethodPost, "/schedules/check", scheduleBody(gb, "FRIDAY", "14:00", "16:00", "VIRTUAL"))
	if status != fiber.StatusOK {
		t.Fatalf("check: status=%d", status)
	}
	var report struct {
		Count    int      `json:"count"`
		Kinds    []string `json:"kinds"`
		Blocking bool     `json:"blocking"`
	}
	_ = json.Unmarshal(env.Data, &report)
	if !report.Blocking || report.Count != 1 || report.Kinds[0] != "TEACHER_CONFLICT" {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(store.rows) != 1 {
		t.Fatalf("dry run wrote %d rows", len(store.rows))
	}
}

func TestPatchOwnSlotAndReactivation(t *testing.T) {
	ga, gb := uuid.New(), uuid.New()
	app, store := newTestApp(memGroups{ga: uuid.New(), gb: uuid.New()})

	do(t, app, http.MethodPost, "/schedules", scheduleBody(ga, "TUESDAY", "09:00", "11:00", "PHYSICAL_1"))
	id := store.rows[0].ScheduleID

	// stretching the slot over its own time never conflicts with itself
	status, _ := do(t, app, http.MethodPatch, "/schedules/"+id.String(), `{"end_time":"11:30"}`)
	if status != fiber.StatusOK {
		t.Fatalf("patch: status=%d", status)
	}

	status, _ = do(t, app, http.MethodPatch, "/schedules/"+id.String()+"/deactivate", ``)
	if status != fiber.StatusOK {
		t.Fatalf("deactivate: status=%d", status)
	}
	// freed slot can be taken
	status, _ = do(t, app, http.MethodPost, "/schedules", scheduleBody(gb, "TUESDAY", "10:00", "12:00", "PHYSICAL_1"))
	if status != fiber.StatusCreated {
		t.Fatalf("create over inactive slot: status=%d", status)
	}
	// and reactivation is now a conflict
	status, env := do(t, app, http.MethodPatch, "/schedules/"+id.String()+"/activate", ``)
	if status != fiber.StatusConflict || env.ErrorCode != "SCHEDULE_CONFLICT" {
		t.Fatalf("reactivate: status=%d code=%s", status, env.ErrorCode)
	}
}

func TestGetUnknownIs404(t *testing.T) {
	app, _ := newTestApp(memGroups{})
	status, env := do(t, app, http.MethodGet, "/schedules/"+uuid.NewString(), ``)
	if status != fiber.StatusNotFound || env.ErrorCode != "NOT_FOUND" {
		t.Fatalf("status=%d code=%s", status, env.ErrorCode)
	}
	status, _ = do(t, app, http.MethodGet, "/schedules/not-a-uuid", ``)
	if status != fiber.StatusBadRequest {
		t.Fatalf("status=%d", status)
	}
}
