// file: internals/features/scheduling/conflicts/service/checker.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	conflictModel "trainingcenter_backend/internals/features/scheduling/conflicts/model"
	schedModel "trainingcenter_backend/internals/features/scheduling/schedules/model"
	sessModel "trainingcenter_backend/internals/features/scheduling/sessions/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

// ScheduleLookup returns active schedules of one weekday (all classrooms),
// minus excludeID.
type ScheduleLookup interface {
	ListActiveByDay(ctx context.Context, day dbtime.DayOfWeek, excludeID *uuid.UUID) ([]schedModel.ScheduleModel, error)
}

// SessionLookup returns SCHEDULED/IN_PROGRESS sessions of one date
// (all classrooms), minus excludeID.
type SessionLookup interface {
	ListLiveByDate(ctx context.Context, date time.Time, excludeID *uuid.UUID) ([]sessModel.SessionModel, error)
}

// Checker orchestrates conflict detection. It never writes: the caller
// wraps check + persist in one transaction holding the day lock.
type Checker struct {
	Schedules   ScheduleLookup
	Sessions    SessionLookup
	Groups      GroupDirectory
	Enrollments EnrollmentDirectory
}

func NewChecker(schedules ScheduleLookup, sessions SessionLookup, groups GroupDirectory, enrollments EnrollmentDirectory) *Checker {
	return &Checker{Schedules: schedules, Sessions: sessions, Groups: groups, Enrollments: enrollments}
}

// WithSchedules returns a copy reading schedules through another store
// (usually the transaction-bound one).
func (c *Checker) WithSchedules(l ScheduleLookup) *Checker {
	cp := *c
	cp.Schedules = l
	return &cp
}

func (c *Checker) WithSessions(l SessionLookup) *Checker {
	cp := *c
	cp.Sessions = l
	return &cp
}

/* =========================
   Schedules
========================= */

func (c *Checker) CheckScheduleConflict(ctx context.Context, candidate schedModel.ScheduleModel, excludeID *uuid.UUID) ([]conflictModel.Conflict, error) {
	if !dbtime.ValidRange(candidate.ScheduleStart, candidate.ScheduleEnd) {
		return nil, conflictModel.InvalidTimeRange(candidate.ScheduleStart, candidate.ScheduleEnd)
	}
	rows, err := c.Schedules.ListActiveByDay(ctx, candidate.ScheduleDay, excludeID)
	if err != nil {
		return nil, err
	}
	existing := make([]Booking, 0, len(rows))
	for _, r := range rows {
		if !r.ScheduleIsActive || isExcluded(r.ScheduleID, excludeID) {
			continue
		}
		existing = append(existing, FromSchedule(r))
	}
	return c.evaluateAll(ctx, FromSchedule(candidate), existing)
}

// AssertNoScheduleConflict fails with SCHEDULE_CONFLICT carrying every conflict.
// Recurring slots are always exclusive: no conflict kind is tolerated.
func (c *Checker) AssertNoScheduleConflict(ctx context.Context, candidate schedModel.ScheduleModel, excludeID *uuid.UUID) error {
	conflicts, err := c.CheckScheduleConflict(ctx, candidate, excludeID)
	if err != nil {
		return err
	}
	if blocking := Blocking(conflicts); len(blocking) > 0 {
		return conflictModel.ScheduleConflict(blocking)
	}
	return nil
}

/* =========================
   Sessions
========================= */

func (c *Checker) CheckSessionConflict(ctx context.Context, candidate sessModel.SessionModel, excludeID *uuid.UUID) ([]conflictModel.Conflict, error) {
	if !dbtime.ValidRange(candidate.SessionStart, candidate.SessionEnd) {
		return nil, conflictModel.InvalidTimeRange(candidate.SessionStart, candidate.SessionEnd)
	}
	rows, err := c.Sessions.ListLiveByDate(ctx, candidate.Date(), excludeID)
	if err != nil {
		return nil, err
	}
	existing := make([]Booking, 0, len(rows))
	for _, r := range rows {
		if !r.SessionStatus.IsLive() || isExcluded(r.SessionID, excludeID) {
			continue
		}
		existing = append(existing, FromSession(r))
	}
	return c.evaluateAll(ctx, FromSession(candidate), existing)
}

// AssertNoSessionConflict fails with SESSION_CONFLICT on the first unresolved
// conflict. The online + same-subject teacher exception is applied by the
// rules themselves, so anything reported here blocks.
func (c *Checker) AssertNoSessionConflict(ctx context.Context, candidate sessModel.SessionModel, excludeID *uuid.UUID) error {
	conflicts, err := c.CheckSessionConflict(ctx, candidate, excludeID)
	if err != nil {
		return err
	}
	if blocking := Blocking(conflicts); len(blocking) > 0 {
		return conflictModel.SessionConflict(blocking)
	}
	return nil
}

/* =========================
   Shared
========================= */

// Blocking drops conflicts whose kind the caller explicitly tolerates.
func Blocking(conflicts []conflictModel.Conflict, allowed ...conflictModel.ConflictType) []conflictModel.Conflict {
	if len(allowed) == 0 {
		return conflicts
	}
	ok := make(map[conflictModel.ConflictType]bool, len(allowed))
	for _, a := range allowed {
		ok[a] = true
	}
	out := make([]conflictModel.Conflict, 0, len(conflicts))
	for _, c := range conflicts {
		if !ok[c.ConflictType] {
			out = append(out, c)
		}
	}
	return out
}

func isExcluded(id uuid.UUID, excludeID *uuid.UUID) bool {
	return excludeID != nil && *excludeID == id
}

// evaluateAll compares the candidate with every existing booking in a stable
// order (start time, classroom, id) so reports are deterministic.
func (c *Checker) evaluateAll(ctx context.Context, candidate Booking, existing []Booking) ([]conflictModel.Conflict, error) {
	hits := existing[:0]
	for _, e := range existing {
		if overlapping(candidate, e) {
			hits = append(hits, e)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.Classroom != b.Classroom {
			return a.Classroom < b.Classroom
		}
		return a.ID.String() < b.ID.String()
	})

	conflicts := make([]conflictModel.Conflict, 0)
	if len(hits) == 0 {
		return conflicts, nil
	}

	r := newMemoResolver(c.Groups, c.Enrollments)
	if err := r.prefetchStudents(ctx, append([]Booking{candidate}, hits...)); err != nil {
		return nil, err
	}
	for _, e := range hits {
		found, err := Evaluate(ctx, candidate, e, r)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, found...)
	}

	if len(conflicts) > 0 {
		zap.L().Debug("booking conflicts detected",
			zap.String("kind", string(candidate.Kind)),
			zap.String("candidate", candidate.ID.String()),
			zap.String("when", candidate.when()),
			zap.Int("count", len(conflicts)),
		)
	}
	return conflicts, nil
}
