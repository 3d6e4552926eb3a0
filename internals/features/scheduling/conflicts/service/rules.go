// file: internals/features/scheduling/conflicts/service/rules.go
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	conflictModel "trainingcenter_backend/internals/features/scheduling/conflicts/model"
	sessModel "trainingcenter_backend/internals/features/scheduling/sessions/model"
)

// Resolver derives teacher, subject and enrolled students of a booking.
// ok=false means the booking has nothing to resolve (no group).
type Resolver interface {
	TeacherOf(ctx context.Context, b Booking) (teacherID uuid.UUID, ok bool, err error)
	SubjectOf(ctx context.Context, b Booking) (subjectID uuid.UUID, ok bool, err error)
	StudentsOf(ctx context.Context, b Booking) (students map[uuid.UUID]struct{}, ok bool, err error)
}

/* =========================
   Rules
   Each rule compares a candidate with one existing booking and reports
   against the existing one.
========================= */

// ClassroomConflict: same room, same day/date, overlapping. The virtual room
// has unbounded capacity and never conflicts.
func ClassroomConflict(candidate, existing Booking) (conflictModel.Conflict, bool) {
	if candidate.Classroom != existing.Classroom || candidate.Classroom.IsUnbounded() {
		return conflictModel.Conflict{}, false
	}
	if !overlapping(candidate, existing) {
		return conflictModel.Conflict{}, false
	}
	detail := fmt.Sprintf("classroom %s is occupied %s by %s", existing.Classroom, existing.when(), existing.ref())
	return conflictWith(conflictModel.ConflictClassroomOccupied, existing, detail), true
}

// TeacherConflict: both bookings resolve to the same teacher on the same
// day/date with overlapping time, unless both are ONLINE sessions of the same subject.
func TeacherConflict(ctx context.Context, candidate, existing Booking, r Resolver) (conflictModel.Conflict, bool, error) {
	if !overlapping(candidate, existing) {
		return conflictModel.Conflict{}, false, nil
	}
	ta, okA, err := r.TeacherOf(ctx, candidate)
	if err != nil || !okA {
		return conflictModel.Conflict{}, false, err
	}
	tb, okB, err := r.TeacherOf(ctx, existing)
	if err != nil || !okB {
		return conflictModel.Conflict{}, false, err
	}
	if ta != tb {
		return conflictModel.Conflict{}, false, nil
	}

	if candidate.Mode == sessModel.SessionModeOnline && existing.Mode == sessModel.SessionModeOnline {
		sa, okA, err := r.SubjectOf(ctx, candidate)
		if err != nil {
			return conflictModel.Conflict{}, false, err
		}
		sb, okB, err := r.SubjectOf(ctx, existing)
		if err != nil {
			return conflictModel.Conflict{}, false, err
		}
		if okA && okB && sa == sb {
			return conflictModel.Conflict{}, false, nil
		}
	}

	detail := fmt.Sprintf("teacher %s already teaches %s (%s)", ta, existing.when(), existing.ref())
	return conflictWith(conflictModel.ConflictTeacher, existing, detail), true, nil
}

// StudentConflict: both bookings belong to a group and share at least one
// enrolled student on the same day/date with overlapping time.
func StudentConflict(ctx context.Context, candidate, existing Booking, r Resolver) (conflictModel.Conflict, bool, error) {
	if candidate.GroupID == nil || existing.GroupID == nil {
		return conflictModel.Conflict{}, false, nil
	}
	if !overlapping(candidate, existing) {
		return conflictModel.Conflict{}, false, nil
	}
	sa, okA, err := r.StudentsOf(ctx, candidate)
	if err != nil || !okA {
		return conflictModel.Conflict{}, false, err
	}
	sb, okB, err := r.StudentsOf(ctx, existing)
	if err != nil || !okB {
		return conflictModel.Conflict{}, false, err
	}

	small, big := sa, sb
	if len(small) > len(big) {
		small, big = big, small
	}
	shared := 0
	for id := range small {
		if _, ok := big[id]; ok {
			shared++
		}
	}
	if shared == 0 {
		return conflictModel.Conflict{}, false, nil
	}
	detail := fmt.Sprintf("%d enrolled student(s) already attend %s (%s)", shared, existing.when(), existing.ref())
	return conflictWith(conflictModel.ConflictStudent, existing, detail), true, nil
}

// TimeOverlap is the fallback for placeholder sessions that have no group or
// teacher yet: classroom and time coincidence alone is enough. Like the
// classroom rule it never fires in the unbounded virtual room.
func TimeOverlap(candidate, existing Booking) (conflictModel.Conflict, bool) {
	if !candidate.IsPlaceholder() && !existing.IsPlaceholder() {
		return conflictModel.Conflict{}, false
	}
	if candidate.Classroom != existing.Classroom || candidate.Classroom.IsUnbounded() || !overlapping(candidate, existing) {
		return conflictModel.Conflict{}, false
	}
	detail := fmt.Sprintf("slot %s %s overlaps %s", existing.Classroom, existing.when(), existing.ref())
	return conflictWith(conflictModel.ConflictTimeOverlap, existing, detail), true
}

// Evaluate applies every rule to one pair and collects all that fire.
// The physical classroom rule always runs first.
func Evaluate(ctx context.Context, candidate, existing Booking, r Resolver) ([]conflictModel.Conflict, error) {
	var out []conflictModel.Conflict

	if c, ok := ClassroomConflict(candidate, existing); ok {
		out = append(out, c)
	}
	c, ok, err := TeacherConflict(ctx, candidate, existing, r)
	if err != nil {
		return nil, err
	}
	if ok {
		out = append(out, c)
	}
	c, ok, err = StudentConflict(ctx, candidate, existing, r)
	if err != nil {
		return nil, err
	}
	if ok {
		out = append(out, c)
	}
	if c, ok := TimeOverlap(candidate, existing); ok {
		out = append(out, c)
	}
	return out, nil
}
