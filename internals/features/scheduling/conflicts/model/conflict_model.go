// file: internals/features/scheduling/conflicts/model/conflict_model.go
package model

import (
	"fmt"

	"github.com/google/uuid"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

/* =========================
   ENUMS
========================= */

type ConflictType string

const (
	ConflictClassroomOccupied ConflictType = "CLASSROOM_OCCUPIED"
	ConflictTeacher           ConflictType = "TEACHER_CONFLICT"
	ConflictStudent           ConflictType = "STUDENT_CONFLICT"
	ConflictTimeOverlap       ConflictType = "TIME_OVERLAP"
)

type BookingKind string

const (
	BookingSchedule BookingKind = "SCHEDULE"
	BookingSession  BookingKind = "SESSION"
)

/* =========================
   REPORT RECORD (not persisted)
========================= */

// Conflict points at the existing booking that collides with a candidate.
type Conflict struct {
	ConflictType ConflictType        `json:"conflict_type"`
	BookingKind  BookingKind         `json:"booking_kind"`
	BookingID    uuid.UUID           `json:"booking_id"`
	Classroom    roomModel.Classroom `json:"classroom"`
	DayOfWeek    dbtime.DayOfWeek    `json:"day_of_week"`
	Date         *string             `json:"date,omitempty"`
	StartTime    dbtime.Tod          `json:"start_time"`
	EndTime      dbtime.Tod          `json:"end_time"`
	Detail       string              `json:"detail"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s with %s %s: %s", c.ConflictType, c.BookingKind, c.BookingID, c.Detail)
}

// Kinds returns the distinct conflict kinds in report order.
func Kinds(list []Conflict) []ConflictType {
	seen := map[ConflictType]bool{}
	out := make([]ConflictType, 0, 4)
	for _, c := range list {
		if !seen[c.ConflictType] {
			seen[c.ConflictType] = true
			out = append(out, c.ConflictType)
		}
	}
	return out
}
