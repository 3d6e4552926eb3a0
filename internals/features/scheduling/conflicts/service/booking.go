// file: internals/features/scheduling/conflicts/service/booking.go
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	conflictModel "trainingcenter_backend/internals/features/scheduling/conflicts/model"
	schedModel "trainingcenter_backend/internals/features/scheduling/schedules/model"
	sessModel "trainingcenter_backend/internals/features/scheduling/sessions/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

// Booking is the common shape the rules compare: a weekly schedule slot
// or a dated session. Date is nil for schedules.
type Booking struct {
	Kind      conflictModel.BookingKind
	ID        uuid.UUID
	Classroom roomModel.Classroom
	Day       dbtime.DayOfWeek
	Date      *time.Time
	Start     dbtime.Tod
	End       dbtime.Tod

	GroupID   *uuid.UUID
	SubjectID *uuid.UUID // nil for schedules: resolved through the group
	Mode      sessModel.SessionMode
	Type      sessModel.SessionType

	Placeholder bool
}

func FromSchedule(s schedModel.ScheduleModel) Booking {
	gid := s.ScheduleGroupID
	return Booking{
		Kind:      conflictModel.BookingSchedule,
		ID:        s.ScheduleID,
		Classroom: s.ScheduleRoom,
		Day:       s.ScheduleDay,
		Start:     s.ScheduleStart,
		End:       s.ScheduleEnd,
		GroupID:   &gid,
		// recurring slots never qualify for the online exception
		Mode: sessModel.SessionModeOnsite,
		Type: sessModel.SessionTypeRegular,
	}
}

func FromSession(s sessModel.SessionModel) Booking {
	d := s.Date()
	subject := s.SessionSubjectID
	return Booking{
		Kind:      conflictModel.BookingSession,
		ID:        s.SessionID,
		Classroom: s.SessionRoom,
		Day:       dbtime.DayOf(d),
		Date:      &d,
		Start:     s.SessionStart,
		End:       s.SessionEnd,
		GroupID:   s.SessionGroupID,
		SubjectID: &subject,
		Mode:      s.SessionMode,
		Type:      s.SessionType,

		Placeholder: s.IsPlaceholder(),
	}
}

// IsPlaceholder is only ever true for sessions; schedules always carry a group.
func (b Booking) IsPlaceholder() bool { return b.Placeholder }

// sameDay compares dates when both sides are dated, weekdays otherwise.
func sameDay(a, b Booking) bool {
	if a.Date != nil && b.Date != nil {
		return dbtime.SameDate(*a.Date, *b.Date)
	}
	return a.Day == b.Day
}

func overlapping(a, b Booking) bool {
	return sameDay(a, b) && dbtime.Overlaps(a.Start, a.End, b.Start, b.End)
}

func (b Booking) when() string {
	if b.Date != nil {
		return fmt.Sprintf("%s %s-%s", b.Date.Format(dbtime.DateLayout), b.Start.HHMM(), b.End.HHMM())
	}
	return fmt.Sprintf("%s %s-%s", b.Day, b.Start.HHMM(), b.End.HHMM())
}

func (b Booking) ref() string {
	if b.Kind == conflictModel.BookingSchedule {
		return "schedule " + b.ID.String()
	}
	return "session " + b.ID.String()
}

// conflictWith builds the report record pointing at the existing booking.
func conflictWith(kind conflictModel.ConflictType, existing Booking, detail string) conflictModel.Conflict {
	c := conflictModel.Conflict{
		ConflictType: kind,
		BookingKind:  existing.Kind,
		BookingID:    existing.ID,
		Classroom:    existing.Classroom,
		DayOfWeek:    existing.Day,
		StartTime:    existing.Start,
		EndTime:      existing.End,
		Detail:       detail,
	}
	if existing.Date != nil {
		s := existing.Date.Format(dbtime.DateLayout)
		c.Date = &s
	}
	return c
}
