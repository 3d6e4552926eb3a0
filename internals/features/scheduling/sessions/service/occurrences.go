// file: internals/features/scheduling/sessions/service/occurrences.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	schedModel "trainingcenter_backend/internals/features/scheduling/schedules/model"
	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

// MaxMaterializeDays caps one materialization window.
const MaxMaterializeDays = 366

// Occurrences lists the dates in [from,to] that fall on day.
func Occurrences(day dbtime.DayOfWeek, from, to time.Time) []time.Time {
	from, to = dbtime.DateOnly(from), dbtime.DateOnly(to)
	var out []time.Time
	d := from
	for d.Before(to) || d.Equal(to) {
		if dbtime.DayOf(d) == day {
			break
		}
		d = d.AddDate(0, 0, 1)
	}
	for ; !d.After(to); d = d.AddDate(0, 0, 7) {
		out = append(out, d)
	}
	return out
}

// ScheduleSnapshot freezes the weekly slot a session was generated from.
func ScheduleSnapshot(s schedModel.ScheduleModel) datatypes.JSONMap {
	return datatypes.JSONMap{
		"schedule_id": s.ScheduleID.String(),
		"group_id":    s.ScheduleGroupID.String(),
		"day_of_week": string(s.ScheduleDay),
		"start_time":  s.ScheduleStart.String(),
		"end_time":    s.ScheduleEnd.String(),
		"classroom":   string(s.ScheduleRoom),
	}
}

// ModeFor is the delivery mode a room implies: the virtual room is online.
func ModeFor(room roomModel.Classroom) m.SessionMode {
	if room.IsPhysical() {
		return m.SessionModeOnsite
	}
	return m.SessionModeOnline
}

// FromSchedule builds the REGULAR occurrence of a schedule on one date.
func FromSchedule(s schedModel.ScheduleModel, date time.Time, subjectID uuid.UUID) m.SessionModel {
	gid, sid := s.ScheduleGroupID, s.ScheduleID
	return m.SessionModel{
		SessionID:               uuid.New(),
		SessionSubjectID:        subjectID,
		SessionGroupID:          &gid,
		SessionScheduleID:       &sid,
		SessionRoom:             s.ScheduleRoom,
		SessionDate:             datatypes.Date(dbtime.DateOnly(date)),
		SessionStart:            s.ScheduleStart,
		SessionEnd:              s.ScheduleEnd,
		SessionStatus:           m.SessionStatusScheduled,
		SessionType:             m.SessionTypeRegular,
		SessionMode:             ModeFor(s.ScheduleRoom),
		SessionScheduleSnapshot: ScheduleSnapshot(s),
	}
}

// Move describes where a session goes. Nil fields keep the current value.
type Move struct {
	Date      time.Time
	Start     *dbtime.Tod
	End       *dbtime.Tod
	Classroom *roomModel.Classroom
	Mode      *m.SessionMode
}

func (mv Move) applyTo(row *m.SessionModel) {
	row.SessionDate = datatypes.Date(dbtime.DateOnly(mv.Date))
	if mv.Start != nil {
		row.SessionStart = *mv.Start
	}
	if mv.End != nil {
		row.SessionEnd = *mv.End
	}
	if mv.Classroom != nil {
		row.SessionRoom = *mv.Classroom
	}
	if mv.Mode != nil {
		row.SessionMode = *mv.Mode
	}
}

// MakeUpFor builds the replacement session a postponement creates on the target date.
func MakeUpFor(orig m.SessionModel, mv Move) m.SessionModel {
	mk := orig
	mk.SessionID = uuid.New()
	mk.SessionStatus = m.SessionStatusScheduled
	mk.SessionType = m.SessionTypeMakeUp
	mk.SessionPostponedTo = nil
	mk.SessionTopics = nil
	mk.SessionCreatedAt = time.Time{}
	mk.SessionUpdatedAt = time.Time{}
	mk.SessionScheduleSnapshot = datatypes.JSONMap{}
	for k, v := range orig.SessionScheduleSnapshot {
		mk.SessionScheduleSnapshot[k] = v
	}
	mk.SessionScheduleSnapshot["postponed_from"] = orig.Date().Format(dbtime.DateLayout)
	mk.SessionScheduleSnapshot["original_session_id"] = orig.SessionID.String()
	mv.applyTo(&mk)
	return mk
}
