package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	schedModel "trainingcenter_backend/internals/features/scheduling/schedules/model"
	sessModel "trainingcenter_backend/internals/features/scheduling/sessions/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

/* =========================
   In-memory collaborators
========================= */

type fakeSchedules struct{ rows []schedModel.ScheduleModel }

// returns every row of the day, leaving exclusion and activity filtering to the checker
func (f *fakeSchedules) ListActiveByDay(_ context.Context, day dbtime.DayOfWeek, _ *uuid.UUID) ([]schedModel.ScheduleModel, error) {
	var out []schedModel.ScheduleModel
	for _, r := range f.rows {
		if r.ScheduleDay == day {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSessions struct{ rows []sessModel.SessionModel }

func (f *fakeSessions) ListLiveByDate(_ context.Context, date time.Time, _ *uuid.UUID) ([]sessModel.SessionModel, error) {
	var out []sessModel.SessionModel
	for _, r := range f.rows {
		if dbtime.SameDate(r.Date(), date) {
			out = append(out, r)
		}
	}
	return out, nil
}

type groupInfo struct {
	teacher  uuid.UUID
	subject  uuid.UUID
	students []uuid.UUID
}

type fakeDirectory struct {
	groups       map[uuid.UUID]groupInfo
	teacherCalls int
	studentCalls int
	batchCalls   int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{groups: map[uuid.UUID]groupInfo{}}
}

var errUnknownGroup = errors.New("unknown group")

func (f *fakeDirectory) add(teacher, subject uuid.UUID, students ...uuid.UUID) uuid.UUID {
	id := uuid.New()
	f.groups[id] = groupInfo{teacher: teacher, subject: subject, students: students}
	return id
}

func (f *fakeDirectory) TeacherIDOf(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	f.teacherCalls++
	g, ok := f.groups[id]
	if !ok {
		return uuid.Nil, errUnknownGroup
	}
	return g.teacher, nil
}

func (f *fakeDirectory) SubjectIDOf(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	g, ok := f.groups[id]
	if !ok {
		return uuid.Nil, errUnknownGroup
	}
	return g.subject, nil
}

func (f *fakeDirectory) EnrolledStudentIDs(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	f.studentCalls++
	g, ok := f.groups[id]
	if !ok {
		return nil, errUnknownGroup
	}
	return g.students, nil
}

// batchDirectory adds the optional batch lookup on top of fakeDirectory.
type batchDirectory struct{ *fakeDirectory }

func (b batchDirectory) EnrolledStudentIDsMany(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	b.batchCalls++
	out := make(map[uuid.UUID][]uuid.UUID, len(ids))
	for _, id := range ids {
		if g, ok := b.groups[id]; ok {
			out[id] = g.students
		}
	}
	return out, nil
}

/* =========================
   Builders
========================= */

func schedule(group uuid.UUID, room roomModel.Classroom, day dbtime.DayOfWeek, start, end string) schedModel.ScheduleModel {
	return schedModel.ScheduleModel{
		ScheduleID:       uuid.New(),
		ScheduleGroupID:  group,
		ScheduleDay:      day,
		ScheduleStart:    dbtime.MustParse(start),
		ScheduleEnd:      dbtime.MustParse(end),
		ScheduleRoom:     room,
		ScheduleIsActive: true,
	}
}

func session(group *uuid.UUID, subject uuid.UUID, room roomModel.Classroom, date, start, end string) sessModel.SessionModel {
	d, err := dbtime.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return sessModel.SessionModel{
		SessionID:        uuid.New(),
		SessionSubjectID: subject,
		SessionGroupID:   group,
		SessionRoom:      room,
		SessionDate:      datatypes.Date(d),
		SessionStart:     dbtime.MustParse(start),
		SessionEnd:       dbtime.MustParse(end),
		SessionStatus:    sessModel.SessionStatusScheduled,
		SessionType:      sessModel.SessionTypeRegular,
		SessionMode:      sessModel.SessionModeOnsite,
	}
}

func ptr[T any](v T) *T { return &v }
