package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	schedModel "trainingcenter_backend/internals/features/scheduling/schedules/model"
	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

func date(s string) time.Time {
	d, err := dbtime.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestOccurrences(t *testing.T) {
	tests := []struct {
		name     string
		day      dbtime.DayOfWeek
		from, to string
		want     []string
	}{
		{"month of mondays", dbtime.Monday, "2024-03-01", "2024-03-31", []string{"2024-03-04", "2024-03-11", "2024-03-18", "2024-03-25"}},
		{"inclusive bounds", dbtime.Monday, "2024-03-04", "2024-03-11", []string{"2024-03-04", "2024-03-11"}},
		{"single day hit", dbtime.Tuesday, "2024-03-05", "2024-03-05", []string{"2024-03-05"}},
		{"single day miss", dbtime.Tuesday, "2024-03-04", "2024-03-04", nil},
		{"short window miss", dbtime.Sunday, "2024-03-04", "2024-03-08", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Occurrences(tt.day, date(tt.from), date(tt.to))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].Format(dbtime.DateLayout) != tt.want[i] {
					t.Fatalf("got[%d] = %s, want %s", i, got[i].Format(dbtime.DateLayout), tt.want[i])
				}
			}
		})
	}
}

func TestFromScheduleCopiesSlot(t *testing.T) {
	sched := schedModel.ScheduleModel{
		ScheduleID:      uuid.New(),
		ScheduleGroupID: uuid.New(),
		ScheduleDay:     dbtime.Monday,
		ScheduleStart:   dbtime.MustParse("09:00"),
		ScheduleEnd:     dbtime.MustParse("11:00"),
		ScheduleRoom:    roomModel.ClassroomPhysical1,
	}
	subject := uuid.New()
	row := FromSchedule(sched, date("2024-03-04"), subject)

	if row.SessionType != m.SessionTypeRegular || row.SessionStatus != m.SessionStatusScheduled {
		t.Fatalf("unexpected type/status %s/%s", row.SessionType, row.SessionStatus)
	}
	if row.SessionScheduleID == nil || *row.SessionScheduleID != sched.ScheduleID {
		t.Fatal("schedule id not linked")
	}
	if row.SessionGroupID == nil || *row.SessionGroupID != sched.ScheduleGroupID || row.SessionSubjectID != subject {
		t.Fatal("group/subject not copied")
	}
	if !row.SessionStart.Equal(sched.ScheduleStart) || row.SessionRoom != sched.ScheduleRoom {
		t.Fatal("slot not copied")
	}
	if row.SessionScheduleSnapshot["day_of_week"] != "MONDAY" || row.SessionScheduleSnapshot["start_time"] != "09:00:00" {
		t.Fatalf("snapshot = %v", row.SessionScheduleSnapshot)
	}
	if row.SessionMode != m.SessionModeOnsite {
		t.Fatalf("physical room mode = %s", row.SessionMode)
	}

	sched.ScheduleRoom = roomModel.ClassroomVirtual
	if got := FromSchedule(sched, date("2024-03-04"), subject).SessionMode; got != m.SessionModeOnline {
		t.Fatalf("virtual room mode = %s, want ONLINE", got)
	}
}

func TestMakeUpForMovesAndResets(t *testing.T) {
	gid := uuid.New()
	topics := "should not carry over"
	orig := m.SessionModel{
		SessionID:        uuid.New(),
		SessionSubjectID: uuid.New(),
		SessionGroupID:   &gid,
		SessionRoom:      roomModel.ClassroomPhysical1,
		SessionDate:      datatypes.Date(date("2024-03-04")),
		SessionStart:     dbtime.MustParse("09:00"),
		SessionEnd:       dbtime.MustParse("10:00"),
		SessionStatus:    m.SessionStatusScheduled,
		SessionType:      m.SessionTypeRegular,
		SessionMode:      m.SessionModeOnsite,
		SessionTopics:    &topics,
	}
	room := roomModel.ClassroomPhysical2
	start, end := dbtime.MustParse("14:00"), dbtime.MustParse("15:00")

	mk := MakeUpFor(orig, Move{Date: date("2024-03-11"), Start: &start, End: &end, Classroom: &room})

	if mk.SessionID == orig.SessionID {
		t.Fatal("make-up needs its own id")
	}
	if mk.SessionType != m.SessionTypeMakeUp || mk.SessionStatus != m.SessionStatusScheduled {
		t.Fatalf("unexpected type/status %s/%s", mk.SessionType, mk.SessionStatus)
	}
	if mk.Date().Format(dbtime.DateLayout) != "2024-03-11" || mk.SessionRoom != room || !mk.SessionStart.Equal(start) {
		t.Fatalf("move not applied: %+v", mk)
	}
	if mk.SessionTopics != nil || mk.SessionPostponedTo != nil {
		t.Fatal("lifecycle fields must be reset")
	}
	if mk.SessionScheduleSnapshot["postponed_from"] != "2024-03-04" {
		t.Fatalf("snapshot = %v", mk.SessionScheduleSnapshot)
	}
	if orig.SessionType != m.SessionTypeRegular || orig.SessionRoom != roomModel.ClassroomPhysical1 {
		t.Fatal("original must not be mutated")
	}
}
