package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	conflictModel "trainingcenter_backend/internals/features/scheduling/conflicts/model"
	sessModel "trainingcenter_backend/internals/features/scheduling/sessions/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

func TestClassroomConflictPhysicalOnly(t *testing.T) {
	g := uuid.New()
	tests := []struct {
		name string
		room roomModel.Classroom
		a, b [2]string
		want bool
	}{
		{"physical overlap", roomModel.ClassroomPhysical1, [2]string{"09:00", "11:00"}, [2]string{"10:00", "12:00"}, true},
		{"physical contained", roomModel.ClassroomPhysical2, [2]string{"09:00", "12:00"}, [2]string{"10:00", "11:00"}, true},
		{"physical touching", roomModel.ClassroomPhysical1, [2]string{"09:00", "10:00"}, [2]string{"10:00", "11:00"}, false},
		{"virtual overlap", roomModel.ClassroomVirtual, [2]string{"09:00", "11:00"}, [2]string{"09:00", "11:00"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := FromSchedule(schedule(g, tt.room, dbtime.Monday, tt.a[0], tt.a[1]))
			b := FromSchedule(schedule(g, tt.room, dbtime.Monday, tt.b[0], tt.b[1]))
			c, got := ClassroomConflict(a, b)
			if got != tt.want {
				t.Fatalf("ClassroomConflict = %v, want %v", got, tt.want)
			}
			if got && (c.ConflictType != conflictModel.ConflictClassroomOccupied || c.BookingID != b.ID) {
				t.Fatalf("unexpected conflict %+v", c)
			}
		})
	}
}

func TestClassroomConflictDifferentRoomOrDay(t *testing.T) {
	g := uuid.New()
	a := FromSchedule(schedule(g, roomModel.ClassroomPhysical1, dbtime.Monday, "09:00", "11:00"))
	if _, ok := ClassroomConflict(a, FromSchedule(schedule(g, roomModel.ClassroomPhysical2, dbtime.Monday, "09:00", "11:00"))); ok {
		t.Fatal("different rooms must not conflict")
	}
	if _, ok := ClassroomConflict(a, FromSchedule(schedule(g, roomModel.ClassroomPhysical1, dbtime.Tuesday, "09:00", "11:00"))); ok {
		t.Fatal("different days must not conflict")
	}
}

func TestTeacherConflictOnlineSameSubjectExempt(t *testing.T) {
	dir := newFakeDirectory()
	teacher, subject := uuid.New(), uuid.New()
	ga := dir.add(teacher, subject)
	gb := dir.add(teacher, subject)

	a := session(&ga, subject, roomModel.ClassroomVirtual, "2024-03-04", "09:00", "10:00")
	b := session(&gb, subject, roomModel.ClassroomVirtual, "2024-03-04", "09:00", "10:00")
	a.SessionMode, b.SessionMode = sessModel.SessionModeOnline, sessModel.SessionModeOnline

	r := newMemoResolver(dir, dir)
	if _, ok, err := TeacherConflict(context.Background(), FromSession(a), FromSession(b), r); err != nil || ok {
		t.Fatalf("online same-subject must be exempt, ok=%v err=%v", ok, err)
	}

	// one side onsite: exception no longer applies
	b.SessionMode = sessModel.SessionModeOnsite
	c, ok, err := TeacherConflict(context.Background(), FromSession(a), FromSession(b), r)
	if err != nil || !ok || c.ConflictType != conflictModel.ConflictTeacher {
		t.Fatalf("expected TEACHER_CONFLICT, ok=%v err=%v", ok, err)
	}
}

func TestTeacherConflictOnlineDifferentSubject(t *testing.T) {
	dir := newFakeDirectory()
	teacher := uuid.New()
	s1, s2 := uuid.New(), uuid.New()
	ga, gb := dir.add(teacher, s1), dir.add(teacher, s2)

	a := session(&ga, s1, roomModel.ClassroomVirtual, "2024-03-04", "09:00", "10:00")
	b := session(&gb, s2, roomModel.ClassroomVirtual, "2024-03-04", "09:30", "10:30")
	a.SessionMode, b.SessionMode = sessModel.SessionModeOnline, sessModel.SessionModeOnline

	_, ok, err := TeacherConflict(context.Background(), FromSession(a), FromSession(b), newMemoResolver(dir, dir))
	if err != nil || !ok {
		t.Fatalf("different subjects must conflict, ok=%v err=%v", ok, err)
	}
}

func TestStudentConflictNeedsSharedStudentAndGroups(t *testing.T) {
	dir := newFakeDirectory()
	shared := uuid.New()
	ga := dir.add(uuid.New(), uuid.New(), shared, uuid.New())
	gb := dir.add(uuid.New(), uuid.New(), shared)
	gc := dir.add(uuid.New(), uuid.New(), uuid.New())
	r := newMemoResolver(dir, dir)
	ctx := context.Background()

	a := FromSchedule(schedule(ga, roomModel.ClassroomPhysical1, dbtime.Monday, "09:00", "11:00"))
	b := FromSchedule(schedule(gb, roomModel.ClassroomPhysical2, dbtime.Monday, "10:00", "12:00"))
	c := FromSchedule(schedule(gc, roomModel.ClassroomPhysical2, dbtime.Monday, "10:00", "12:00"))

	if got, ok, err := StudentConflict(ctx, a, b, r); err != nil || !ok || got.ConflictType != conflictModel.ConflictStudent {
		t.Fatalf("shared student must conflict, ok=%v err=%v", ok, err)
	}
	if _, ok, err := StudentConflict(ctx, a, c, r); err != nil || ok {
		t.Fatalf("disjoint groups must not conflict, ok=%v err=%v", ok, err)
	}

	placeholder := FromSession(session(nil, uuid.New(), roomModel.ClassroomPhysical1, "2024-03-04", "09:00", "11:00"))
	if _, ok, err := StudentConflict(ctx, placeholder, a, r); err != nil || ok {
		t.Fatalf("groupless booking must be skipped, ok=%v err=%v", ok, err)
	}
}

func TestTimeOverlapOnlyForPlaceholders(t *testing.T) {
	g := uuid.New()
	a := session(&g, uuid.New(), roomModel.ClassroomPhysical1, "2024-03-04", "09:00", "10:00")
	b := session(&g, uuid.New(), roomModel.ClassroomPhysical1, "2024-03-04", "09:30", "10:30")

	if _, ok := TimeOverlap(FromSession(a), FromSession(b)); ok {
		t.Fatal("regular sessions must not produce TIME_OVERLAP")
	}
	b.SessionType = sessModel.SessionTypeScheduling
	if _, ok := TimeOverlap(FromSession(a), FromSession(b)); !ok {
		t.Fatal("SCHEDULING placeholder must produce TIME_OVERLAP")
	}
	b.SessionRoom = roomModel.ClassroomPhysical2
	if _, ok := TimeOverlap(FromSession(a), FromSession(b)); ok {
		t.Fatal("TIME_OVERLAP needs the same classroom")
	}
	a.SessionRoom, b.SessionRoom = roomModel.ClassroomVirtual, roomModel.ClassroomVirtual
	if _, ok := TimeOverlap(FromSession(a), FromSession(b)); ok {
		t.Fatal("VIRTUAL placeholders must not produce TIME_OVERLAP")
	}
}

func TestEvaluateCollectsAllInOrder(t *testing.T) {
	dir := newFakeDirectory()
	teacher, student := uuid.New(), uuid.New()
	ga := dir.add(teacher, uuid.New(), student)
	gb := dir.add(teacher, uuid.New(), student)

	a := FromSchedule(schedule(ga, roomModel.ClassroomPhysical1, dbtime.Monday, "09:00", "11:00"))
	b := FromSchedule(schedule(gb, roomModel.ClassroomPhysical1, dbtime.Monday, "10:00", "12:00"))

	got, err := Evaluate(context.Background(), a, b, newMemoResolver(dir, dir))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	want := []conflictModel.ConflictType{
		conflictModel.ConflictClassroomOccupied,
		conflictModel.ConflictTeacher,
		conflictModel.ConflictStudent,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d conflicts, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i].ConflictType != want[i] {
			t.Fatalf("conflict[%d] = %s, want %s", i, got[i].ConflictType, want[i])
		}
	}
}

func TestScheduleVersusSessionUsesWeekday(t *testing.T) {
	g := uuid.New()
	s := FromSchedule(schedule(g, roomModel.ClassroomPhysical1, dbtime.Monday, "09:00", "11:00"))
	// 2024-03-04 is a Monday
	onMonday := FromSession(session(ptr(uuid.New()), uuid.New(), roomModel.ClassroomPhysical1, "2024-03-04", "10:00", "10:30"))
	onTuesday := FromSession(session(ptr(uuid.New()), uuid.New(), roomModel.ClassroomPhysical1, "2024-03-05", "10:00", "10:30"))

	if _, ok := ClassroomConflict(onMonday, s); !ok {
		t.Fatal("monday session must collide with monday schedule")
	}
	if _, ok := ClassroomConflict(onTuesday, s); ok {
		t.Fatal("tuesday session must not collide with monday schedule")
	}
}
