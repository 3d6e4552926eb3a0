package model

import "testing"

func TestRegistry(t *testing.T) {
	all := All()
	if len(all) != 3 {
		t.Fatalf("expected 3 classrooms, got %d", len(all))
	}
	if all[0].Code != ClassroomPhysical1 || all[2].Code != ClassroomVirtual {
		t.Fatalf("unexpected order: %+v", all)
	}
	for _, c := range []Classroom{ClassroomPhysical1, ClassroomPhysical2} {
		if !c.IsPhysical() || c.IsUnbounded() || c.Info().Capacity <= 0 {
			t.Fatalf("%s should be a bounded physical room", c)
		}
	}
	if ClassroomVirtual.IsPhysical() || !ClassroomVirtual.IsUnbounded() {
		t.Fatal("VIRTUAL should be unbounded and not physical")
	}
}

func TestParseClassroom(t *testing.T) {
	if c, err := ParseClassroom(" physical_2 "); err != nil || c != ClassroomPhysical2 {
		t.Fatalf("ParseClassroom = %v, %v", c, err)
	}
	if _, err := ParseClassroom("ROOM_9"); err == nil {
		t.Fatal("expected error")
	}
	if Classroom("ROOM_9").IsUnbounded() {
		t.Fatal("unknown room must not be unbounded")
	}
}
