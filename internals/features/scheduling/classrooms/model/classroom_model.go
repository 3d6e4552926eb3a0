// file: internals/features/scheduling/classrooms/model/classroom_model.go
package model

import (
	"fmt"
	"sort"
	"strings"
)

/* =========================
   ENUM (closed set)
========================= */

type Classroom string

const (
	ClassroomPhysical1 Classroom = "PHYSICAL_1"
	ClassroomPhysical2 Classroom = "PHYSICAL_2"
	ClassroomVirtual   Classroom = "VIRTUAL"
)

// ClassroomInfo is the static description of a room.
// Capacity 0 means unbounded (virtual rooms only).
type ClassroomInfo struct {
	Code       Classroom `json:"code"`
	Name       string    `json:"name"`
	Capacity   int       `json:"capacity"`
	IsPhysical bool      `json:"is_physical"`
}

var registry = map[Classroom]ClassroomInfo{
	ClassroomPhysical1: {Code: ClassroomPhysical1, Name: "Aula 1", Capacity: 30, IsPhysical: true},
	ClassroomPhysical2: {Code: ClassroomPhysical2, Name: "Aula 2", Capacity: 20, IsPhysical: true},
	ClassroomVirtual:   {Code: ClassroomVirtual, Name: "Aula virtual", Capacity: 0, IsPhysical: false},
}

func (c Classroom) Valid() bool {
	_, ok := registry[c]
	return ok
}

func (c Classroom) Info() ClassroomInfo {
	return registry[c]
}

func (c Classroom) IsPhysical() bool {
	return registry[c].IsPhysical
}

// IsUnbounded: any number of bookings may share the room at the same time.
func (c Classroom) IsUnbounded() bool {
	info, ok := registry[c]
	return ok && info.Capacity == 0
}

func ParseClassroom(s string) (Classroom, error) {
	c := Classroom(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid classroom %q", s)
	}
	return c, nil
}

// All returns the catalog ordered by code.
func All() []ClassroomInfo {
	out := make([]ClassroomInfo, 0, len(registry))
	for _, info := range registry {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
