// file: internals/features/scheduling/conflicts/service/resolver.go
package service

import (
	"context"

	"github.com/google/uuid"
)

// GroupDirectory is the group collaborator: who teaches a group and what subject.
type GroupDirectory interface {
	TeacherIDOf(ctx context.Context, groupID uuid.UUID) (uuid.UUID, error)
	SubjectIDOf(ctx context.Context, groupID uuid.UUID) (uuid.UUID, error)
}

// EnrollmentDirectory lists active students of a group.
type EnrollmentDirectory interface {
	EnrolledStudentIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error)
}

// BatchEnrollmentDirectory is optional; when present one query serves a whole check.
type BatchEnrollmentDirectory interface {
	EnrolledStudentIDsMany(ctx context.Context, groupIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error)
}

// memoResolver caches collaborator answers for the duration of one check call.
type memoResolver struct {
	groups      GroupDirectory
	enrollments EnrollmentDirectory

	teachers map[uuid.UUID]uuid.UUID
	subjects map[uuid.UUID]uuid.UUID
	students map[uuid.UUID]map[uuid.UUID]struct{}
}

func newMemoResolver(groups GroupDirectory, enrollments EnrollmentDirectory) *memoResolver {
	return &memoResolver{
		groups:      groups,
		enrollments: enrollments,
		teachers:    map[uuid.UUID]uuid.UUID{},
		subjects:    map[uuid.UUID]uuid.UUID{},
		students:    map[uuid.UUID]map[uuid.UUID]struct{}{},
	}
}

func (m *memoResolver) TeacherOf(ctx context.Context, b Booking) (uuid.UUID, bool, error) {
	if b.GroupID == nil || m.groups == nil {
		return uuid.Nil, false, nil
	}
	gid := *b.GroupID
	if id, ok := m.teachers[gid]; ok {
		return id, true, nil
	}
	id, err := m.groups.TeacherIDOf(ctx, gid)
	if err != nil {
		return uuid.Nil, false, err
	}
	m.teachers[gid] = id
	return id, true, nil
}

// SubjectOf prefers the subject carried by a session over its group's.
func (m *memoResolver) SubjectOf(ctx context.Context, b Booking) (uuid.UUID, bool, error) {
	if b.SubjectID != nil {
		return *b.SubjectID, true, nil
	}
	if b.GroupID == nil || m.groups == nil {
		return uuid.Nil, false, nil
	}
	gid := *b.GroupID
	if id, ok := m.subjects[gid]; ok {
		return id, true, nil
	}
	id, err := m.groups.SubjectIDOf(ctx, gid)
	if err != nil {
		return uuid.Nil, false, err
	}
	m.subjects[gid] = id
	return id, true, nil
}

func (m *memoResolver) StudentsOf(ctx context.Context, b Booking) (map[uuid.UUID]struct{}, bool, error) {
	if b.GroupID == nil || m.enrollments == nil {
		return nil, false, nil
	}
	gid := *b.GroupID
	if set, ok := m.students[gid]; ok {
		return set, true, nil
	}
	ids, err := m.enrollments.EnrolledStudentIDs(ctx, gid)
	if err != nil {
		return nil, false, err
	}
	set := toSet(ids)
	m.students[gid] = set
	return set, true, nil
}

// prefetchStudents fills the student cache in one round trip when the
// directory supports batching.
func (m *memoResolver) prefetchStudents(ctx context.Context, bookings []Booking) error {
	batch, ok := m.enrollments.(BatchEnrollmentDirectory)
	if !ok {
		return nil
	}
	seen := map[uuid.UUID]bool{}
	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		if b.GroupID == nil || seen[*b.GroupID] {
			continue
		}
		if _, cached := m.students[*b.GroupID]; cached {
			continue
		}
		seen[*b.GroupID] = true
		ids = append(ids, *b.GroupID)
	}
	if len(ids) < 2 {
		return nil
	}
	got, err := batch.EnrolledStudentIDsMany(ctx, ids)
	if err != nil {
		return err
	}
	for gid, students := range got {
		m.students[gid] = toSet(students)
	}
	return nil
}

func toSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
