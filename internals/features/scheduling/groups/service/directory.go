// file: internals/features/scheduling/groups/service/directory.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	groupModel "trainingcenter_backend/internals/features/scheduling/groups/model"
)

// Directory answers group/enrollment lookups straight from Postgres.
type Directory struct{ DB *gorm.DB }

func NewDirectory(db *gorm.DB) *Directory { return &Directory{DB: db} }

type groupRefs struct {
	TeacherID uuid.UUID `gorm:"column:group_teacher_id"`
	SubjectID uuid.UUID `gorm:"column:group_subject_id"`
}

func (d *Directory) refs(ctx context.Context, groupID uuid.UUID) (groupRefs, error) {
	var row groupRefs
	err := d.DB.WithContext(ctx).
		Model(&groupModel.GroupModel{}).
		Select("group_teacher_id, group_subject_id").
		Where("group_id = ?", groupID).
		Take(&row).Error
	return row, err
}

func (d *Directory) TeacherIDOf(ctx context.Context, groupID uuid.UUID) (uuid.UUID, error) {
	r, err := d.refs(ctx, groupID)
	if err != nil {
		return uuid.Nil, err
	}
	return r.TeacherID, nil
}

func (d *Directory) SubjectIDOf(ctx context.Context, groupID uuid.UUID) (uuid.UUID, error) {
	r, err := d.refs(ctx, groupID)
	if err != nil {
		return uuid.Nil, err
	}
	return r.SubjectID, nil
}

func (d *Directory) EnrolledStudentIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := d.DB.WithContext(ctx).
		Model(&groupModel.EnrollmentModel{}).
		Where("enrollment_group_id = ? AND enrollment_status = ?", groupID, groupModel.EnrollmentActive).
		Order("enrollment_student_id").
		Pluck("enrollment_student_id", &ids).Error
	return ids, err
}

// EnrolledStudentIDsMany loads every active enrollment of the given groups in one query.
// Groups without students are present with an empty slice.
func (d *Directory) EnrolledStudentIDsMany(ctx context.Context, groupIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID, len(groupIDs))
	if len(groupIDs) == 0 {
		return out, nil
	}
	raw := make([]string, 0, len(groupIDs))
	for _, id := range groupIDs {
		out[id] = []uuid.UUID{}
		raw = append(raw, id.String())
	}

	var rows []struct {
		GroupID   uuid.UUID `gorm:"column:enrollment_group_id"`
		StudentID uuid.UUID `gorm:"column:enrollment_student_id"`
	}
	if err := d.DB.WithContext(ctx).
		Model(&groupModel.EnrollmentModel{}).
		Select("enrollment_group_id, enrollment_student_id").
		Where("enrollment_group_id = ANY(?::uuid[]) AND enrollment_status = ?", pq.Array(raw), groupModel.EnrollmentActive).
		Order("enrollment_group_id, enrollment_student_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.GroupID] = append(out[r.GroupID], r.StudentID)
	}
	return out, nil
}
