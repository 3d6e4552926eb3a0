// file: internals/features/scheduling/groups/model/group_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GroupModel is the read side of the groups table. Group CRUD lives elsewhere;
// scheduling only needs the teacher and subject of a group.
type GroupModel struct {
	GroupID        uuid.UUID      `gorm:"column:group_id;type:uuid;primaryKey" json:"group_id"`
	GroupName      string         `gorm:"column:group_name;type:text;not null" json:"group_name"`
	GroupTeacherID uuid.UUID      `gorm:"column:group_teacher_id;type:uuid;not null" json:"group_teacher_id"`
	GroupSubjectID uuid.UUID      `gorm:"column:group_subject_id;type:uuid;not null" json:"group_subject_id"`
	GroupDeletedAt gorm.DeletedAt `gorm:"column:group_deleted_at;index" json:"-"`
}

func (GroupModel) TableName() string { return "groups" }

type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentWithdrawn EnrollmentStatus = "WITHDRAWN"
)

type EnrollmentModel struct {
	EnrollmentID        uuid.UUID        `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`
	EnrollmentGroupID   uuid.UUID        `gorm:"column:enrollment_group_id;type:uuid;not null;index" json:"enrollment_group_id"`
	EnrollmentStudentID uuid.UUID        `gorm:"column:enrollment_student_id;type:uuid;not null" json:"enrollment_student_id"`
	EnrollmentStatus    EnrollmentStatus `gorm:"column:enrollment_status;type:varchar(16);not null;default:'ACTIVE'" json:"enrollment_status"`
	EnrollmentCreatedAt time.Time        `gorm:"column:enrollment_created_at;type:timestamptz;not null;autoCreateTime" json:"enrollment_created_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
