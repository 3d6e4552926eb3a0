// file: internals/features/scheduling/schedules/model/schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

// ScheduleModel is a recurring weekly slot owned by a group.
// Recurring slots are always exclusive: no overlap is ever tolerated.
type ScheduleModel struct {
	ScheduleID      uuid.UUID           `gorm:"column:schedule_id;type:uuid;default:gen_random_uuid();primaryKey" json:"schedule_id"`
	ScheduleGroupID uuid.UUID           `gorm:"column:schedule_group_id;type:uuid;not null;index" json:"schedule_group_id"`
	ScheduleDay     dbtime.DayOfWeek    `gorm:"column:schedule_day_of_week;type:varchar(10);not null" json:"schedule_day_of_week"`
	ScheduleStart   dbtime.Tod          `gorm:"column:schedule_start_time;type:time;not null" json:"schedule_start_time"`
	ScheduleEnd     dbtime.Tod          `gorm:"column:schedule_end_time;type:time;not null" json:"schedule_end_time"`
	ScheduleRoom    roomModel.Classroom `gorm:"column:schedule_classroom;type:varchar(20);not null" json:"schedule_classroom"`

	ScheduleIsActive bool `gorm:"column:schedule_is_active;not null;default:true" json:"schedule_is_active"`

	ScheduleCreatedAt time.Time      `gorm:"column:schedule_created_at;type:timestamptz;not null;autoCreateTime" json:"schedule_created_at"`
	ScheduleUpdatedAt time.Time      `gorm:"column:schedule_updated_at;type:timestamptz;not null;autoUpdateTime" json:"schedule_updated_at"`
	ScheduleDeletedAt gorm.DeletedAt `gorm:"column:schedule_deleted_at;index" json:"schedule_deleted_at,omitempty"`
}

func (ScheduleModel) TableName() string { return "schedules" }
