// file: internals/features/scheduling/sessions/model/session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

/* =========================
   ENUMS (match DB values)
========================= */

type SessionStatus string

const (
	SessionStatusScheduled  SessionStatus = "SCHEDULED"
	SessionStatusInProgress SessionStatus = "IN_PROGRESS"
	SessionStatusCompleted  SessionStatus = "COMPLETED"
	SessionStatusCancelled  SessionStatus = "CANCELLED"
	SessionStatusPostponed  SessionStatus = "POSTPONED"
)

// LiveStatuses are the only statuses that occupy a slot.
var LiveStatuses = []SessionStatus{SessionStatusScheduled, SessionStatusInProgress}

func (s SessionStatus) IsLive() bool {
	return s == SessionStatusScheduled || s == SessionStatusInProgress
}

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusScheduled, SessionStatusInProgress, SessionStatusCompleted,
		SessionStatusCancelled, SessionStatusPostponed:
		return true
	}
	return false
}

type SessionType string

const (
	SessionTypeRegular    SessionType = "REGULAR"
	SessionTypeExtra      SessionType = "EXTRA"
	SessionTypeMakeUp     SessionType = "MAKE_UP"
	SessionTypeScheduling SessionType = "SCHEDULING"
)

func (t SessionType) Valid() bool {
	switch t {
	case SessionTypeRegular, SessionTypeExtra, SessionTypeMakeUp, SessionTypeScheduling:
		return true
	}
	return false
}

type SessionMode string

const (
	SessionModeOnsite SessionMode = "ONSITE"
	SessionModeOnline SessionMode = "ONLINE"
)

func (m SessionMode) Valid() bool {
	return m == SessionModeOnsite || m == SessionModeOnline
}

/* =========================================
   MODEL: sessions
========================================= */

type SessionModel struct {
	SessionID uuid.UUID `gorm:"column:session_id;type:uuid;default:gen_random_uuid();primaryKey" json:"session_id"`

	// Plain references (no object graph)
	SessionSubjectID  uuid.UUID  `gorm:"column:session_subject_id;type:uuid;not null" json:"session_subject_id"`
	SessionGroupID    *uuid.UUID `gorm:"column:session_group_id;type:uuid;index" json:"session_group_id,omitempty"`
	SessionScheduleID *uuid.UUID `gorm:"column:session_schedule_id;type:uuid;index" json:"session_schedule_id,omitempty"`

	// Occurrence
	SessionRoom  roomModel.Classroom `gorm:"column:session_classroom;type:varchar(20);not null" json:"session_classroom"`
	SessionDate  datatypes.Date      `gorm:"column:session_date;type:date;not null" json:"session_date"`
	SessionStart dbtime.Tod          `gorm:"column:session_start_time;type:time;not null" json:"session_start_time"`
	SessionEnd   dbtime.Tod          `gorm:"column:session_end_time;type:time;not null" json:"session_end_time"`

	// Lifecycle
	SessionStatus      SessionStatus   `gorm:"column:session_status;type:varchar(16);not null;default:'SCHEDULED'" json:"session_status"`
	SessionType        SessionType     `gorm:"column:session_type;type:varchar(16);not null;default:'REGULAR'" json:"session_type"`
	SessionMode        SessionMode     `gorm:"column:session_mode;type:varchar(8);not null;default:'ONSITE'" json:"session_mode"`
	SessionPostponedTo *datatypes.Date `gorm:"column:session_postponed_to_date;type:date" json:"session_postponed_to_date,omitempty"`
	SessionTopics      *string         `gorm:"column:session_topics_covered;type:text" json:"session_topics_covered,omitempty"`

	// Copy of the weekly slot this session was materialized from
	SessionScheduleSnapshot datatypes.JSONMap `gorm:"column:session_schedule_snapshot;type:jsonb" json:"session_schedule_snapshot,omitempty"`

	SessionCreatedAt time.Time      `gorm:"column:session_created_at;type:timestamptz;not null;autoCreateTime" json:"session_created_at"`
	SessionUpdatedAt time.Time      `gorm:"column:session_updated_at;type:timestamptz;not null;autoUpdateTime" json:"session_updated_at"`
	SessionDeletedAt gorm.DeletedAt `gorm:"column:session_deleted_at;index" json:"session_deleted_at,omitempty"`
}

func (SessionModel) TableName() string { return "sessions" }

// Date returns the session date as midnight UTC.
func (m SessionModel) Date() time.Time {
	return dbtime.DateOnly(time.Time(m.SessionDate))
}

// IsPlaceholder: a SCHEDULING slot or a session not yet bound to a group.
func (m SessionModel) IsPlaceholder() bool {
	return m.SessionType == SessionTypeScheduling || m.SessionGroupID == nil
}
