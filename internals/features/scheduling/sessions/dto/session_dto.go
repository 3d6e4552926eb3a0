// file: internals/features/scheduling/sessions/dto/session_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
	svc "trainingcenter_backend/internals/features/scheduling/sessions/service"
	"trainingcenter_backend/internals/helpers/dbtime"
)

/* =========================
   Requests
========================= */

type CreateSessionRequest struct {
	SubjectID  uuid.UUID  `json:"subject_id" validate:"required"`
	GroupID    *uuid.UUID `json:"group_id"`
	ScheduleID *uuid.UUID `json:"schedule_id"`
	Classroom  string     `json:"classroom" validate:"required,classroom"`
	Date       string     `json:"date" validate:"required,isodate"`
	StartTime  string     `json:"start_time" validate:"required,tod"`
	EndTime    string     `json:"end_time" validate:"required,tod"`
	Type       string     `json:"type" validate:"omitempty,oneof=REGULAR EXTRA MAKE_UP SCHEDULING"`
	Mode       string     `json:"mode" validate:"omitempty,oneof=ONSITE ONLINE"`

	// dry run only
	ExcludeID *uuid.UUID `json:"exclude_id,omitempty"`
}

func (r *CreateSessionRequest) Normalize() {
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.Mode = strings.ToUpper(strings.TrimSpace(r.Mode))
}

func (r CreateSessionRequest) ToModel() (m.SessionModel, error) {
	date, err := dbtime.ParseDate(r.Date)
	if err != nil {
		return m.SessionModel{}, err
	}
	start, err := dbtime.Parse(r.StartTime)
	if err != nil {
		return m.SessionModel{}, err
	}
	end, err := dbtime.Parse(r.EndTime)
	if err != nil {
		return m.SessionModel{}, err
	}
	room, err := roomModel.ParseClassroom(r.Classroom)
	if err != nil {
		return m.SessionModel{}, err
	}
	return m.SessionModel{
		SessionSubjectID:  r.SubjectID,
		SessionGroupID:    r.GroupID,
		SessionScheduleID: r.ScheduleID,
		SessionRoom:       room,
		SessionDate:       datatypes.Date(date),
		SessionStart:      start,
		SessionEnd:        end,
		SessionStatus:     m.SessionStatusScheduled,
		SessionType:       m.SessionType(r.Type),
		SessionMode:       m.SessionMode(r.Mode),
	}, nil
}

// MoveSessionRequest: body of reschedule and postpone.
type MoveSessionRequest struct {
	Date      string  `json:"date" validate:"required,isodate"`
	StartTime *string `json:"start_time" validate:"omitempty,tod"`
	EndTime   *string `json:"end_time" validate:"omitempty,tod"`
	Classroom *string `json:"classroom" validate:"omitempty,classroom"`
	Mode      *string `json:"mode" validate:"omitempty,oneof=ONSITE ONLINE"`
}

func (r MoveSessionRequest) ToMove() (svc.Move, error) {
	var mv svc.Move
	date, err := dbtime.ParseDate(r.Date)
	if err != nil {
		return mv, err
	}
	mv.Date = date
	if r.StartTime != nil {
		t, err := dbtime.Parse(*r.StartTime)
		if err != nil {
			return mv, err
		}
		mv.Start = &t
	}
	if r.EndTime != nil {
		t, err := dbtime.Parse(*r.EndTime)
		if err != nil {
			return mv, err
		}
		mv.End = &t
	}
	if r.Classroom != nil {
		c, err := roomModel.ParseClassroom(*r.Classroom)
		if err != nil {
			return mv, err
		}
		mv.Classroom = &c
	}
	if r.Mode != nil {
		mode := m.SessionMode(*r.Mode)
		mv.Mode = &mode
	}
	return mv, nil
}

// CompleteSessionRequest: topics are mandatory when closing a session.
type CompleteSessionRequest struct {
	Topics string `json:"topics_covered" validate:"required,min=10"`
}

func (r *CompleteSessionRequest) Normalize() {
	r.Topics = strings.TrimSpace(r.Topics)
}

type MaterializeRequest struct {
	From string `json:"from" validate:"required,isodate"`
	To   string `json:"to" validate:"required,isodate"`
}

func (r MaterializeRequest) Window() (time.Time, time.Time, error) {
	from, err := dbtime.ParseDate(r.From)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := dbtime.ParseDate(r.To)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

/* =========================
   Response
========================= */

type SessionResponse struct {
	ID              uuid.UUID           `json:"session_id"`
	SubjectID       uuid.UUID           `json:"subject_id"`
	GroupID         *uuid.UUID          `json:"group_id,omitempty"`
	ScheduleID      *uuid.UUID          `json:"schedule_id,omitempty"`
	Classroom       roomModel.Classroom `json:"classroom"`
	Date            string              `json:"date"`
	DayOfWeek       dbtime.DayOfWeek    `json:"day_of_week"`
	StartTime       string              `json:"start_time"`
	EndTime         string              `json:"end_time"`
	Status          m.SessionStatus     `json:"status"`
	Type            m.SessionType       `json:"type"`
	Mode            m.SessionMode       `json:"mode"`
	PostponedToDate *string             `json:"postponed_to_date,omitempty"`
	TopicsCovered   *string             `json:"topics_covered,omitempty"`
	Snapshot        datatypes.JSONMap   `json:"schedule_snapshot,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

func FromModel(s m.SessionModel) SessionResponse {
	d := s.Date()
	out := SessionResponse{
		ID:            s.SessionID,
		SubjectID:     s.SessionSubjectID,
		GroupID:       s.SessionGroupID,
		ScheduleID:    s.SessionScheduleID,
		Classroom:     s.SessionRoom,
		Date:          d.Format(dbtime.DateLayout),
		DayOfWeek:     dbtime.DayOf(d),
		StartTime:     s.SessionStart.HHMM(),
		EndTime:       s.SessionEnd.HHMM(),
		Status:        s.SessionStatus,
		Type:          s.SessionType,
		Mode:          s.SessionMode,
		TopicsCovered: s.SessionTopics,
		Snapshot:      s.SessionScheduleSnapshot,
		CreatedAt:     s.SessionCreatedAt,
		UpdatedAt:     s.SessionUpdatedAt,
	}
	if s.SessionPostponedTo != nil {
		p := time.Time(*s.SessionPostponedTo).Format(dbtime.DateLayout)
		out.PostponedToDate = &p
	}
	return out
}

func FromModels(rows []m.SessionModel) []SessionResponse {
	out := make([]SessionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
