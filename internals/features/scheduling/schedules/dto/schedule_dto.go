// file: internals/features/scheduling/schedules/dto/schedule_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	m "trainingcenter_backend/internals/features/scheduling/schedules/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

/* =========================
   Requests
========================= */

// CreateScheduleRequest is also the body of the dry-run check.
type CreateScheduleRequest struct {
	GroupID   uuid.UUID `json:"group_id" validate:"required"`
	DayOfWeek string    `json:"day_of_week" validate:"required,weekday"`
	StartTime string    `json:"start_time" validate:"required,tod"`
	EndTime   string    `json:"end_time" validate:"required,tod"`
	Classroom string    `json:"classroom" validate:"required,classroom"`

	// dry run only: re-check an existing slot without matching itself
	ExcludeID *uuid.UUID `json:"exclude_id,omitempty"`
}

// ToModel assumes the request passed validation.
func (r CreateScheduleRequest) ToModel() (m.ScheduleModel, error) {
	day, err := dbtime.ParseDay(r.DayOfWeek)
	if err != nil {
		return m.ScheduleModel{}, err
	}
	start, err := dbtime.Parse(r.StartTime)
	if err != nil {
		return m.ScheduleModel{}, err
	}
	end, err := dbtime.Parse(r.EndTime)
	if err != nil {
		return m.ScheduleModel{}, err
	}
	room, err := roomModel.ParseClassroom(r.Classroom)
	if err != nil {
		return m.ScheduleModel{}, err
	}
	return m.ScheduleModel{
		ScheduleGroupID:  r.GroupID,
		ScheduleDay:      day,
		ScheduleStart:    start,
		ScheduleEnd:      end,
		ScheduleRoom:     room,
		ScheduleIsActive: true,
	}, nil
}

// UpdateScheduleRequest: PATCH, every field optional.
type UpdateScheduleRequest struct {
	DayOfWeek *string `json:"day_of_week" validate:"omitempty,weekday"`
	StartTime *string `json:"start_time" validate:"omitempty,tod"`
	EndTime   *string `json:"end_time" validate:"omitempty,tod"`
	Classroom *string `json:"classroom" validate:"omitempty,classroom"`
	IsActive  *bool   `json:"is_active"`
}

// Patch parses once and returns the mutation the service applies under lock.
func (r UpdateScheduleRequest) Patch() (func(*m.ScheduleModel), error) {
	var (
		day        *dbtime.DayOfWeek
		start, end *dbtime.Tod
		room       *roomModel.Classroom
	)
	if r.DayOfWeek != nil {
		d, err := dbtime.ParseDay(*r.DayOfWeek)
		if err != nil {
			return nil, err
		}
		day = &d
	}
	if r.StartTime != nil {
		t, err := dbtime.Parse(*r.StartTime)
		if err != nil {
			return nil, err
		}
		start = &t
	}
	if r.EndTime != nil {
		t, err := dbtime.Parse(*r.EndTime)
		if err != nil {
			return nil, err
		}
		end = &t
	}
	if r.Classroom != nil {
		c, err := roomModel.ParseClassroom(*r.Classroom)
		if err != nil {
			return nil, err
		}
		room = &c
	}
	active := r.IsActive

	return func(s *m.ScheduleModel) {
		if day != nil {
			s.ScheduleDay = *day
		}
		if start != nil {
			s.ScheduleStart = *start
		}
		if end != nil {
			s.ScheduleEnd = *end
		}
		if room != nil {
			s.ScheduleRoom = *room
		}
		if active != nil {
			s.ScheduleIsActive = *active
		}
	}, nil
}

/* =========================
   Response
========================= */

type ScheduleResponse struct {
	ID        uuid.UUID           `json:"schedule_id"`
	GroupID   uuid.UUID           `json:"group_id"`
	DayOfWeek dbtime.DayOfWeek    `json:"day_of_week"`
	StartTime string              `json:"start_time"`
	EndTime   string              `json:"end_time"`
	Classroom roomModel.Classroom `json:"classroom"`
	IsActive  bool                `json:"is_active"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	DeletedAt *time.Time          `json:"deleted_at,omitempty"`
}

func FromModel(s m.ScheduleModel) ScheduleResponse {
	out := ScheduleResponse{
		ID:        s.ScheduleID,
		GroupID:   s.ScheduleGroupID,
		DayOfWeek: s.ScheduleDay,
		StartTime: s.ScheduleStart.HHMM(),
		EndTime:   s.ScheduleEnd.HHMM(),
		Classroom: s.ScheduleRoom,
		IsActive:  s.ScheduleIsActive,
		CreatedAt: s.ScheduleCreatedAt,
		UpdatedAt: s.ScheduleUpdatedAt,
	}
	if s.ScheduleDeletedAt.Valid {
		t := s.ScheduleDeletedAt.Time
		out.DeletedAt = &t
	}
	return out
}

func FromModels(rows []m.ScheduleModel) []ScheduleResponse {
	out := make([]ScheduleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
