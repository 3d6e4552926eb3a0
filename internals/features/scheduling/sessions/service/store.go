// file: internals/features/scheduling/sessions/service/store.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

type Store struct{ DB *gorm.DB }

var _ SessionStore = (*Store)(nil)

func NewStore(db *gorm.DB) *Store { return &Store{DB: db} }

func (s *Store) WithTx(tx *gorm.DB) SessionStore { return &Store{DB: tx} }

func liveStatuses() pq.StringArray {
	out := make(pq.StringArray, 0, len(m.LiveStatuses))
	for _, st := range m.LiveStatuses {
		out = append(out, string(st))
	}
	return out
}

// ListLiveByDate returns SCHEDULED/IN_PROGRESS sessions of one date in every classroom.
func (s *Store) ListLiveByDate(ctx context.Context, date time.Time, excludeID *uuid.UUID) ([]m.SessionModel, error) {
	q := s.DB.WithContext(ctx).
		Where("session_date = ?", dbtime.DateOnly(date).Format(dbtime.DateLayout)).
		Where("session_status = ANY(?::text[])", liveStatuses())
	if excludeID != nil {
		q = q.Where("session_id <> ?", *excludeID)
	}
	var rows []m.SessionModel
	if err := q.Order("session_start_time ASC, session_classroom ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*m.SessionModel, error) {
	var row m.SessionModel
	if err := s.DB.WithContext(ctx).Where("session_id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) GetForUpdate(ctx context.Context, id uuid.UUID) (*m.SessionModel, error) {
	var row m.SessionModel
	if err := s.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("session_id = ?", id).
		Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) Create(ctx context.Context, row *m.SessionModel) error {
	return s.DB.WithContext(ctx).Create(row).Error
}

// CreateIfAbsent inserts unless the (schedule, date) occurrence already
// exists; reports whether a row was written.
func (s *Store) CreateIfAbsent(ctx context.Context, row *m.SessionModel) (bool, error) {
	tx := s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (s *Store) Save(ctx context.Context, row *m.SessionModel) error {
	return s.DB.WithContext(ctx).Save(row).Error
}

// ScheduledDates returns the dates in [from,to] that already hold a regular
// occurrence of the schedule, in any status.
func (s *Store) ScheduledDates(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) (map[string]bool, error) {
	var dates []time.Time
	if err := s.DB.WithContext(ctx).
		Model(&m.SessionModel{}).
		Where("session_schedule_id = ? AND session_type = ?", scheduleID, m.SessionTypeRegular).
		Where("session_date BETWEEN ? AND ?", from.Format(dbtime.DateLayout), to.Format(dbtime.DateLayout)).
		Pluck("session_date", &dates).Error; err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(dates))
	for _, d := range dates {
		out[d.Format(dbtime.DateLayout)] = true
	}
	return out, nil
}

type ListFilter struct {
	From       *time.Time
	To         *time.Time
	Classroom  *roomModel.Classroom
	GroupID    *uuid.UUID
	ScheduleID *uuid.UUID
	Statuses   []m.SessionStatus
}

func (s *Store) List(ctx context.Context, f ListFilter) ([]m.SessionModel, error) {
	q := s.DB.WithContext(ctx).Model(&m.SessionModel{})
	if f.From != nil {
		q = q.Where("session_date >= ?", f.From.Format(dbtime.DateLayout))
	}
	if f.To != nil {
		q = q.Where("session_date <= ?", f.To.Format(dbtime.DateLayout))
	}
	if f.Classroom != nil {
		q = q.Where("session_classroom = ?", *f.Classroom)
	}
	if f.GroupID != nil {
		q = q.Where("session_group_id = ?", *f.GroupID)
	}
	if f.ScheduleID != nil {
		q = q.Where("session_schedule_id = ?", *f.ScheduleID)
	}
	if len(f.Statuses) > 0 {
		arr := make(pq.StringArray, 0, len(f.Statuses))
		for _, st := range f.Statuses {
			arr = append(arr, string(st))
		}
		q = q.Where("session_status = ANY(?::text[])", arr)
	}
	var rows []m.SessionModel
	if err := q.Order("session_date ASC, session_start_time ASC, session_classroom ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
