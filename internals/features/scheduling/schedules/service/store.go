// file: internals/features/scheduling/schedules/service/store.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	m "trainingcenter_backend/internals/features/scheduling/schedules/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

/* =========================
   Store (GORM)
========================= */

type Store struct{ DB *gorm.DB }

var _ ScheduleStore = (*Store)(nil)

func NewStore(db *gorm.DB) *Store { return &Store{DB: db} }

// WithTx binds the store to a running transaction.
func (s *Store) WithTx(tx *gorm.DB) ScheduleStore { return &Store{DB: tx} }

// ListActiveByDay returns the active weekly slots of one weekday in every
// classroom. Teacher and student rules need the cross-room view.
func (s *Store) ListActiveByDay(ctx context.Context, day dbtime.DayOfWeek, excludeID *uuid.UUID) ([]m.ScheduleModel, error) {
	q := s.DB.WithContext(ctx).
		Where("schedule_day_of_week = ? AND schedule_is_active = TRUE", day)
	if excludeID != nil {
		q = q.Where("schedule_id <> ?", *excludeID)
	}
	var rows []m.ScheduleModel
	if err := q.Order("schedule_start_time ASC, schedule_classroom ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (*m.ScheduleModel, error) {
	var row m.ScheduleModel
	if err := s.DB.WithContext(ctx).
		Where("schedule_id = ?", id).
		Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// GetForUpdate row-locks the schedule inside a transaction.
func (s *Store) GetForUpdate(ctx context.Context, id uuid.UUID) (*m.ScheduleModel, error) {
	var row m.ScheduleModel
	if err := s.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("schedule_id = ?", id).
		Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) Create(ctx context.Context, row *m.ScheduleModel) error {
	return s.DB.WithContext(ctx).Create(row).Error
}

func (s *Store) Save(ctx context.Context, row *m.ScheduleModel) error {
	return s.DB.WithContext(ctx).Save(row).Error
}

// SoftDelete sets schedule_deleted_at; history keeps the row.
func (s *Store) SoftDelete(ctx context.Context, row *m.ScheduleModel) error {
	return s.DB.WithContext(ctx).Delete(row).Error
}

type ListFilter struct {
	GroupID    *uuid.UUID
	Day        *dbtime.DayOfWeek
	Classroom  *roomModel.Classroom
	ActiveOnly bool
}

func (s *Store) List(ctx context.Context, f ListFilter) ([]m.ScheduleModel, error) {
	q := s.DB.WithContext(ctx).Model(&m.ScheduleModel{})
	if f.GroupID != nil {
		q = q.Where("schedule_group_id = ?", *f.GroupID)
	}
	if f.Day != nil {
		q = q.Where("schedule_day_of_week = ?", *f.Day)
	}
	if f.Classroom != nil {
		q = q.Where("schedule_classroom = ?", *f.Classroom)
	}
	if f.ActiveOnly {
		q = q.Where("schedule_is_active = TRUE")
	}
	var rows []m.ScheduleModel
	if err := q.Order("schedule_day_of_week ASC, schedule_start_time ASC, schedule_classroom ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
