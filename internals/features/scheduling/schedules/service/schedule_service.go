// file: internals/features/scheduling/schedules/service/schedule_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	database "trainingcenter_backend/internals/databases"
	conflictModel "trainingcenter_backend/internals/features/scheduling/conflicts/model"
	conflictSvc "trainingcenter_backend/internals/features/scheduling/conflicts/service"
	m "trainingcenter_backend/internals/features/scheduling/schedules/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

const lockScope = "schedule"

func dayKey(d dbtime.DayOfWeek) string { return database.LockKey(lockScope, string(d)) }

// ScheduleStore is the persistence the service writes through. *Store is
// the GORM implementation.
type ScheduleStore interface {
	conflictSvc.ScheduleLookup
	Get(ctx context.Context, id uuid.UUID) (*m.ScheduleModel, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*m.ScheduleModel, error)
	Create(ctx context.Context, row *m.ScheduleModel) error
	Save(ctx context.Context, row *m.ScheduleModel) error
	SoftDelete(ctx context.Context, row *m.ScheduleModel) error
	List(ctx context.Context, f ListFilter) ([]m.ScheduleModel, error)
	WithTx(tx *gorm.DB) ScheduleStore
}

// Service wraps check + persist of weekly slots in one transaction holding
// the weekday lock, so two concurrent creates cannot both pass the check.
type Service struct {
	Locks   database.DayLocker
	Store   ScheduleStore
	Checker *conflictSvc.Checker
}

func NewService(db *gorm.DB, checker *conflictSvc.Checker) *Service {
	return &Service{Locks: database.NewDayLocker(db), Store: NewStore(db), Checker: checker}
}

// Check is the dry run: same report the write path would produce, nothing persisted.
func (s *Service) Check(ctx context.Context, candidate m.ScheduleModel, excludeID *uuid.UUID) ([]conflictModel.Conflict, error) {
	return s.Checker.CheckScheduleConflict(ctx, candidate, excludeID)
}

func (s *Service) Create(ctx context.Context, row *m.ScheduleModel) error {
	if row.ScheduleID == uuid.Nil {
		row.ScheduleID = uuid.New()
	}
	row.ScheduleIsActive = true

	return s.Locks.WithDayLock(ctx, []string{dayKey(row.ScheduleDay)}, func(tx *gorm.DB) error {
		store := s.Store.WithTx(tx)
		if err := s.Checker.WithSchedules(store).AssertNoScheduleConflict(ctx, *row, nil); err != nil {
			return err
		}
		if err := store.Create(ctx, row); err != nil {
			return err
		}
		zap.L().Info("schedule created",
			zap.String("schedule_id", row.ScheduleID.String()),
			zap.String("day", string(row.ScheduleDay)),
			zap.String("classroom", string(row.ScheduleRoom)),
		)
		return nil
	})
}

// Update applies patch to the stored slot and re-checks it against every
// other active slot, excluding itself.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch func(*m.ScheduleModel)) (*m.ScheduleModel, error) {
	before, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	preview := *before
	patch(&preview)

	var out *m.ScheduleModel
	err = s.Locks.WithDayLock(ctx, []string{dayKey(before.ScheduleDay), dayKey(preview.ScheduleDay)}, func(tx *gorm.DB) error {
		store := s.Store.WithTx(tx)
		row, err := store.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		patch(row)
		if row.ScheduleDay != preview.ScheduleDay && row.ScheduleDay != before.ScheduleDay {
			// row moved between the preview read and the lock
			if err := s.Locks.LockDays(tx, dayKey(row.ScheduleDay)); err != nil {
				return err
			}
		}
		if row.ScheduleIsActive {
			if err := s.Checker.WithSchedules(store).AssertNoScheduleConflict(ctx, *row, &row.ScheduleID); err != nil {
				return err
			}
		} else if !dbtime.ValidRange(row.ScheduleStart, row.ScheduleEnd) {
			return conflictModel.InvalidTimeRange(row.ScheduleStart, row.ScheduleEnd)
		}
		if err := store.Save(ctx, row); err != nil {
			return err
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetActive toggles a slot. Reactivation is a booking and goes through the checker.
func (s *Service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*m.ScheduleModel, error) {
	return s.Update(ctx, id, func(row *m.ScheduleModel) { row.ScheduleIsActive = active })
}

// Delete soft-deletes the slot. Sessions already materialized from it stay.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*m.ScheduleModel, error) {
	var out *m.ScheduleModel
	err := s.Locks.WithDayLock(ctx, nil, func(tx *gorm.DB) error {
		store := s.Store.WithTx(tx)
		row, err := store.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := store.SoftDelete(ctx, row); err != nil {
			return err
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("schedule deleted", zap.String("schedule_id", id.String()))
	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*m.ScheduleModel, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]m.ScheduleModel, error) {
	return s.Store.List(ctx, f)
}
