// file: internals/features/scheduling/sessions/service/session_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	database "trainingcenter_backend/internals/databases"
	conflictModel "trainingcenter_backend/internals/features/scheduling/conflicts/model"
	conflictSvc "trainingcenter_backend/internals/features/scheduling/conflicts/service"
	schedModel "trainingcenter_backend/internals/features/scheduling/schedules/model"
	schedSvc "trainingcenter_backend/internals/features/scheduling/schedules/service"
	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

const lockScope = "session"

func dateKey(d time.Time) string {
	return database.LockKey(lockScope, dbtime.DateOnly(d).Format(dbtime.DateLayout))
}

var (
	ErrSamePostponeDate  = errors.New("postpone target must be a different date")
	ErrWindowTooLarge    = fmt.Errorf("materialize window exceeds %d days", MaxMaterializeDays)
	ErrWindowInverted    = errors.New("materialize window: from must not be after to")
	ErrScheduleNotActive = errors.New("schedule is not active")
)

// SessionStore is the persistence the service writes through. *Store is
// the GORM implementation; WithTx binds it to the locked transaction.
type SessionStore interface {
	conflictSvc.SessionLookup
	Get(ctx context.Context, id uuid.UUID) (*m.SessionModel, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*m.SessionModel, error)
	Create(ctx context.Context, row *m.SessionModel) error
	CreateIfAbsent(ctx context.Context, row *m.SessionModel) (bool, error)
	Save(ctx context.Context, row *m.SessionModel) error
	ScheduledDates(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) (map[string]bool, error)
	List(ctx context.Context, f ListFilter) ([]m.SessionModel, error)
	WithTx(tx *gorm.DB) SessionStore
}

// ScheduleReader loads the weekly slot a materialization expands.
type ScheduleReader interface {
	Get(ctx context.Context, id uuid.UUID) (*schedModel.ScheduleModel, error)
}

// Service owns every session write. Each write runs in one transaction
// holding the advisory lock of every date it touches.
type Service struct {
	Locks     database.DayLocker
	Store     SessionStore
	Schedules ScheduleReader
	Groups    conflictSvc.GroupDirectory
	Checker   *conflictSvc.Checker
}

func NewService(db *gorm.DB, checker *conflictSvc.Checker, groups conflictSvc.GroupDirectory) *Service {
	return &Service{
		Locks:     database.NewDayLocker(db),
		Store:     NewStore(db),
		Schedules: schedSvc.NewStore(db),
		Groups:    groups,
		Checker:   checker,
	}
}

func (s *Service) Check(ctx context.Context, candidate m.SessionModel, excludeID *uuid.UUID) ([]conflictModel.Conflict, error) {
	return s.Checker.CheckSessionConflict(ctx, candidate, excludeID)
}

/* =========================
   Create / Reschedule
========================= */

// Create books an ad hoc session (EXTRA, MAKE_UP or a SCHEDULING placeholder).
func (s *Service) Create(ctx context.Context, row *m.SessionModel) error {
	if row.SessionID == uuid.Nil {
		row.SessionID = uuid.New()
	}
	row.SessionStatus = m.SessionStatusScheduled
	if row.SessionType == "" {
		row.SessionType = m.SessionTypeExtra
	}
	if row.SessionMode == "" {
		row.SessionMode = m.SessionModeOnsite
	}

	return s.Locks.WithDayLock(ctx, []string{dateKey(row.Date())}, func(tx *gorm.DB) error {
		store := s.Store.WithTx(tx)
		if err := s.Checker.WithSessions(store).AssertNoSessionConflict(ctx, *row, nil); err != nil {
			return err
		}
		if err := store.Create(ctx, row); err != nil {
			return err
		}
		zap.L().Info("session created",
			zap.String("session_id", row.SessionID.String()),
			zap.String("date", row.Date().Format(dbtime.DateLayout)),
			zap.String("classroom", string(row.SessionRoom)),
			zap.String("type", string(row.SessionType)),
		)
		return nil
	})
}

// Reschedule moves a SCHEDULED session to another date, time or room.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, mv Move) (*m.SessionModel, error) {
	before, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var out *m.SessionModel
	err = s.Locks.WithDayLock(ctx, []string{dateKey(before.Date()), dateKey(mv.Date)}, func(tx *gorm.DB) error {
		store := s.Store.WithTx(tx)
		row, err := store.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if row.SessionStatus != m.SessionStatusScheduled {
			return conflictModel.InvalidSessionState(string(row.SessionStatus), string(m.SessionStatusScheduled))
		}
		mv.applyTo(row)
		if err := s.Checker.WithSessions(store).AssertNoSessionConflict(ctx, *row, &row.SessionID); err != nil {
			return err
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

/* =========================
   Status transitions
========================= */

func (s *Service) transition(ctx context.Context, id uuid.UUID, apply func(*m.SessionModel) error) (*m.SessionModel, error) {
	var out *m.SessionModel
	err := s.Locks.WithDayLock(ctx, nil, func(tx *gorm.DB) error {
		store := s.Store.WithTx(tx)
		row, err := store.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		from := row.SessionStatus
		if err := apply(row); err != nil {
			return err
		}
		if err := store.Save(ctx, row); err != nil {
			return err
		}
		zap.L().Info("session status changed",
			zap.String("session_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(row.SessionStatus)),
		)
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Start(ctx context.Context, id uuid.UUID) (*m.SessionModel, error) {
	return s.transition(ctx, id, func(row *m.SessionModel) error {
		return row.Transition(m.SessionStatusInProgress)
	})
}

// Complete expects topics already validated by the request layer.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, topics string) (*m.SessionModel, error) {
	return s.transition(ctx, id, func(row *m.SessionModel) error {
		return row.Complete(topics)
	})
}

// Cancel frees the slot; the row stays as history.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*m.SessionModel, error) {
	return s.transition(ctx, id, func(row *m.SessionModel) error {
		return row.Transition(m.SessionStatusCancelled)
	})
}

// Postpone marks the session POSTPONED and books its MAKE_UP replacement on
// the target date, atomically. The replacement must pass the checker.
func (s *Service) Postpone(ctx context.Context, id uuid.UUID, mv Move) (orig *m.SessionModel, makeUp *m.SessionModel, err error) {
	before, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if dbtime.SameDate(before.Date(), mv.Date) {
		return nil, nil, ErrSamePostponeDate
	}

	err = s.Locks.WithDayLock(ctx, []string{dateKey(before.Date()), dateKey(mv.Date)}, func(tx *gorm.DB) error {
		store := s.Store.WithTx(tx)
		row, err := store.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !m.CanTransition(row.SessionStatus, m.SessionStatusPostponed) {
			return conflictModel.InvalidSessionState(string(row.SessionStatus), string(m.SessionStatusPostponed))
		}

		mk := MakeUpFor(*row, mv)
		if err := s.Checker.WithSessions(store).AssertNoSessionConflict(ctx, mk, &row.SessionID); err != nil {
			return err
		}
		if err := row.Postpone(mv.Date); err != nil {
			return err
		}
		if err := store.Save(ctx, row); err != nil {
			return err
		}
		if err := store.Create(ctx, &mk); err != nil {
			return err
		}
		orig, makeUp = row, &mk
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	zap.L().Info("session postponed",
		zap.String("session_id", id.String()),
		zap.String("make_up_id", makeUp.SessionID.String()),
		zap.String("to", mv.Date.Format(dbtime.DateLayout)),
	)
	return orig, makeUp, nil
}

/* =========================
   Materialize
========================= */

type SkippedDate struct {
	Date      string                   `json:"date"`
	Conflicts []conflictModel.Conflict `json:"conflicts"`
}

type MaterializeResult struct {
	Created  []m.SessionModel `json:"created"`
	Existing []string         `json:"existing"`
	Skipped  []SkippedDate    `json:"skipped"`
}

// Materialize creates the REGULAR occurrences of a schedule for every
// matching date in [from,to]. Dates that already have one are left alone;
// dates that would conflict are skipped and reported.
func (s *Service) Materialize(ctx context.Context, scheduleID uuid.UUID, from, to time.Time) (*MaterializeResult, error) {
	from, to = dbtime.DateOnly(from), dbtime.DateOnly(to)
	if from.After(to) {
		return nil, ErrWindowInverted
	}
	if to.Sub(from) > MaxMaterializeDays*24*time.Hour {
		return nil, ErrWindowTooLarge
	}

	sched, err := s.Schedules.Get(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if !sched.ScheduleIsActive {
		return nil, ErrScheduleNotActive
	}
	subjectID, err := s.Groups.SubjectIDOf(ctx, sched.ScheduleGroupID)
	if err != nil {
		return nil, err
	}

	dates := Occurrences(sched.ScheduleDay, from, to)
	res := &MaterializeResult{
		Created:  []m.SessionModel{},
		Existing: []string{},
		Skipped:  []SkippedDate{},
	}
	if len(dates) == 0 {
		return res, nil
	}

	keys := make([]string, 0, len(dates))
	for _, d := range dates {
		keys = append(keys, dateKey(d))
	}

	err = s.Locks.WithDayLock(ctx, keys, func(tx *gorm.DB) error {
		store := s.Store.WithTx(tx)
		checker := s.Checker.WithSessions(store)

		existing, err := store.ScheduledDates(ctx, scheduleID, from, to)
		if err != nil {
			return err
		}
		for _, d := range dates {
			day := d.Format(dbtime.DateLayout)
			if existing[day] {
				res.Existing = append(res.Existing, day)
				continue
			}
			row := FromSchedule(*sched, d, subjectID)
			conflicts, err := checker.CheckSessionConflict(ctx, row, nil)
			if err != nil {
				return err
			}
			if len(conflicts) > 0 {
				res.Skipped = append(res.Skipped, SkippedDate{Date: day, Conflicts: conflicts})
				continue
			}
			created, err := store.CreateIfAbsent(ctx, &row)
			if err != nil {
				return err
			}
			if !created {
				res.Existing = append(res.Existing, day)
				continue
			}
			res.Created = append(res.Created, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("schedule materialized",
		zap.String("schedule_id", scheduleID.String()),
		zap.Int("created", len(res.Created)),
		zap.Int("existing", len(res.Existing)),
		zap.Int("skipped", len(res.Skipped)),
	)
	return res, nil
}

/* =========================
   Reads
========================= */

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*m.SessionModel, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]m.SessionModel, error) {
	return s.Store.List(ctx, f)
}
