// file: internals/features/scheduling/sessions/model/status.go
package model

import (
	"time"

	"gorm.io/datatypes"

	conflictModel "trainingcenter_backend/internals/features/scheduling/conflicts/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

// MinTopicsLength is enforced by the completion request, not by Transition.
const MinTopicsLength = 10

var transitions = map[SessionStatus][]SessionStatus{
	SessionStatusScheduled:  {SessionStatusInProgress, SessionStatusCancelled, SessionStatusPostponed},
	SessionStatusInProgress: {SessionStatusCompleted},
}

// CanTransition reports whether from -> to is an allowed edge.
func CanTransition(from, to SessionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the session to a new status.
// COMPLETED, CANCELLED and POSTPONED are terminal.
func (m *SessionModel) Transition(to SessionStatus) error {
	if !CanTransition(m.SessionStatus, to) {
		return conflictModel.InvalidSessionState(string(m.SessionStatus), string(to))
	}
	m.SessionStatus = to
	return nil
}

// Postpone marks the session POSTPONED and points it at the target date.
func (m *SessionModel) Postpone(target time.Time) error {
	if err := m.Transition(SessionStatusPostponed); err != nil {
		return err
	}
	d := datatypes.Date(dbtime.DateOnly(target))
	m.SessionPostponedTo = &d
	return nil
}

// Complete records the topics and closes the session.
func (m *SessionModel) Complete(topics string) error {
	if err := m.Transition(SessionStatusCompleted); err != nil {
		return err
	}
	m.SessionTopics = &topics
	return nil
}
