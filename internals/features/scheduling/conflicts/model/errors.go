// file: internals/features/scheduling/conflicts/model/errors.go
package model

import (
	"errors"
	"fmt"
)

// ErrorKind enumerates every booking failure the scheduling core raises.
type ErrorKind string

const (
	KindInvalidTimeRange    ErrorKind = "INVALID_TIME_RANGE"
	KindScheduleConflict    ErrorKind = "SCHEDULE_CONFLICT"
	KindSessionConflict     ErrorKind = "SESSION_CONFLICT"
	KindInvalidSessionState ErrorKind = "INVALID_SESSION_STATE"
)

// BookingError carries enough structure to render a precise message.
// Which payload fields are set depends on Kind.
type BookingError struct {
	Kind    ErrorKind
	Message string

	// SCHEDULE_CONFLICT / SESSION_CONFLICT
	Conflicts    []Conflict
	Count        int
	ConflictType ConflictType
	Detail       string

	// INVALID_SESSION_STATE
	From string
	To   string
}

func (e *BookingError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

// Is matches on Kind so errors.Is(err, ErrScheduleConflict) works for any payload.
func (e *BookingError) Is(target error) bool {
	var t *BookingError
	if !errors.As(target, &t) || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

var (
	ErrInvalidTimeRange    = &BookingError{Kind: KindInvalidTimeRange}
	ErrScheduleConflict    = &BookingError{Kind: KindScheduleConflict}
	ErrSessionConflict     = &BookingError{Kind: KindSessionConflict}
	ErrInvalidSessionState = &BookingError{Kind: KindInvalidSessionState}
)

func InvalidTimeRange(start, end fmt.Stringer) *BookingError {
	return &BookingError{
		Kind:    KindInvalidTimeRange,
		Message: fmt.Sprintf("start_time (%s) must be before end_time (%s)", start, end),
	}
}

func ScheduleConflict(conflicts []Conflict) *BookingError {
	e := &BookingError{
		Kind:      KindScheduleConflict,
		Conflicts: conflicts,
		Count:     len(conflicts),
		Message:   fmt.Sprintf("schedule conflicts with %d existing booking(s)", len(conflicts)),
	}
	if len(conflicts) > 0 {
		e.ConflictType = conflicts[0].ConflictType
		e.Detail = conflicts[0].Detail
	}
	return e
}

// SessionConflict reports the first unresolved conflict; the full list rides along.
func SessionConflict(conflicts []Conflict) *BookingError {
	e := &BookingError{
		Kind:      KindSessionConflict,
		Conflicts: conflicts,
		Count:     len(conflicts),
	}
	if len(conflicts) > 0 {
		e.ConflictType = conflicts[0].ConflictType
		e.Detail = conflicts[0].Detail
		e.Message = fmt.Sprintf("session conflict (%s): %s", e.ConflictType, e.Detail)
	} else {
		e.Message = "session conflict"
	}
	return e
}

func InvalidSessionState(from, to string) *BookingError {
	return &BookingError{
		Kind:    KindInvalidSessionState,
		From:    from,
		To:      to,
		Message: fmt.Sprintf("invalid session state transition %s -> %s", from, to),
	}
}

// AsBookingError unwraps err into a *BookingError.
func AsBookingError(err error) (*BookingError, bool) {
	var be *BookingError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
