// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Tod is a wall-clock time of day stored in a Postgres TIME column.
// The date part is always 0000-01-01 UTC so two Tods compare by clock only.
type Tod struct{ time.Time }

// From: build a Tod from time.Time (keep HH:mm:ss, drop date & zone)
func From(t time.Time) Tod {
	return Tod{
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
	}
}

// Clock builds a Tod from hour/minute.
func Clock(hour, minute int) Tod {
	return Tod{Time: time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)}
}

// Parse: build a Tod from "HH:mm[:ss]"
func Parse(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

// MustParse is for fixtures and constants.
func MustParse(s string) Tod {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Scan: accepts time.Time or string ("HH:MM[:SS]")
func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*t = From(x)
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	// postgres may send fractional seconds ("09:00:00.000000")
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return fmt.Errorf("tod: invalid time of day %q", s)
	}
	*t = From(tt)
	return nil
}

// Value: send "HH:MM:SS" so Postgres TIME understands it
func (t Tod) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t Tod) String() string {
	return t.Format("15:04:05")
}

// HHMM is the short form used in human-readable conflict details.
func (t Tod) HHMM() string {
	return t.Format("15:04")
}

// Minutes since midnight.
func (t Tod) Minutes() int {
	return t.Hour()*60 + t.Minute()
}

func (t Tod) seconds() int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}

func (t Tod) Before(o Tod) bool { return t.seconds() < o.seconds() }
func (t Tod) Equal(o Tod) bool  { return t.seconds() == o.seconds() }

func (t Tod) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}
