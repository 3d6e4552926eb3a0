// file: internals/helpers/dbtime/dates.go
package dbtime

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// DayOfWeek is stored as its upper-case English name.
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var weekdays = map[time.Weekday]DayOfWeek{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// DayOf returns the DayOfWeek of a calendar date.
func DayOf(d time.Time) DayOfWeek { return weekdays[d.Weekday()] }

func (d DayOfWeek) Valid() bool {
	for _, v := range weekdays {
		if v == d {
			return true
		}
	}
	return false
}

// ParseDay accepts any case ("monday", "MONDAY").
func ParseDay(s string) (DayOfWeek, error) {
	d := DayOfWeek(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("invalid day_of_week %q", s)
	}
	return d, nil
}

// DateOnly normalizes to midnight UTC so a DATE column never shifts.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses "YYYY-MM-DD" into a DateOnly value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (YYYY-MM-DD)", s)
	}
	return DateOnly(t), nil
}

func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// LoadLocation falls back to UTC on an unknown zone name.
func LoadLocation(name string) *time.Location {
	if strings.TrimSpace(name) == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
