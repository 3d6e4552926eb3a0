package dbtime

import (
	"testing"
	"time"
)

func TestDateOnlyAndSameDate(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	a := time.Date(2024, 3, 4, 23, 59, 0, 0, loc)
	if got := DateOnly(a); got.Hour() != 0 || got.Day() != 4 || got.Location() != time.UTC {
		t.Fatalf("DateOnly = %v", got)
	}
	if !SameDate(a, time.Date(2024, 3, 4, 1, 0, 0, 0, time.UTC)) {
		t.Fatal("same calendar date")
	}
	if _, err := ParseDate("04/03/2024"); err == nil {
		t.Fatal("non ISO date must be rejected")
	}
}

func TestDayOfWeekWraps(t *testing.T) {
	d, _ := ParseDate("2024-01-08")
	if DayOf(d.AddDate(0, 0, 6)) != Sunday || DayOf(d.AddDate(0, 0, 7)) != Monday {
		t.Fatal("weekday sequence")
	}
}

func TestLoadLocation(t *testing.T) {
	if LoadLocation("") != time.UTC || LoadLocation("Nowhere/Atlantis") != time.UTC {
		t.Fatal("fallback to UTC")
	}
}
