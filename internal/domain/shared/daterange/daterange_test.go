package daterange

import (
	"errors"
	"testing"
	"time"
)

func day(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := ParseDay(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return d
}

func TestNewRejectsInvalidRanges(t *testing.T) {
	checkIn := day(t, "2024-06-03")
	for _, checkOut := range []time.Time{checkIn, checkIn.AddDate(0, 0, -1)} {
		if _, err := New(checkIn, checkOut); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("expected ErrInvalidRange for check-out %v, got %v", checkOut, err)
		}
	}
}

func TestNewNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("WITA", 8*3600)
	dr, err := New(
		time.Date(2024, 6, 3, 14, 30, 0, 0, loc),
		time.Date(2024, 6, 5, 10, 0, 0, 0, loc),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dr.CheckIn.Hour() != 0 || dr.CheckIn.Location() != time.UTC {
		t.Fatalf("check-in not normalized: %v", dr.CheckIn)
	}
	if dr.Nights() != 2 {
		t.Fatalf("expected 2 nights, got %d", dr.Nights())
	}
}

func TestNightsMatchesDayCount(t *testing.T) {
	cases := []struct {
		in, out string
		nights  int
	}{
		{"2024-06-03", "2024-06-04", 1},
		{"2024-06-03", "2024-06-05", 2},
		{"2024-06-28", "2024-07-05", 7},
		{"2024-02-27", "2024-03-02", 4}, // leap day crossing
	}
	for _, tc := range cases {
		dr, err := New(day(t, tc.in), day(t, tc.out))
		if err != nil {
			t.Fatalf("%s..%s: %v", tc.in, tc.out, err)
		}
		if dr.Nights() != tc.nights {
			t.Fatalf("%s..%s: expected %d nights, got %d", tc.in, tc.out, tc.nights, dr.Nights())
		}
		days := dr.Days()
		if len(days) != tc.nights {
			t.Fatalf("%s..%s: expected %d days, got %d", tc.in, tc.out, tc.nights, len(days))
		}
		if DayKey(days[0]) != tc.in {
			t.Fatalf("first day should be check-in, got %s", DayKey(days[0]))
		}
		last := days[len(days)-1]
		if !last.Before(dr.CheckOut) {
			t.Fatalf("enumeration must exclude check-out, got %s", DayKey(last))
		}
	}
}

func TestIsWeekend(t *testing.T) {
	if IsWeekend(day(t, "2024-06-03")) { // Monday
		t.Fatal("Monday flagged as weekend")
	}
	if !IsWeekend(day(t, "2024-06-08")) { // Saturday
		t.Fatal("Saturday not flagged as weekend")
	}
	if !IsWeekend(day(t, "2024-06-09")) { // Sunday
		t.Fatal("Sunday not flagged as weekend")
	}
}
