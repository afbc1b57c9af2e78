package daterange

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("daterange: check-out must be strictly after check-in")

// DayLayout is the ISO key used for per-date rate tables and booked-date sets.
const DayLayout = "2006-01-02"

// DateRange is a half-open stay interval: nights cover
// [CheckIn, CheckOut), the check-out day itself is not occupied.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New normalizes both endpoints to UTC midnight and validates the range.
func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if !dr.CheckOut.After(dr.CheckIn) {
		return DateRange{}, ErrInvalidRange
	}
	return dr, nil
}

// Nights returns the number of nights the range spans.
func (dr DateRange) Nights() int {
	return int(dr.CheckOut.Sub(dr.CheckIn) / (24 * time.Hour))
}

// Days enumerates every occupied calendar day from check-in inclusive
// to check-out exclusive.
func (dr DateRange) Days() []time.Time {
	nights := dr.Nights()
	if nights <= 0 {
		return nil
	}
	days := make([]time.Time, 0, nights)
	for day := dr.CheckIn; day.Before(dr.CheckOut); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

// Day truncates a timestamp to UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey renders the ISO key for a calendar day.
func DayKey(t time.Time) string {
	return Day(t).Format(DayLayout)
}

// ParseDay parses an ISO calendar day into a UTC midnight timestamp.
func ParseDay(raw string) (time.Time, error) {
	t, err := time.Parse(DayLayout, raw)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// IsWeekend reports whether the day falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := Day(t).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
