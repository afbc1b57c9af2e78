package availability

import (
	"sort"
	"time"

	"villarate/internal/domain/shared/daterange"
)

// BookedDates is the set of calendar days already reserved for a
// property. It is rebuilt wholesale from the provider on every query
// window and never mutated by the estimator.
type BookedDates struct {
	days map[string]struct{}
}

// NewBookedDates builds a set from ISO day keys; malformed keys are kept
// verbatim so membership stays faithful to the provider payload.
func NewBookedDates(keys ...string) BookedDates {
	days := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		days[key] = struct{}{}
	}
	return BookedDates{days: days}
}

// Has reports whether the given day is booked.
func (b BookedDates) Has(day time.Time) bool {
	if len(b.days) == 0 {
		return false
	}
	_, ok := b.days[daterange.DayKey(day)]
	return ok
}

// Conflicts returns, in order, the days from the candidate stay that
// collide with existing bookings.
func (b BookedDates) Conflicts(days []time.Time) []time.Time {
	if len(b.days) == 0 {
		return nil
	}
	var conflicts []time.Time
	for _, day := range days {
		if b.Has(day) {
			conflicts = append(conflicts, day)
		}
	}
	return conflicts
}

// OpenRunFrom counts consecutive unbooked days starting at the given
// day. The scan stops at capDays to bound cost, so runs longer than the
// cap are reported as the cap.
func (b BookedDates) OpenRunFrom(day time.Time, capDays int) int {
	run := 0
	current := daterange.Day(day)
	for run < capDays {
		if b.Has(current) {
			break
		}
		run++
		current = current.AddDate(0, 0, 1)
	}
	return run
}

// Len returns the number of booked days.
func (b BookedDates) Len() int {
	return len(b.days)
}

// Keys returns the booked day keys in ascending order.
func (b BookedDates) Keys() []string {
	keys := make([]string, 0, len(b.days))
	for key := range b.days {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
