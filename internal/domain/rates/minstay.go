package rates

import (
	"time"

	"villarate/internal/domain/availability"
	"villarate/internal/domain/shared/daterange"
)

// MinStayReason identifies which rule produced the effective minimum stay.
type MinStayReason string

const (
	ReasonSeasonalRate MinStayReason = "seasonal_rate"
	ReasonSandwiched   MinStayReason = "sandwiched_between_bookings"
	ReasonPeakSeason   MinStayReason = "peak_season"
	ReasonWeekend      MinStayReason = "weekend"
	ReasonWeekday      MinStayReason = "weekday"
)

// maxOpenRunScanDays bounds the consecutive-open-day scan used by the
// sandwich rule. Properties with longer unbroken open stretches report
// the cap instead of the true run.
const maxOpenRunScanDays = 30

// Resolution is the outcome of minimum-stay resolution for a candidate
// range. It is advisory: it must block submission in a UI but never
// alters the price calculation.
type Resolution struct {
	MinStay      int
	Reason       MinStayReason
	SeasonalRule *SeasonalRule
	Nights       int
	Satisfied    bool
}

// ResolveOptions extend the resolver without changing its defaults.
type ResolveOptions struct {
	// PeakSeason reports whether a day falls in peak season. When it
	// returns true for the check-in day, MinStayPeak applies with
	// reason peak_season. Left nil, MinStayPeak is never consulted,
	// matching the reference behavior.
	PeakSeason func(time.Time) bool
}

// ResolveMinimumStay determines the effective minimum stay for a
// candidate range. Rule priority, first match wins:
//
//  1. seasonal rule attached to the check-in day
//  2. candidate sandwiched against neighboring bookings
//  3. peak-season hook, when configured
//  4. weekend/weekday calendar default
func ResolveMinimumStay(
	cfg PricingConfig,
	table Table,
	booked availability.BookedDates,
	dr daterange.DateRange,
	opts ResolveOptions,
) (Resolution, error) {
	if err := cfg.Validate(); err != nil {
		return Resolution{}, err
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return Resolution{}, ErrInvalidRange
	}

	nights := dr.Nights()
	res := Resolution{Nights: nights}

	if rate, ok := table.Lookup(dr.CheckIn); ok && rate.SeasonalPremium > 0 {
		if rule, ok := rate.AppliedRule(); ok {
			res.MinStay = rule.MinStayNights
			res.Reason = ReasonSeasonalRate
			res.SeasonalRule = &rule
			if res.MinStay < 1 {
				res.MinStay = 1
			}
			res.Satisfied = nights >= res.MinStay
			return res, nil
		}
	}

	normal := normalMinStay(cfg, dr.CheckIn, opts)

	dayBefore := dr.CheckIn.AddDate(0, 0, -1)
	dayAfter := dr.CheckOut.AddDate(0, 0, 1)
	if booked.Has(dayBefore) || booked.Has(dayAfter) {
		run := booked.OpenRunFrom(dr.CheckIn, maxOpenRunScanDays)
		minStay := normal.minStay
		if run < minStay {
			minStay = run
		}
		if minStay < 1 {
			minStay = 1
		}
		res.MinStay = minStay
		res.Reason = ReasonSandwiched
		res.Satisfied = nights >= res.MinStay
		return res, nil
	}

	res.MinStay = normal.minStay
	res.Reason = normal.reason
	res.Satisfied = nights >= res.MinStay
	return res, nil
}

type calendarMinStay struct {
	minStay int
	reason  MinStayReason
}

func normalMinStay(cfg PricingConfig, checkIn time.Time, opts ResolveOptions) calendarMinStay {
	if opts.PeakSeason != nil && opts.PeakSeason(checkIn) {
		return calendarMinStay{minStay: cfg.MinStayPeak, reason: ReasonPeakSeason}
	}
	if daterange.IsWeekend(checkIn) {
		return calendarMinStay{minStay: cfg.MinStayWeekend, reason: ReasonWeekend}
	}
	return calendarMinStay{minStay: cfg.MinStayWeekday, reason: ReasonWeekday}
}
