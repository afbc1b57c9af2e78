package rates

import (
	"time"

	"villarate/internal/domain/availability"
	"villarate/internal/domain/shared/daterange"
)

// SeasonalRule is a named pricing rule that contributed to a day's
// seasonal premium. RateValue is an absolute amount for "flat" rules
// and a percentage of the base rate for "percent" rules.
type SeasonalRule struct {
	Name          string
	RateType      string
	RateValue     float64
	Description   string
	MinStayNights int
}

const (
	SeasonalRateFlat    = "flat"
	SeasonalRatePercent = "percent"
)

// DailyRate is the resolved pricing record for a single calendar day,
// as supplied by the pricing/availability provider.
type DailyRate struct {
	BaseRate        int64
	WeekendPremium  bool
	SeasonalPremium int64
	// SeasonalRules is ordered; the first entry is authoritative for
	// minimum-stay resolution. The provider defines no priority beyond
	// list order, so none is invented here.
	SeasonalRules []SeasonalRule
}

// AppliedRule returns the authoritative seasonal rule for the day.
func (d DailyRate) AppliedRule() (SeasonalRule, bool) {
	if len(d.SeasonalRules) == 0 {
		return SeasonalRule{}, false
	}
	return d.SeasonalRules[0], true
}

// Table maps ISO day keys to the resolved rate for that day. The table
// is replaced wholesale whenever the provider is re-queried, never
// mutated in place.
type Table map[string]DailyRate

// Lookup resolves the rate for a calendar day.
func (t Table) Lookup(day time.Time) (DailyRate, bool) {
	rate, ok := t[daterange.DayKey(day)]
	return rate, ok
}

// Window bundles everything the estimator needs for one property and
// query window, in the shape the provider serves it.
type Window struct {
	Config PricingConfig
	Rates  Table
	Booked availability.BookedDates
}
