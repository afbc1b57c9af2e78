package rates

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"villarate/internal/domain/availability"
	"villarate/internal/domain/shared/daterange"
	"villarate/internal/domain/shared/money"
)

var (
	ErrInvalidRange     = errors.New("rates: check-out must be strictly after check-in")
	ErrInvalidGuests    = errors.New("rates: guest count must be at least 1")
	ErrDatesUnavailable = errors.New("rates: requested dates overlap existing bookings")
	ErrMissingRate      = errors.New("rates: no daily rate supplied for date in range")
)

// taxRate is the fixed 11% tax applied to every quote. Deliberately not
// configurable.
const taxRate = 0.11

// Calculation is the itemized result of a rate estimate. All amounts
// are whole currency units; the struct is never mutated after Estimate
// returns it.
type Calculation struct {
	Nights    int
	ExtraBeds int

	BaseAmount      money.Money
	WeekendPremium  money.Money
	SeasonalPremium money.Money
	ExtraBedAmount  money.Money
	CleaningFee     money.Money
	Subtotal        money.Money
	TaxAmount       money.Money
	TotalAmount     money.Money

	// SkippedDays lists dates that had no rate record and were counted
	// as zero. Populated only when ZeroFillMissing is set; callers are
	// expected to log it.
	SkippedDays []time.Time
}

// PerNight returns the total divided across the nights of the stay,
// rounded to whole units.
func (c Calculation) PerNight() money.Money {
	if c.Nights <= 0 {
		return money.Money{Amount: 0, Currency: c.TotalAmount.Currency}
	}
	per := math.Round(float64(c.TotalAmount.Amount) / float64(c.Nights))
	return money.Money{Amount: int64(per), Currency: c.TotalAmount.Currency}
}

// EstimateOptions tune edge-case behavior of Estimate.
type EstimateOptions struct {
	// ZeroFillMissing reproduces the legacy behavior of treating a day
	// without a rate record as zero contribution instead of failing
	// with ErrMissingRate. The skipped days are reported on the
	// Calculation so the caller can flag them.
	ZeroFillMissing bool
}

// Estimate computes the price breakdown for a stay. It fails before any
// monetary work when the range is invalid or overlaps booked dates; a
// failed estimate never yields a partial Calculation.
func Estimate(
	cfg PricingConfig,
	table Table,
	booked availability.BookedDates,
	dr daterange.DateRange,
	guests int,
	opts EstimateOptions,
) (Calculation, error) {
	var zero Calculation

	if err := cfg.Validate(); err != nil {
		return zero, err
	}
	if !dr.CheckOut.After(dr.CheckIn) {
		return zero, ErrInvalidRange
	}
	if guests < 1 {
		return zero, ErrInvalidGuests
	}

	days := dr.Days()
	nights := len(days)

	if conflicts := booked.Conflicts(days); len(conflicts) > 0 {
		return zero, fmt.Errorf("%w: %s", ErrDatesUnavailable, joinDayKeys(conflicts))
	}

	var (
		baseTotal     float64
		weekendTotal  float64
		seasonalTotal float64
		skipped       []time.Time
	)
	for _, day := range days {
		rate, ok := table.Lookup(day)
		if !ok {
			if !opts.ZeroFillMissing {
				return zero, fmt.Errorf("%w: %s", ErrMissingRate, daterange.DayKey(day))
			}
			skipped = append(skipped, day)
			continue
		}
		baseTotal += float64(rate.BaseRate)
		if rate.SeasonalPremium > 0 {
			seasonalTotal += float64(rate.SeasonalPremium)
		}
		if rate.WeekendPremium {
			// Premium is computed on that day's own base rate, never a
			// blended nightly rate.
			weekendTotal += float64(rate.BaseRate) * cfg.WeekendPremiumPercent / 100
		}
	}

	extraBeds := guests - cfg.Capacity
	if extraBeds < 0 {
		extraBeds = 0
	}
	extraBedTotal := float64(extraBeds) * float64(cfg.ExtraBedRate) * float64(nights)

	// Components are rounded individually before the subtotal is taken;
	// a single final rounding would drift from the reference totals.
	baseAmount := roundAmount(baseTotal)
	weekendAmount := roundAmount(weekendTotal)
	seasonalAmount := roundAmount(seasonalTotal)
	extraBedAmount := roundAmount(extraBedTotal)
	cleaningFee := cfg.CleaningFee

	subtotal := baseAmount + weekendAmount + seasonalAmount + extraBedAmount + cleaningFee
	taxAmount := roundAmount(float64(subtotal) * taxRate)
	totalAmount := subtotal + taxAmount

	return Calculation{
		Nights:          nights,
		ExtraBeds:       extraBeds,
		BaseAmount:      money.Must(baseAmount, Currency),
		WeekendPremium:  money.Must(weekendAmount, Currency),
		SeasonalPremium: money.Must(seasonalAmount, Currency),
		ExtraBedAmount:  money.Must(extraBedAmount, Currency),
		CleaningFee:     money.Must(cleaningFee, Currency),
		Subtotal:        money.Must(subtotal, Currency),
		TaxAmount:       money.Must(taxAmount, Currency),
		TotalAmount:     money.Must(totalAmount, Currency),
		SkippedDays:     skipped,
	}, nil
}

func roundAmount(v float64) int64 {
	return int64(math.Round(v))
}

func joinDayKeys(days []time.Time) string {
	keys := make([]string, 0, len(days))
	for _, day := range days {
		keys = append(keys, daterange.DayKey(day))
	}
	return strings.Join(keys, ", ")
}
