package rates

import "errors"

// Currency is the currency every rate and calculation is denominated in.
const Currency = "IDR"

var ErrInvalidConfig = errors.New("rates: invalid pricing configuration")

// PricingConfig is the static pricing profile of a property, immutable
// for the lifetime of a quote request.
type PricingConfig struct {
	// Capacity is the guest count included before extra-bed charges apply.
	Capacity              int
	CleaningFee           int64
	ExtraBedRate          int64
	WeekendPremiumPercent float64
	MinStayWeekday        int
	MinStayWeekend        int
	// MinStayPeak is part of the provider contract but only consulted
	// through the resolver's PeakSeason hook; see ResolveOptions.
	MinStayPeak int
}

// Validate checks the structural invariants of the configuration.
func (c PricingConfig) Validate() error {
	switch {
	case c.Capacity < 1:
		return errors.Join(ErrInvalidConfig, errors.New("capacity must be at least 1"))
	case c.CleaningFee < 0:
		return errors.Join(ErrInvalidConfig, errors.New("cleaning fee cannot be negative"))
	case c.ExtraBedRate < 0:
		return errors.Join(ErrInvalidConfig, errors.New("extra bed rate cannot be negative"))
	case c.WeekendPremiumPercent < 0 || c.WeekendPremiumPercent > 100:
		return errors.Join(ErrInvalidConfig, errors.New("weekend premium percent must be within 0..100"))
	case c.MinStayWeekday < 1 || c.MinStayWeekend < 1 || c.MinStayPeak < 1:
		return errors.Join(ErrInvalidConfig, errors.New("minimum stay values must be at least 1 night"))
	}
	return nil
}
