package memory

import (
	"context"
	"math"
	"sync"
	"time"

	"villarate/internal/app/policies"
	domainavailability "villarate/internal/domain/availability"
	domainrates "villarate/internal/domain/rates"
	"villarate/internal/domain/shared/daterange"
)

// SeasonalSpan is a fixture seasonal rule with the date span it covers.
// Spans are inclusive on both ends; span order in the fixture decides
// which rule is authoritative when spans overlap.
type SeasonalSpan struct {
	Rule  domainrates.SeasonalRule
	From  time.Time
	Until time.Time
}

// Property is an in-memory property record the provider derives rate
// windows from.
type Property struct {
	ID            string
	Config        domainrates.PricingConfig
	BaseRate      int64
	WeekendDays   []time.Weekday
	SeasonalSpans []SeasonalSpan
	BookedDates   []string
}

// Provider is an in-process stand-in for the external pricing/
// availability service, serving dev and tests.
type Provider struct {
	mu    sync.RWMutex
	items map[string]Property
}

// NewProvider builds an empty provider.
func NewProvider() *Provider {
	return &Provider{items: make(map[string]Property)}
}

// Save stores/updates a property entry.
func (p *Provider) Save(property Property) error {
	if err := property.Config.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items[property.ID] = property
	return nil
}

// Len returns the number of stored properties.
func (p *Provider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}

// Window derives the per-date rate table for [from, to) the way the
// external provider would serve it: weekend flags from the property's
// weekend days, seasonal premium from the first span covering the day.
func (p *Provider) Window(ctx context.Context, propertyID string, from, to time.Time) (domainrates.Window, error) {
	p.mu.RLock()
	property, ok := p.items[propertyID]
	p.mu.RUnlock()
	if !ok {
		return domainrates.Window{}, policies.ErrPropertyNotFound
	}

	from = daterange.Day(from)
	to = daterange.Day(to)
	table := make(domainrates.Table)
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return domainrates.Window{}, ctx.Err()
			default:
			}
		}
		table[daterange.DayKey(day)] = property.dailyRate(day)
	}

	return domainrates.Window{
		Config: property.Config,
		Rates:  table,
		Booked: domainavailability.NewBookedDates(property.BookedDates...),
	}, nil
}

func (pr Property) dailyRate(day time.Time) domainrates.DailyRate {
	rate := domainrates.DailyRate{BaseRate: pr.BaseRate}

	weekend := pr.WeekendDays
	if len(weekend) == 0 {
		weekend = []time.Weekday{time.Saturday, time.Sunday}
	}
	for _, wd := range weekend {
		if day.Weekday() == wd {
			rate.WeekendPremium = true
			break
		}
	}

	// Every covering span lands in the applied list, fixture order
	// preserved; the first one decides the premium.
	for _, span := range pr.SeasonalSpans {
		if day.Before(span.From) || day.After(span.Until) {
			continue
		}
		if len(rate.SeasonalRules) == 0 {
			premium := span.Rule.RateValue
			if span.Rule.RateType == domainrates.SeasonalRatePercent {
				premium = float64(pr.BaseRate) * span.Rule.RateValue / 100
			}
			rate.SeasonalPremium = int64(math.Round(premium))
		}
		rate.SeasonalRules = append(rate.SeasonalRules, span.Rule)
	}
	return rate
}

var _ policies.RateProviderPort = (*Provider)(nil)
