package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"villarate/internal/app/policies"
	domainrates "villarate/internal/domain/rates"
	"villarate/internal/domain/shared/daterange"
)

func testProperty(t *testing.T) Property {
	t.Helper()
	highFrom, _ := daterange.ParseDay("2024-07-01")
	highUntil, _ := daterange.ParseDay("2024-08-31")
	return Property{
		ID: "villa-sawah",
		Config: domainrates.PricingConfig{
			Capacity:              2,
			CleaningFee:           50000,
			ExtraBedRate:          75000,
			WeekendPremiumPercent: 20,
			MinStayWeekday:        1,
			MinStayWeekend:        2,
			MinStayPeak:           3,
		},
		BaseRate:    500000,
		WeekendDays: []time.Weekday{time.Friday, time.Saturday},
		SeasonalSpans: []SeasonalSpan{
			{
				Rule: domainrates.SeasonalRule{
					Name:          "High Season",
					RateType:      domainrates.SeasonalRatePercent,
					RateValue:     30,
					MinStayNights: 3,
				},
				From:  highFrom,
				Until: highUntil,
			},
		},
		BookedDates: []string{"2024-06-10", "2024-06-11"},
	}
}

func TestSaveValidatesConfig(t *testing.T) {
	p := NewProvider()
	bad := testProperty(t)
	bad.Config.Capacity = 0
	if err := p.Save(bad); !errors.Is(err, domainrates.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if p.Len() != 0 {
		t.Fatalf("invalid property must not be stored")
	}
}

func TestWindowUnknownProperty(t *testing.T) {
	p := NewProvider()
	from, _ := daterange.ParseDay("2024-06-01")
	to, _ := daterange.ParseDay("2024-06-10")
	if _, err := p.Window(context.Background(), "nope", from, to); !errors.Is(err, policies.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestWindowDerivesDailyRates(t *testing.T) {
	p := NewProvider()
	if err := p.Save(testProperty(t)); err != nil {
		t.Fatalf("save: %v", err)
	}
	from, _ := daterange.ParseDay("2024-06-03")
	to, _ := daterange.ParseDay("2024-06-10")
	window, err := p.Window(context.Background(), "villa-sawah", from, to)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if len(window.Rates) != 7 {
		t.Fatalf("expected 7 daily rates, got %d", len(window.Rates))
	}

	monday := window.Rates["2024-06-03"]
	if monday.BaseRate != 500000 || monday.WeekendPremium {
		t.Fatalf("unexpected Monday rate: %+v", monday)
	}
	friday := window.Rates["2024-06-07"]
	if !friday.WeekendPremium {
		t.Fatalf("Friday must carry the weekend premium per fixture weekend days")
	}
	sunday := window.Rates["2024-06-09"]
	if sunday.WeekendPremium {
		t.Fatalf("Sunday is not a fixture weekend day, got %+v", sunday)
	}
	if !window.Booked.Has(mustDay(t, "2024-06-10")) {
		t.Fatal("booked dates missing from window")
	}
}

func TestWindowAppliesSeasonalSpans(t *testing.T) {
	p := NewProvider()
	if err := p.Save(testProperty(t)); err != nil {
		t.Fatalf("save: %v", err)
	}
	from, _ := daterange.ParseDay("2024-06-30")
	to, _ := daterange.ParseDay("2024-07-02")
	window, err := p.Window(context.Background(), "villa-sawah", from, to)
	if err != nil {
		t.Fatalf("window: %v", err)
	}

	before := window.Rates["2024-06-30"]
	if before.SeasonalPremium != 0 || len(before.SeasonalRules) != 0 {
		t.Fatalf("season must not apply before its span: %+v", before)
	}
	first := window.Rates["2024-07-01"]
	if first.SeasonalPremium != 150000 { // 30% of 500000
		t.Fatalf("expected derived premium 150000, got %d", first.SeasonalPremium)
	}
	rule, ok := first.AppliedRule()
	if !ok || rule.Name != "High Season" || rule.MinStayNights != 3 {
		t.Fatalf("unexpected applied rule: %+v", rule)
	}
}

func mustDay(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := daterange.ParseDay(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return day
}
