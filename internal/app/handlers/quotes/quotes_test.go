package quotes

import (
	"context"
	"errors"
	"testing"
	"time"

	"villarate/internal/app/dto"
	"villarate/internal/app/policies"
	"villarate/internal/app/queries"
	domainrates "villarate/internal/domain/rates"
	"villarate/internal/domain/shared/daterange"
	"villarate/internal/domain/shared/money"
	"villarate/internal/infra/storage/memory"
)

func testProvider(t *testing.T) *memory.Provider {
	t.Helper()
	highFrom, _ := daterange.ParseDay("2024-07-01")
	highUntil, _ := daterange.ParseDay("2024-08-31")
	provider := memory.NewProvider()
	err := provider.Save(memory.Property{
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
		WeekendDays: []time.Weekday{time.Saturday, time.Sunday},
		SeasonalSpans: []memory.SeasonalSpan{
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
	})
	if err != nil {
		t.Fatalf("save fixture: %v", err)
	}
	return provider
}

func day(t *testing.T, raw string) time.Time {
	t.Helper()
	d, err := daterange.ParseDay(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return d
}

func TestGetQuoteHandlerProducesBreakdown(t *testing.T) {
	handler := &GetQuoteHandler{Provider: testProvider(t), Formatter: money.IDRFormatter()}
	quote, err := handler.Handle(context.Background(), GetQuoteQuery{
		PropertyID: "villa-sawah",
		CheckIn:    day(t, "2024-06-03"),
		CheckOut:   day(t, "2024-06-05"),
		Guests:     2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.QuoteID == "" {
		t.Fatal("expected a quote id")
	}
	if quote.Nights != 2 {
		t.Fatalf("expected 2 nights, got %d", quote.Nights)
	}
	if quote.TotalAmount.Amount != 1165500 || quote.TotalAmount.Currency != "IDR" {
		t.Fatalf("unexpected total: %+v", quote.TotalAmount)
	}
	if quote.Formatted.TotalAmount != "Rp 1.165.500" {
		t.Fatalf("unexpected formatted total: %q", quote.Formatted.TotalAmount)
	}
	if quote.MinStay.Reason != string(domainrates.ReasonWeekday) {
		t.Fatalf("unexpected min-stay reason: %s", quote.MinStay.Reason)
	}
	if !quote.MinStay.Satisfied {
		t.Fatal("2 nights must satisfy the weekday minimum")
	}
}

func TestGetQuoteHandlerUnavailableDates(t *testing.T) {
	handler := &GetQuoteHandler{Provider: testProvider(t), Formatter: money.IDRFormatter()}
	_, err := handler.Handle(context.Background(), GetQuoteQuery{
		PropertyID: "villa-sawah",
		CheckIn:    day(t, "2024-06-09"),
		CheckOut:   day(t, "2024-06-12"),
		Guests:     2,
	})
	if !errors.Is(err, domainrates.ErrDatesUnavailable) {
		t.Fatalf("expected ErrDatesUnavailable, got %v", err)
	}
}

func TestGetQuoteHandlerUnknownProperty(t *testing.T) {
	handler := &GetQuoteHandler{Provider: testProvider(t), Formatter: money.IDRFormatter()}
	_, err := handler.Handle(context.Background(), GetQuoteQuery{
		PropertyID: "nope",
		CheckIn:    day(t, "2024-06-03"),
		CheckOut:   day(t, "2024-06-05"),
		Guests:     2,
	})
	if !errors.Is(err, policies.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestGetQuoteHandlerInvalidRange(t *testing.T) {
	handler := &GetQuoteHandler{Provider: testProvider(t), Formatter: money.IDRFormatter()}
	_, err := handler.Handle(context.Background(), GetQuoteQuery{
		PropertyID: "villa-sawah",
		CheckIn:    day(t, "2024-06-05"),
		CheckOut:   day(t, "2024-06-05"),
		Guests:     2,
	})
	if !errors.Is(err, domainrates.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestGetMinStayHandlerSeasonalRule(t *testing.T) {
	handler := &GetMinStayHandler{Provider: testProvider(t)}
	res, err := handler.Handle(context.Background(), GetMinStayQuery{
		PropertyID: "villa-sawah",
		CheckIn:    day(t, "2024-07-01"),
		CheckOut:   day(t, "2024-07-03"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Reason != string(domainrates.ReasonSeasonalRate) {
		t.Fatalf("expected seasonal_rate, got %s", res.Reason)
	}
	if res.MinStay != 3 || res.Satisfied {
		t.Fatalf("expected unmet 3-night minimum, got %d/%v", res.MinStay, res.Satisfied)
	}
	if res.SeasonalRule == nil || res.SeasonalRule.Name != "High Season" {
		t.Fatalf("expected applied seasonal rule, got %+v", res.SeasonalRule)
	}
}

func TestGetRateWindowHandlerClampsWindow(t *testing.T) {
	handler := &GetRateWindowHandler{Provider: testProvider(t), MaxDays: 10}
	window, err := handler.Handle(context.Background(), GetRateWindowQuery{
		PropertyID: "villa-sawah",
		From:       day(t, "2024-06-01"),
		To:         day(t, "2024-09-01"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(window.Rates) != 10 {
		t.Fatalf("expected window clamped to 10 days, got %d", len(window.Rates))
	}
	if window.PropertyInfo.Capacity != 2 || window.PropertyInfo.MinStayPeak != 3 {
		t.Fatalf("unexpected property info: %+v", window.PropertyInfo)
	}
}

func TestQueriesDispatchThroughBus(t *testing.T) {
	provider := testProvider(t)
	bus := queries.NewInMemoryBus()
	queries.RegisterHandler(bus, GetQuoteQuery{}.Key(), &GetQuoteHandler{Provider: provider, Formatter: money.IDRFormatter()})

	quote, err := queries.Ask[GetQuoteQuery, dto.Quote](context.Background(), bus, GetQuoteQuery{
		PropertyID: "villa-sawah",
		CheckIn:    day(t, "2024-06-03"),
		CheckOut:   day(t, "2024-06-05"),
		Guests:     3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.ExtraBeds != 1 {
		t.Fatalf("expected 1 extra bed, got %d", quote.ExtraBeds)
	}

	if _, err := bus.Ask(context.Background(), GetMinStayQuery{PropertyID: "villa-sawah"}); !errors.Is(err, queries.ErrHandlerNotFound) {
		t.Fatalf("expected ErrHandlerNotFound for unregistered query, got %v", err)
	}
}
