package quotes

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"villarate/internal/app/dto"
	"villarate/internal/app/policies"
	"villarate/internal/app/queries"
	domainrates "villarate/internal/domain/rates"
	"villarate/internal/domain/shared/daterange"
	"villarate/internal/domain/shared/money"
)

const getQuoteKey = "quotes.get"

var ErrPropertyIDRequired = errors.New("quotes: property id is required")

// GetQuoteQuery asks for a full price quote for a candidate stay.
type GetQuoteQuery struct {
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
}

func (q GetQuoteQuery) Key() string { return getQuoteKey }

// GetQuoteHandler computes the quote and the min-stay verdict from one
// provider window.
type GetQuoteHandler struct {
	Provider  policies.RateProviderPort
	Formatter money.Formatter
	Options   domainrates.EstimateOptions
	// PeakSeason is passed through to the min-stay resolver; nil keeps
	// the reference behavior of never consulting MinStayPeak.
	PeakSeason func(time.Time) bool
}

func (h *GetQuoteHandler) Handle(ctx context.Context, q GetQuoteQuery) (dto.Quote, error) {
	if q.PropertyID == "" {
		return dto.Quote{}, ErrPropertyIDRequired
	}
	dr, err := daterange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.Quote{}, domainrates.ErrInvalidRange
	}

	from, to := windowBounds(dr)
	window, err := h.Provider.Window(ctx, q.PropertyID, from, to)
	if err != nil {
		return dto.Quote{}, err
	}

	calc, err := domainrates.Estimate(window.Config, window.Rates, window.Booked, dr, q.Guests, h.Options)
	if err != nil {
		return dto.Quote{}, err
	}
	res, err := domainrates.ResolveMinimumStay(window.Config, window.Rates, window.Booked, dr, domainrates.ResolveOptions{PeakSeason: h.PeakSeason})
	if err != nil {
		return dto.Quote{}, err
	}

	return dto.MapQuote(uuid.NewString(), q.PropertyID, dr, q.Guests, calc, res, h.Formatter), nil
}

// windowBounds widens the stay to cover the neighbor days and the
// open-run scan the min-stay resolver needs.
func windowBounds(dr daterange.DateRange) (time.Time, time.Time) {
	from := dr.CheckIn.AddDate(0, 0, -1)
	to := dr.CheckOut.AddDate(0, 0, 1)
	if scanEnd := dr.CheckIn.AddDate(0, 0, 31); scanEnd.After(to) {
		to = scanEnd
	}
	return from, to
}

var _ queries.Handler[GetQuoteQuery, dto.Quote] = (*GetQuoteHandler)(nil)
