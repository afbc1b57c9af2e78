package quotes

import (
	"context"
	"time"

	"villarate/internal/app/dto"
	"villarate/internal/app/policies"
	"villarate/internal/app/queries"
	"villarate/internal/domain/shared/daterange"
)

const getRateWindowKey = "quotes.rate_window"

// defaultWindowDays is the window served when the caller does not bound
// it; maximum window length is capped by the handler configuration.
const defaultWindowDays = 45

// GetRateWindowQuery asks for the per-date rates and booked dates of a
// property over a window, for calendar rendering.
type GetRateWindowQuery struct {
	PropertyID string
	From       time.Time
	To         time.Time
}

func (q GetRateWindowQuery) Key() string { return getRateWindowKey }

type GetRateWindowHandler struct {
	Provider policies.RateProviderPort
	// MaxDays clamps the served window; zero means the 90-day provider
	// default.
	MaxDays int
}

func (h *GetRateWindowHandler) Handle(ctx context.Context, q GetRateWindowQuery) (dto.RateWindow, error) {
	if q.PropertyID == "" {
		return dto.RateWindow{}, ErrPropertyIDRequired
	}

	from, to := h.clampWindow(q.From, q.To)
	window, err := h.Provider.Window(ctx, q.PropertyID, from, to)
	if err != nil {
		return dto.RateWindow{}, err
	}
	return dto.MapRateWindow(q.PropertyID, from, to, window), nil
}

func (h *GetRateWindowHandler) clampWindow(from, to time.Time) (time.Time, time.Time) {
	maxDays := h.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	if from.IsZero() {
		from = time.Now()
	}
	from = daterange.Day(from)
	to = daterange.Day(to)
	if !to.After(from) {
		to = from.AddDate(0, 0, defaultWindowDays)
	}
	if limit := from.AddDate(0, 0, maxDays); to.After(limit) {
		to = limit
	}
	return from, to
}

var _ queries.Handler[GetRateWindowQuery, dto.RateWindow] = (*GetRateWindowHandler)(nil)
