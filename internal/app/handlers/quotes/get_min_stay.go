package quotes

import (
	"context"
	"time"

	"villarate/internal/app/dto"
	"villarate/internal/app/policies"
	"villarate/internal/app/queries"
	domainrates "villarate/internal/domain/rates"
	"villarate/internal/domain/shared/daterange"
)

const getMinStayKey = "quotes.min_stay"

// GetMinStayQuery asks for the minimum-stay verdict alone, so booking
// UIs can validate a date selection before quoting.
type GetMinStayQuery struct {
	PropertyID string
	CheckIn    time.Time
	CheckOut   time.Time
}

func (q GetMinStayQuery) Key() string { return getMinStayKey }

type GetMinStayHandler struct {
	Provider   policies.RateProviderPort
	PeakSeason func(time.Time) bool
}

func (h *GetMinStayHandler) Handle(ctx context.Context, q GetMinStayQuery) (dto.MinStayResolution, error) {
	if q.PropertyID == "" {
		return dto.MinStayResolution{}, ErrPropertyIDRequired
	}
	dr, err := daterange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return dto.MinStayResolution{}, domainrates.ErrInvalidRange
	}

	from, to := windowBounds(dr)
	window, err := h.Provider.Window(ctx, q.PropertyID, from, to)
	if err != nil {
		return dto.MinStayResolution{}, err
	}

	res, err := domainrates.ResolveMinimumStay(window.Config, window.Rates, window.Booked, dr, domainrates.ResolveOptions{PeakSeason: h.PeakSeason})
	if err != nil {
		return dto.MinStayResolution{}, err
	}
	return dto.MapMinStayResolution(res), nil
}

var _ queries.Handler[GetMinStayQuery, dto.MinStayResolution] = (*GetMinStayHandler)(nil)
