package policies

import (
	"context"
	"errors"
	"time"

	domainrates "villarate/internal/domain/rates"
)

// ErrPropertyNotFound is returned by any provider when the property id
// is unknown.
var ErrPropertyNotFound = errors.New("policies: property not found")

// RateProviderPort abstracts the pricing/availability provider: per-date
// resolved rates, booked dates and the property's pricing configuration
// for a query window.
type RateProviderPort interface {
	Window(ctx context.Context, propertyID string, from, to time.Time) (domainrates.Window, error)
}
