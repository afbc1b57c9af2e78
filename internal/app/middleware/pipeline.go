package middleware

import (
	"context"

	"villarate/internal/app/queries"
)

// QueryMiddleware wraps a query bus with extra behavior (logging,
// validation, etc.).
type QueryMiddleware func(next queries.Bus) queries.Bus

// ChainQueries builds a query bus with middleware applied (outermost first).
func ChainQueries(base queries.Bus, mws ...QueryMiddleware) queries.Bus {
	wrapped := base
	for i := len(mws) - 1; i >= 0; i-- {
		wrapped = mws[i](wrapped)
	}
	return wrapped
}

// queryFunc allows lightweight middleware composition without new structs per wrapper.
type queryFunc func(ctx context.Context, query queries.Query) (any, error)

func (f queryFunc) Ask(ctx context.Context, q queries.Query) (any, error) {
	return f(ctx, q)
}

// wrapQuery builds a queryFunc around a bus.
func wrapQuery(next queries.Bus) queryFunc {
	return func(ctx context.Context, q queries.Query) (any, error) {
		return next.Ask(ctx, q)
	}
}
