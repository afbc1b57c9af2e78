package middleware

import (
	"context"
	"log/slog"
	"time"

	"villarate/internal/app/queries"
)

// Logging records every query dispatch with its key, duration and outcome.
func Logging(logger *slog.Logger) QueryMiddleware {
	if logger == nil {
		panic("middleware: logger required")
	}
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			started := time.Now()
			result, err := nextFn(ctx, q)
			elapsed := time.Since(started)
			if err != nil {
				logger.Warn("query failed", "key", q.Key(), "duration", elapsed, "error", err)
				return nil, err
			}
			logger.Debug("query handled", "key", q.Key(), "duration", elapsed)
			return result, nil
		})
	}
}
