package monitor

import (
	"context"
	"time"

	"github.com/jkosta95/recipe-app-api/internal/readiness"
)

// probeDatastore runs a single probe and measures how long it took.
func probeDatastore(provider readiness.Provider, attempt int, timeout time.Duration) (readiness.ConnectionProbe, time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	probedAt := time.Now()
	err := provider.Probe(ctx)
	respTime := time.Since(probedAt)

	return readiness.ConnectionProbe{
		Attempt: attempt,
		Err:     err,
		At:      probedAt,
	}, respTime
}
