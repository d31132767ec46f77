// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"time"
)

// DefaultMaxRetries is the number of additional attempts after a failed
// fetch, so a source is tried at most DefaultMaxRetries+1 times.
const DefaultMaxRetries = 2

// retryDelay is the fixed wait between attempts. Package-level var so
// tests can avoid real sleeps.
var retryDelay = time.Second

// FetchWithRetry invokes the client and retries on failure with a fixed
// delay, up to maxRetries additional attempts. It returns the first
// success, or the last failure annotated with the source name. Source
// fetches are the only retried operation in the system; dataset lookups
// and generative calls surface their failures immediately.
func FetchWithRetry(ctx context.Context, client Client, name, specialization string, maxRetries int) (Record, error) {
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Record{}, &Failure{Source: client.Name(), Err: ctx.Err()}
			case <-time.After(retryDelay):
			}
		}

		rec, err := client.Fetch(ctx, name, specialization)
		if err == nil {
			return rec, nil
		}
		lastErr = err
	}

	if f, ok := lastErr.(*Failure); ok {
		return Record{}, f
	}
	return Record{}, &Failure{Source: client.Name(), Err: fmt.Errorf("after %d attempts: %w", maxRetries+1, lastErr)}
}
