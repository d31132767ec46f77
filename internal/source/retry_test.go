// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pdiddy/profile-engine/internal/httputil"
	"github.com/pdiddy/profile-engine/pkg/types"
)

func init() {
	// Use a tiny delay so retry tests finish quickly.
	retryDelay = time.Millisecond
}

// failNTimesClient fails the first N fetches, then succeeds.
type failNTimesClient struct {
	failures int
	calls    int
	err      error
}

func (c *failNTimesClient) Name() string { return "flaky" }

func (c *failNTimesClient) Fetch(_ context.Context, _, _ string) (Record, error) {
	c.calls++
	if c.calls <= c.failures {
		err := c.err
		if err == nil {
			err = errors.New("transient error")
		}
		return Record{}, &Failure{Source: c.Name(), Err: err}
	}
	return Record{
		Source:       c.Name(),
		Publications: []types.Publication{{Title: "Recovered"}},
	}, nil
}

func TestFetchWithRetry_ImmediateSuccess(t *testing.T) {
	c := &failNTimesClient{failures: 0}
	rec, err := FetchWithRetry(context.Background(), c, "John Smith", "", 2)
	if err != nil {
		t.Fatalf("FetchWithRetry: %v", err)
	}
	if c.calls != 1 {
		t.Errorf("calls = %d, want 1", c.calls)
	}
	if len(rec.Publications) != 1 {
		t.Errorf("record lost: %+v", rec)
	}
}

func TestFetchWithRetry_RetriesThenSuccess(t *testing.T) {
	c := &failNTimesClient{failures: 2}
	_, err := FetchWithRetry(context.Background(), c, "John Smith", "", 2)
	if err != nil {
		t.Fatalf("FetchWithRetry: %v", err)
	}
	if c.calls != 3 {
		t.Errorf("calls = %d, want 3", c.calls)
	}
}

func TestFetchWithRetry_ExhaustsRetries(t *testing.T) {
	c := &failNTimesClient{failures: 10}
	_, err := FetchWithRetry(context.Background(), c, "John Smith", "", 2)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	// 1 initial + 2 retries = 3 total attempts.
	if c.calls != 3 {
		t.Errorf("calls = %d, want 3", c.calls)
	}

	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("error type = %T, want *Failure", err)
	}
	if f.Source != "flaky" {
		t.Errorf("Failure.Source = %q", f.Source)
	}
}

func TestFetchWithRetry_NegativeUsesDefault(t *testing.T) {
	c := &failNTimesClient{failures: 10}
	_, err := FetchWithRetry(context.Background(), c, "John Smith", "", -1)
	if err == nil {
		t.Fatal("expected error")
	}
	if c.calls != DefaultMaxRetries+1 {
		t.Errorf("calls = %d, want %d", c.calls, DefaultMaxRetries+1)
	}
}

func TestFetchWithRetry_RateLimitPreserved(t *testing.T) {
	c := &failNTimesClient{failures: 10, err: httputil.ErrRateLimited}
	_, err := FetchWithRetry(context.Background(), c, "John Smith", "", 1)
	if err == nil {
		t.Fatal("expected error")
	}

	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("error type = %T, want *Failure", err)
	}
	if !f.RateLimited() {
		t.Error("rate-limit classification should survive the retry wrapper")
	}
}

func TestFetchWithRetry_ContextCancelledDuringWait(t *testing.T) {
	old := retryDelay
	retryDelay = 500 * time.Millisecond
	defer func() { retryDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := &failNTimesClient{failures: 10}
	_, err := FetchWithRetry(ctx, c, "John Smith", "", 5)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want context deadline", err)
	}
}
