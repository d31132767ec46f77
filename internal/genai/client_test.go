// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func withTestAPI(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	orig := claudeAPIURL
	claudeAPIURL = ts.URL
	t.Cleanup(func() {
		claudeAPIURL = orig
		ts.Close()
	})
	return ts
}

func TestClaudeBackendComplete(t *testing.T) {
	var gotReq claudeRequest
	var gotKey, gotVersion string
	ts := withTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		fmt.Fprint(w, `{"content":[{"type":"text","text":"Hello "},{"type":"tool_use"},{"type":"text","text":"world"}]}`)
	})

	b := &ClaudeBackend{APIKey: "test-key", Model: "test-model", Client: ts.Client()}
	got, err := b.Complete(context.Background(), "be brief", "say hello", 0.3)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if got != "Hello world" {
		t.Errorf("Complete() = %q", got)
	}
	if gotKey != "test-key" {
		t.Errorf("x-api-key = %q", gotKey)
	}
	if gotVersion == "" {
		t.Error("anthropic-version header missing")
	}
	if gotReq.Model != "test-model" || gotReq.System != "be brief" || gotReq.Temperature != 0.3 {
		t.Errorf("request = %+v", gotReq)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "say hello" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}

func TestClaudeBackendStatusErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantErr    error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrAuthentication},
		{"forbidden", http.StatusForbidden, ErrAuthentication},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := withTestAPI(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
			})

			b := &ClaudeBackend{APIKey: "k", Model: "m", Client: ts.Client()}
			_, err := b.Complete(context.Background(), "", "prompt", 0)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClaudeBackendGenericError(t *testing.T) {
	ts := withTestAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"overloaded"}`)
	})

	b := &ClaudeBackend{APIKey: "k", Model: "m", Client: ts.Client()}
	_, err := b.Complete(context.Background(), "", "prompt", 0)
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrAuthentication) || errors.Is(err, ErrRateLimited) {
		t.Errorf("500 should be a generic error, got %v", err)
	}
}

func TestClaudeBackendEmptyContent(t *testing.T) {
	ts := withTestAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"content":[]}`)
	})

	b := &ClaudeBackend{APIKey: "k", Model: "m", Client: ts.Client()}
	_, err := b.Complete(context.Background(), "", "prompt", 0)
	if err == nil {
		t.Fatal("expected error for empty content")
	}
}
