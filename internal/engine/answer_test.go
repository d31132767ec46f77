// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/profile-engine/pkg/types"
)

func TestAskNoBackend(t *testing.T) {
	e := New(testConfig(map[string]string{}), nil, nil)
	_, err := e.Ask(context.Background(), "What does she study?", "Jane Doe")
	if !errors.Is(err, ErrNoBackend) {
		t.Errorf("error = %v, want ErrNoBackend", err)
	}
}

func TestAskKnownResearcher(t *testing.T) {
	backend := &scriptedBackend{response: "She studies genomics."}
	e := New(testConfig(map[string]string{}), backend, nil)

	p := types.NewProfile("Jane Doe", "Genomics")
	p.Affiliations = []string{"MIT"}
	p.Summary = "A genomics researcher."
	e.Put(p)

	answer, err := e.Ask(context.Background(), "What does she study?", "Jane Doe")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if answer != "She studies genomics." {
		t.Errorf("answer = %q", answer)
	}
	if backend.lastTemp != 0.5 {
		t.Errorf("temperature = %v, want 0.5", backend.lastTemp)
	}
	if !strings.Contains(backend.lastPrompt, "Information about Jane Doe:") {
		t.Errorf("prompt missing profile context:\n%s", backend.lastPrompt)
	}
	if !strings.Contains(backend.lastPrompt, "Affiliations: MIT") {
		t.Errorf("prompt missing affiliations:\n%s", backend.lastPrompt)
	}
	if !strings.Contains(backend.lastPrompt, "Question: What does she study?") {
		t.Errorf("prompt missing question:\n%s", backend.lastPrompt)
	}
}

func TestAskUnknownResearcherGenerates(t *testing.T) {
	backend := &scriptedBackend{response: engineGenerateJSON}
	e := New(testConfig(map[string]string{}), backend, nil)

	// First call generates the profile context, second answers the
	// question; the scripted backend returns the same JSON both times and
	// the answer simply comes back verbatim.
	_, err := e.Ask(context.Background(), "Who is this?", "Unknown Person")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}

	if backend.calls != 2 {
		t.Errorf("calls = %d, want generate + answer", backend.calls)
	}
	if !strings.Contains(backend.lastPrompt, "Information I found about Unknown Person:") {
		t.Errorf("prompt missing generated context:\n%s", backend.lastPrompt)
	}

	p, ok := e.Profile("Unknown Person")
	if !ok {
		t.Fatal("generated profile should be stored")
	}
	if !p.AIGenerated {
		t.Error("stored profile should be marked AIGenerated")
	}
	if p.Summary != "Generated summary." {
		t.Errorf("Summary = %q", p.Summary)
	}
}

func TestAskUnknownResearcherGenerateFails(t *testing.T) {
	// The backend fails every call; the generate step degrades to a
	// minimal context but Ask itself then fails on the answer call.
	backend := &scriptedBackend{err: errors.New("boom")}
	var buf bytes.Buffer
	e := New(testConfig(map[string]string{}), backend, &buf)

	_, err := e.Ask(context.Background(), "Who is this?", "Unknown Person")
	if err == nil {
		t.Fatal("expected the answer call to fail")
	}
	if !strings.Contains(buf.String(), "could not generate context") {
		t.Errorf("generate failure should be logged: %q", buf.String())
	}
	if !strings.Contains(backend.lastPrompt, "I don't have detailed information about Unknown Person") {
		t.Errorf("prompt should carry the degraded context:\n%s", backend.lastPrompt)
	}
}

func TestAskWithoutResearcherName(t *testing.T) {
	backend := &scriptedBackend{response: "answer"}
	e := New(testConfig(map[string]string{}), backend, nil)
	e.Put(types.NewProfile("John Smith", ""))
	e.Put(types.NewProfile("Jane Doe", ""))

	if _, err := e.Ask(context.Background(), "Who do you know?", ""); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if !strings.Contains(backend.lastPrompt, "I have information on the following researchers: Jane Doe, John Smith") {
		t.Errorf("prompt should list known researchers sorted:\n%s", backend.lastPrompt)
	}
}

func TestProfileContextTruncation(t *testing.T) {
	p := types.NewProfile("Jane Doe", "")
	p.Summary = strings.Repeat("long ", 3000)

	if got := profileContext(p); len(got) > maxContextChars {
		t.Errorf("context length = %d, want at most %d", len(got), maxContextChars)
	}
}

func TestProfileContextEmptyProfile(t *testing.T) {
	got := profileContext(types.NewProfile("Jane Doe", ""))
	if got != "I have limited information about Jane Doe." {
		t.Errorf("context = %q", got)
	}
}
