// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import "testing"

const sampleDoc = `<html><body>
<div class="card highlight">
  <a class="title" href="/paper/1">First <b>bold</b> title</a>
</div>
<div class="card">
  <span class="title">  Second
  title  </span>
</div>
</body></html>`

func TestFindAllByClass(t *testing.T) {
	doc, err := parseHTML([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parseHTML: %v", err)
	}

	cards := findAllByClass(doc, "", "card")
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}

	// Multi-class attributes match on any class token.
	if !hasClass(cards[0], "highlight") {
		t.Error("first card should carry the highlight class")
	}

	// Tag filter narrows the match.
	if got := findAllByClass(doc, "span", "title"); len(got) != 1 {
		t.Errorf("got %d span titles, want 1", len(got))
	}
}

func TestNodeText(t *testing.T) {
	doc, err := parseHTML([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parseHTML: %v", err)
	}

	// Nested elements contribute text; whitespace collapses.
	if got := nodeText(findByClass(doc, "a", "title")); got != "First bold title" {
		t.Errorf("nodeText = %q", got)
	}
	if got := nodeText(findByClass(doc, "span", "title")); got != "Second title" {
		t.Errorf("nodeText = %q", got)
	}
	if got := nodeText(nil); got != "" {
		t.Errorf("nodeText(nil) = %q", got)
	}
}

func TestFindTagAndAttr(t *testing.T) {
	doc, err := parseHTML([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parseHTML: %v", err)
	}

	link := findTag(findByClass(doc, "", "card"), "a")
	if link == nil {
		t.Fatal("expected an anchor inside the first card")
	}
	if got := attr(link, "href"); got != "/paper/1" {
		t.Errorf("attr(href) = %q", got)
	}
	if got := attr(link, "missing"); got != "" {
		t.Errorf("attr(missing) = %q", got)
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, href, want string
	}{
		{"https://pubmed.example", "/12345/", "https://pubmed.example/12345/"},
		{"https://pubmed.example/sub/", "12345/", "https://pubmed.example/sub/12345/"},
		{"https://pubmed.example", "https://other.example/x", "https://other.example/x"},
		{"https://pubmed.example", "", ""},
	}
	for _, tt := range tests {
		if got := resolveURL(tt.base, tt.href); got != tt.want {
			t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
		}
	}
}
