// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// parseHTML parses a response body into a node tree. html.Parse is
// tolerant of malformed markup, so scraped pages rarely fail here.
func parseHTML(body []byte) (*html.Node, error) {
	return html.Parse(strings.NewReader(string(body)))
}

// hasClass reports whether the element node carries the CSS class.
func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// attr returns the value of the named attribute, or "".
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// findAllByClass walks the tree and returns element nodes with the given
// class, in document order. tag narrows the match when non-empty.
func findAllByClass(root *html.Node, tag, class string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (tag == "" || n.Data == tag) && hasClass(n, class) {
			out = append(out, n)
			// Matches do not nest for the selectors used here; keep
			// walking anyway so nothing is missed on unusual markup.
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// findByClass returns the first element with the given class, or nil.
func findByClass(root *html.Node, tag, class string) *html.Node {
	matches := findAllByClass(root, tag, class)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// findTag returns the first descendant element with the given tag name.
func findTag(root *html.Node, tag string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == tag {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

// nodeText returns the concatenated, whitespace-collapsed text content
// of a node subtree.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// resolveURL joins a possibly-relative href against a base URL. Invalid
// input returns the href unchanged.
func resolveURL(base, href string) string {
	if href == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	h, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(h).String()
}
