// Package content loads a directory of markdown files into rendered pages:
// frontmatter extraction, goldmark HTML rendering, heading outlines, and
// plain-text bodies for the search index.
package content

import (
	"fmt"
	"strings"
	"time"
)

// Heading is one entry of a page's outline.
type Heading struct {
	Level  int    // 1..6
	Text   string
	Anchor string // auto heading ID, usable as "#anchor"
}

// Page is one rendered markdown file.
type Page struct {
	Route      string // canonical route, e.g. "/solidity/01_HelloWeb3/"
	Section    string // first route segment, e.g. "solidity"; "" for root pages
	SourcePath string // path relative to the content dir, e.g. "solidity/01_HelloWeb3.md"

	Title       string
	Description string
	Keywords    []string
	Frontmatter map[string]any // raw frontmatter, nil when absent
	// FrontmatterErr records a frontmatter block that failed to parse.
	// The page still renders (the block is treated as markdown); the check
	// package reports it.
	FrontmatterErr error

	HTML     string // rendered body
	Text     string // plain text body, code blocks excluded
	Headings []Heading

	UpdatedAt time.Time // source file mtime
}

// Anchors returns the heading anchors as "#id" fragments, in order.
func (p Page) Anchors() []string {
	out := make([]string, 0, len(p.Headings))
	for _, h := range p.Headings {
		out = append(out, "#"+h.Anchor)
	}
	return out
}

// routeFor converts a content-relative source path to its route.
// "index.md" maps to "/", "solidity/01_Hello.md" to "/solidity/01_Hello/".
func routeFor(relPath string) string {
	p := strings.TrimSuffix(strings.ReplaceAll(relPath, "\\", "/"), ".md")
	if p == "index" {
		return "/"
	}
	p = strings.TrimSuffix(p, "/index")
	return "/" + p + "/"
}

// sectionFor returns the first segment of a route, or "".
func sectionFor(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return ""
	}
	if i := strings.Index(trimmed, "/"); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

// coerceKeywords accepts the two frontmatter shapes the corpus uses:
// a comma-separated string or a YAML sequence of strings.
func coerceKeywords(v any) ([]string, error) {
	switch kw := v.(type) {
	case nil:
		return nil, nil
	case string:
		var out []string
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				out = append(out, k)
			}
		}
		return out, nil
	case []any:
		out := make([]string, 0, len(kw))
		for _, item := range kw {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("keywords entry %v is not a string", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("keywords must be a string or a sequence of strings, got %T", v)
	}
}
