package views

import (
	"html"
	"sort"
	"strings"
)

func esc(s string) string {
	return html.EscapeString(s)
}

// writeHeadTag serializes a HeadTag. Attribute order is sorted for
// deterministic output; void elements get no closing tag.
func writeHeadTag(b *strings.Builder, t HeadTag) {
	b.WriteString("<")
	b.WriteString(t.Tag)
	keys := make([]string, 0, len(t.Attrs))
	for k := range t.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(esc(t.Attrs[k]))
		b.WriteString(`"`)
	}
	b.WriteString(">")
	if !voidTag(t.Tag) {
		b.WriteString(esc(t.Content))
		b.WriteString("</")
		b.WriteString(t.Tag)
		b.WriteString(">")
	}
}

func voidTag(tag string) bool {
	switch tag {
	case "meta", "link", "base", "br", "hr", "img", "input", "source":
		return true
	}
	return false
}

// RenderHeadTag returns the serialized form of a single head tag.
func RenderHeadTag(t HeadTag) string {
	var b strings.Builder
	writeHeadTag(&b, t)
	return b.String()
}
