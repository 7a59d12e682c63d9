package docsite

import (
	"encoding/json"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode"
)

// Slugify converts a title to a URL-safe slug. Unicode letters and digits
// are kept so Chinese headings stay addressable.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PageLink is a resolved (text, link) pair used for prev/next footers.
type PageLink struct {
	Text string
	Link string
}

// SidebarLeafLinks flattens a sidebar tree into its leaf links in display
// order. Display order is the reading order, so prev/next follows it.
func SidebarLeafLinks(groups []SidebarGroup) []PageLink {
	var out []PageLink
	var walk func(items []SidebarItem)
	walk = func(items []SidebarItem) {
		for _, item := range items {
			if item.Link != "" {
				out = append(out, PageLink{Text: item.Text, Link: item.Link})
			}
			if len(item.Items) > 0 {
				walk(item.Items)
			}
		}
	}
	for _, g := range groups {
		walk(g.Items)
	}
	return out
}

// PrevNext returns the pages before and after route in its sidebar section.
// Either may be nil.
func (c *SiteConfig) PrevNext(route string) (prev, next *PageLink) {
	_, groups := c.SidebarFor(route)
	leaves := SidebarLeafLinks(groups)
	for i, l := range leaves {
		if sameRoute(l.Link, route) {
			if i > 0 {
				prev = &leaves[i-1]
			}
			if i+1 < len(leaves) {
				next = &leaves[i+1]
			}
			return prev, next
		}
	}
	return nil, nil
}

func sameRoute(link, route string) bool {
	norm := func(s string) string {
		s = strings.TrimSuffix(s, ".md")
		s = strings.TrimSuffix(s, ".html")
		if !strings.HasSuffix(s, "/") {
			s += "/"
		}
		return s
	}
	return norm(link) == norm(route)
}

// NavActive reports whether a nav entry should be highlighted for route:
// its activeMatch regexp when present, otherwise a link prefix match.
func NavActive(n NavItem, route string) bool {
	if n.ActiveMatch != "" {
		re, err := regexp.Compile(n.ActiveMatch)
		if err != nil {
			return false
		}
		return re.MatchString(route)
	}
	link := strings.TrimSuffix(n.Link, "/")
	return link != "" && strings.HasPrefix(route, link+"/")
}

// EditLinkFor expands the edit link pattern for a source path. Empty when
// no pattern is configured.
func (c *SiteConfig) EditLinkFor(sourcePath string) string {
	if c.EditLink.Pattern == "" {
		return ""
	}
	return strings.ReplaceAll(c.EditLink.Pattern, ":path", sourcePath)
}

// SidebarPrefixes returns the sidebar's path prefixes.
func (c *SiteConfig) SidebarPrefixes() []string {
	out := make([]string, 0, len(c.Sidebar))
	for p := range c.Sidebar {
		out = append(out, p)
	}
	return out
}

// SidebarLinks returns every leaf link across all sidebar sections.
func (c *SiteConfig) SidebarLinks() []string {
	var out []string
	for _, groups := range c.Sidebar {
		for _, l := range SidebarLeafLinks(groups) {
			out = append(out, l.Link)
		}
	}
	return out
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema using SiteConfig.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.Title,
		"url":         BuildURL(cfg.URL),
		"description": cfg.Description,
		"inLanguage":  cfg.Lang,
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// ArticleJsonLD returns a JSON-LD string for a TechArticle schema for a page.
func ArticleJsonLD(cfg SiteConfig, title, description, route string, keywords []string) string {
	pageURL := BuildURL(cfg.URL, route)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "TechArticle",
		"headline":    title,
		"description": description,
		"url":         pageURL,
		"inLanguage":  cfg.Lang,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   pageURL,
		},
	}
	if cfg.Title != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.Title,
		}
	}
	if len(keywords) > 0 {
		data["keywords"] = strings.Join(keywords, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
