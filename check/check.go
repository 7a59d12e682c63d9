// Package check verifies the structural invariants of a docsite project:
// navigation and sidebar links resolve to existing pages and anchors,
// sidebar prefixes are well formed, search tuning is in range, nav
// active-match patterns are alive, and page frontmatter parses and is
// well typed.
package check

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/eringen/docsite/content"
)

// Severity classifies a Problem.
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// Problem is one finding, attributed to the config or a source file.
type Problem struct {
	Severity Severity
	Where    string // "docsite.yaml", a source path, or a config path like "nav[2]"
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %s", p.Severity, p.Where, p.Message)
}

// Config is the subset of the site configuration the checker inspects.
// It mirrors the docsite.SiteConfig fields rather than importing the root
// package, which keeps check importable from anywhere.
type Config struct {
	Nav             []NavRef
	SidebarPrefixes []string
	SidebarLinks    []string
	Fuzziness       float64
}

// NavRef is one nav entry reference.
type NavRef struct {
	Text        string
	Link        string
	ActiveMatch string
}

// Site runs every check against the config and loaded pages.
func Site(cfg Config, pages []content.Page) []Problem {
	var problems []Problem
	problems = append(problems, Prefixes(cfg.SidebarPrefixes)...)
	problems = append(problems, Fuzziness(cfg.Fuzziness)...)
	problems = append(problems, Links(cfg, pages)...)
	problems = append(problems, ActivePatterns(cfg)...)
	problems = append(problems, Frontmatter(pages)...)
	return problems
}

// Prefixes checks that sidebar path prefixes are unique and begin with "/".
// Uniqueness is inherent for map-backed configs; duplicate detection guards
// callers assembling the list from other sources.
func Prefixes(prefixes []string) []Problem {
	var problems []Problem
	seen := make(map[string]bool)
	for _, p := range prefixes {
		if !strings.HasPrefix(p, "/") {
			problems = append(problems, Problem{Error, "docsite.yaml", fmt.Sprintf("sidebar prefix %q must begin with /", p)})
		}
		if seen[p] {
			problems = append(problems, Problem{Error, "docsite.yaml", fmt.Sprintf("duplicate sidebar prefix %q", p)})
		}
		seen[p] = true
	}
	return problems
}

// Fuzziness checks the search fuzziness is within [0, 1].
func Fuzziness(f float64) []Problem {
	if f < 0 || f > 1 {
		return []Problem{{Error, "docsite.yaml", fmt.Sprintf("search fuzziness %v out of range [0, 1]", f)}}
	}
	return nil
}

// Links checks that every internal nav and sidebar link resolves to a page,
// and that a link carrying a fragment points at an anchor the target page
// actually has. External links and pure fragments are skipped.
func Links(cfg Config, pages []content.Page) []Problem {
	byRoute := make(map[string]int, len(pages))
	for i, p := range pages {
		byRoute[p.Route] = i
	}
	var problems []Problem
	checkLink := func(where, link string) {
		target, frag, internal := normalizeLink(link)
		if !internal {
			return
		}
		i, ok := byRoute[target]
		if !ok {
			problems = append(problems, Problem{Error, where,
				fmt.Sprintf("link %q has no matching page", link)})
			return
		}
		if frag == "" {
			return
		}
		for _, a := range pages[i].Anchors() {
			if a == "#"+frag {
				return
			}
		}
		problems = append(problems, Problem{Warning, where,
			fmt.Sprintf("link %q points at an anchor the page does not have", link)})
	}
	for i, n := range cfg.Nav {
		checkLink(fmt.Sprintf("nav[%d]", i), n.Link)
	}
	for _, link := range cfg.SidebarLinks {
		checkLink("docsite.yaml", link)
	}
	return problems
}

// normalizeLink canonicalizes an internal link to the route form used by
// the content loader ("/a/b/") plus its fragment, if any. The last return
// is false for links the checker should skip.
func normalizeLink(link string) (route, fragment string, internal bool) {
	if link == "" || strings.HasPrefix(link, "#") {
		return "", "", false
	}
	if strings.Contains(link, "://") || strings.HasPrefix(link, "mailto:") {
		return "", "", false
	}
	if i := strings.Index(link, "#"); i >= 0 {
		fragment = link[i+1:]
		link = link[:i]
	}
	if i := strings.Index(link, "?"); i >= 0 {
		link = link[:i]
	}
	link = strings.TrimSuffix(link, ".md")
	link = strings.TrimSuffix(link, ".html")
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	if !strings.HasSuffix(link, "/") {
		link += "/"
	}
	return link, fragment, true
}

// ActivePatterns checks that every nav activeMatch compiles and matches at
// least one sidebar prefix. A pattern matching nothing is dead config.
func ActivePatterns(cfg Config) []Problem {
	var problems []Problem
	for i, n := range cfg.Nav {
		if n.ActiveMatch == "" {
			continue
		}
		re, err := regexp.Compile(n.ActiveMatch)
		if err != nil {
			problems = append(problems, Problem{Error, fmt.Sprintf("nav[%d]", i),
				fmt.Sprintf("activeMatch %q does not compile: %v", n.ActiveMatch, err)})
			continue
		}
		alive := false
		for _, p := range cfg.SidebarPrefixes {
			if re.MatchString(p) {
				alive = true
				break
			}
		}
		if !alive {
			problems = append(problems, Problem{Warning, fmt.Sprintf("nav[%d]", i),
				fmt.Sprintf("activeMatch %q matches no sidebar section", n.ActiveMatch)})
		}
	}
	return problems
}

// Frontmatter checks that every frontmatter block parses and that metadata
// fields carry the expected types: title and description strings, keywords
// a string or string sequence.
func Frontmatter(pages []content.Page) []Problem {
	var problems []Problem
	for _, p := range pages {
		if p.FrontmatterErr != nil {
			problems = append(problems, Problem{Error, p.SourcePath,
				fmt.Sprintf("frontmatter does not parse: %v", p.FrontmatterErr)})
			continue
		}
		if p.Frontmatter == nil {
			continue
		}
		for _, field := range []string{"title", "description"} {
			if v, ok := p.Frontmatter[field]; ok {
				if _, isString := v.(string); !isString {
					problems = append(problems, Problem{Error, p.SourcePath,
						fmt.Sprintf("frontmatter %s must be a string, got %T", field, v)})
				}
			}
		}
		if v, ok := p.Frontmatter["keywords"]; ok {
			if _, err := coerceKeywords(v); err != nil {
				problems = append(problems, Problem{Error, p.SourcePath,
					fmt.Sprintf("frontmatter keywords: %v", err)})
			}
		}
	}
	return problems
}

// coerceKeywords mirrors the content loader's acceptance rule.
func coerceKeywords(v any) ([]string, error) {
	switch kw := v.(type) {
	case string:
		return strings.Split(kw, ","), nil
	case []any:
		out := make([]string, 0, len(kw))
		for _, item := range kw {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("entry %v is not a string", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("must be a string or a sequence of strings, got %T", v)
	}
}

// Errors filters problems to those with Error severity.
func Errors(problems []Problem) []Problem {
	var out []Problem
	for _, p := range problems {
		if p.Severity == Error {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders problems by location then message for stable output.
func Sort(problems []Problem) {
	sort.Slice(problems, func(i, j int) bool {
		if problems[i].Where != problems[j].Where {
			return problems[i].Where < problems[j].Where
		}
		return problems[i].Message < problems[j].Message
	})
}
