package docsite

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a docsite project: the site
// metadata and theme structure read from docsite.yaml, plus runtime
// settings for the server and admin editor that come from the
// environment rather than the committed config file.
type SiteConfig struct {
	Title       string `yaml:"title"`       // Site title (default "Docs")
	Description string `yaml:"description"` // Meta description
	Lang        string `yaml:"lang"`        // Page language (default "zh-CN")
	Base        string `yaml:"base"`        // Base path the site is served from (default "/")
	URL         string `yaml:"url"`         // Canonical URL for sitemap/feed/JSON-LD

	Nav         []NavItem                 `yaml:"nav"`
	Sidebar     map[string][]SidebarGroup `yaml:"sidebar"`
	Search      SearchConfig              `yaml:"search"`
	Head        []HeadTag                 `yaml:"head"`
	SocialLinks []SocialLink              `yaml:"socialLinks"`
	EditLink    EditLink                  `yaml:"editLink"`
	Footer      Footer                    `yaml:"footer"`
	LastUpdated bool                      `yaml:"lastUpdated"`

	ContentDir string `yaml:"contentDir"` // Markdown source dir (default "docs")
	StaticDir  string `yaml:"staticDir"`  // Static assets dir (default "public")
	OutputDir  string `yaml:"outputDir"`  // Static build output dir (default "dist")

	Addr      string        `yaml:"-"` // Listen address (default ":4173")
	CachePath string        `yaml:"-"` // Render cache SQLite path (default "data/render.db")
	PageTTL   time.Duration `yaml:"-"` // Page cache TTL in serve mode (default 5min)

	AdminPassword string `yaml:"-"` // Enables the admin editor when non-empty
	SessionSecret string `yaml:"-"` // Required when the admin editor is enabled
	CookieSecure  bool   `yaml:"-"` // Set true for HTTPS
}

func (c *SiteConfig) setDefaults() {
	if c.Title == "" {
		c.Title = "Docs"
	}
	if c.Lang == "" {
		c.Lang = "zh-CN"
	}
	if c.Base == "" {
		c.Base = "/"
	}
	if c.URL == "" {
		c.URL = "http://localhost:4173"
	}
	if c.ContentDir == "" {
		c.ContentDir = "docs"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.OutputDir == "" {
		c.OutputDir = "dist"
	}
	if c.Addr == "" {
		c.Addr = ":4173"
	}
	if c.CachePath == "" {
		c.CachePath = "data/render.db"
	}
	if c.PageTTL == 0 {
		c.PageTTL = 5 * time.Minute
	}
	if c.Search.Provider == "" {
		c.Search.Provider = "local"
	}
	if c.Search.Boosts == nil {
		c.Search.Boosts = map[string]float64{"title": 4, "heading": 2, "text": 1}
	}
}

// Validate checks the structural invariants the config must satisfy before
// a build or serve can start. Content-dependent checks (broken links, dead
// nav patterns) live in the check package.
func (c *SiteConfig) Validate() error {
	if !strings.HasPrefix(c.Base, "/") {
		return fmt.Errorf("docsite: base %q must begin with /", c.Base)
	}
	if c.Search.Provider != "local" {
		return fmt.Errorf("docsite: unsupported search provider %q (only \"local\")", c.Search.Provider)
	}
	if c.Search.Fuzziness < 0 || c.Search.Fuzziness > 1 {
		return fmt.Errorf("docsite: search fuzziness %v out of range [0, 1]", c.Search.Fuzziness)
	}
	for prefix := range c.Sidebar {
		if !strings.HasPrefix(prefix, "/") {
			return fmt.Errorf("docsite: sidebar prefix %q must begin with /", prefix)
		}
	}
	return nil
}

// SidebarFor returns the sidebar groups for the longest prefix matching
// route, together with the matched prefix. Map keys are unique, so the
// longest match is unambiguous.
func (c *SiteConfig) SidebarFor(route string) (string, []SidebarGroup) {
	prefixes := make([]string, 0, len(c.Sidebar))
	for p := range c.Sidebar {
		prefixes = append(prefixes, p)
	}
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })
	for _, p := range prefixes {
		if strings.HasPrefix(route, p) {
			return p, c.Sidebar[p]
		}
	}
	return "", nil
}

// LoadConfig reads a docsite.yaml, applies defaults, and validates the
// result. Runtime-only fields (Addr, secrets) are left for the caller.
func LoadConfig(path string) (SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("docsite: read config %s: %w", path, err)
	}
	var cfg SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("docsite: parse config %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithViews overrides the default page templates.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
