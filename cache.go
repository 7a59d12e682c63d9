package docsite

import (
	"database/sql"
	"sync"
	"time"

	"github.com/eringen/docsite/content"
	"github.com/eringen/docsite/search"
)

// ErrNotFound is returned when a requested page does not exist.
var ErrNotFound = sql.ErrNoRows

// SiteCache holds the loaded pages and search index with a TTL, reloading
// from disk lazily. In serve mode the filesystem watcher invalidates it on
// change; the TTL catches edits made outside the watcher.
type SiteCache struct {
	mu      sync.RWMutex
	pages   []content.Page
	byRoute map[string]int
	index   *search.Index
	fetched time.Time
	ttl     time.Duration

	loader *content.Loader
	opts   search.Options

	// OnLoad, when set, runs after every fresh load with the loaded pages.
	// The app uses it to prune stale render-cache rows. Set before serving.
	OnLoad func(pages []content.Page)
}

// NewSiteCache creates a SiteCache backed by the given loader.
func NewSiteCache(loader *content.Loader, opts search.Options, ttl time.Duration) *SiteCache {
	return &SiteCache{loader: loader, opts: opts, ttl: ttl}
}

func (c *SiteCache) valid() bool {
	return c.pages != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *SiteCache) Invalidate() {
	c.mu.Lock()
	c.pages = nil
	c.byRoute = nil
	c.index = nil
	c.mu.Unlock()
}

func (c *SiteCache) load() error {
	if c.valid() {
		return nil
	}
	pages, err := c.loader.Load()
	if err != nil {
		return err
	}
	byRoute := make(map[string]int, len(pages))
	for i, p := range pages {
		byRoute[p.Route] = i
	}
	c.pages = pages
	c.byRoute = byRoute
	c.index = search.Build(pages, c.opts)
	c.fetched = time.Now()
	if c.OnLoad != nil {
		c.OnLoad(pages)
	}
	return nil
}

// ensureLoaded returns the cached pages and index after ensuring freshness.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *SiteCache) ensureLoaded() ([]content.Page, map[string]int, *search.Index, error) {
	c.mu.RLock()
	if c.valid() {
		pages, byRoute, index := c.pages, c.byRoute, c.index
		c.mu.RUnlock()
		return pages, byRoute, index, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, nil, err
	}
	return c.pages, c.byRoute, c.index, nil
}

// Pages returns all pages sorted by route.
func (c *SiteCache) Pages() ([]content.Page, error) {
	pages, _, _, err := c.ensureLoaded()
	return pages, err
}

// Page returns the page at route, or ErrNotFound.
func (c *SiteCache) Page(route string) (content.Page, error) {
	pages, byRoute, _, err := c.ensureLoaded()
	if err != nil {
		return content.Page{}, err
	}
	if i, ok := byRoute[route]; ok {
		return pages[i], nil
	}
	return content.Page{}, ErrNotFound
}

// Index returns the search index for the current content.
func (c *SiteCache) Index() (*search.Index, error) {
	_, _, index, err := c.ensureLoaded()
	return index, err
}

// Search queries the index.
func (c *SiteCache) Search(query string, limit int) ([]search.Result, error) {
	index, err := c.Index()
	if err != nil {
		return nil, err
	}
	return index.Search(query, limit), nil
}
