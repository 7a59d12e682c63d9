package docsite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eringen/docsite/content"
	"github.com/eringen/docsite/search"
)

func setupSiteCache(t *testing.T) (*SiteCache, string) {
	t.Helper()
	dir := t.TempDir()
	write := func(rel, data string) {
		t.Helper()
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write("index.md", "# 首页\n\n欢迎\n")
	write(filepath.Join("solidity", "01_HelloWeb3.md"), "# Hello Web3\n\n部署合约\n")

	opts := search.Options{Boosts: map[string]float64{"title": 4, "heading": 2, "text": 1}}
	return NewSiteCache(content.NewLoader(dir), opts, time.Minute), dir
}

func TestSiteCachePages(t *testing.T) {
	cache, _ := setupSiteCache(t)
	pages, err := cache.Pages()
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].Route != "/" || pages[1].Route != "/solidity/01_HelloWeb3/" {
		t.Errorf("routes = %q %q", pages[0].Route, pages[1].Route)
	}
}

func TestSiteCachePageLookup(t *testing.T) {
	cache, _ := setupSiteCache(t)
	page, err := cache.Page("/solidity/01_HelloWeb3/")
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if page.Title != "Hello Web3" {
		t.Errorf("Title = %q", page.Title)
	}
	if _, err := cache.Page("/missing/"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSiteCacheSearch(t *testing.T) {
	cache, _ := setupSiteCache(t)
	results, err := cache.Search("web3", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Route != "/solidity/01_HelloWeb3/" {
		t.Errorf("results = %+v", results)
	}
}

func TestSiteCacheOnLoad(t *testing.T) {
	cache, _ := setupSiteCache(t)
	calls := 0
	cache.OnLoad = func(pages []content.Page) {
		calls++
		if len(pages) != 2 {
			t.Errorf("OnLoad got %d pages, want 2", len(pages))
		}
	}

	if _, err := cache.Pages(); err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if _, err := cache.Pages(); err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("OnLoad ran %d times for cached reads, want 1", calls)
	}

	cache.Invalidate()
	if _, err := cache.Pages(); err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("OnLoad ran %d times after invalidate, want 2", calls)
	}
}

func TestSiteCachePrunesRenderCache(t *testing.T) {
	cache, dir := setupSiteCache(t)
	store := setupTestStore(t)
	cache.loader.Cache = store
	cache.OnLoad = func(pages []content.Page) {
		live := make(map[string]bool, len(pages))
		for _, p := range pages {
			live[p.SourcePath] = true
		}
		if err := store.PruneRendered(live); err != nil {
			t.Errorf("PruneRendered failed: %v", err)
		}
	}

	if _, err := cache.Pages(); err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if _, ok := getAnyHash(store, "solidity/01_HelloWeb3.md"); !ok {
		t.Fatal("render cache row missing after load")
	}

	if err := os.Remove(filepath.Join(dir, "solidity", "01_HelloWeb3.md")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	cache.Invalidate()
	if _, err := cache.Pages(); err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if _, ok := getAnyHash(store, "solidity/01_HelloWeb3.md"); ok {
		t.Error("render cache row for a deleted file survived the reload")
	}
}

// getAnyHash reports whether the store holds a rendered_pages row for path,
// regardless of its content hash.
func getAnyHash(s *Store, path string) (string, bool) {
	var hash string
	err := s.db.QueryRow(`SELECT hash FROM rendered_pages WHERE path = ?`, path).Scan(&hash)
	return hash, err == nil
}

func TestSiteCacheInvalidate(t *testing.T) {
	cache, dir := setupSiteCache(t)
	if _, err := cache.Pages(); err != nil {
		t.Fatalf("Pages failed: %v", err)
	}

	// A new file is invisible until the cache is invalidated.
	path := filepath.Join(dir, "new.md")
	if err := os.WriteFile(path, []byte("# New Page\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	pages, err := cache.Pages()
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("cache reloaded early: %d pages", len(pages))
	}

	cache.Invalidate()
	pages, err = cache.Pages()
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if len(pages) != 3 {
		t.Errorf("got %d pages after invalidate, want 3", len(pages))
	}
}
