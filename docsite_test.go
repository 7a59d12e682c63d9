package docsite

import "testing"

func TestNewInitializesCacheBeforeStart(t *testing.T) {
	app := New(SiteConfig{ContentDir: t.TempDir()})
	if app.Cache == nil || app.Loader == nil {
		t.Fatal("New should create the loader and page cache")
	}
	// The serve command wires a file watcher before Start; an event arriving
	// during startup must find a usable cache.
	app.Invalidate()
	if _, err := app.Cache.Pages(); err != nil {
		t.Errorf("Pages after early Invalidate failed: %v", err)
	}
}
