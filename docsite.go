// Package docsite is a documentation site engine built with Go, Echo, and
// templ. A declarative site configuration (navigation tree, sidebar trees
// per path prefix, local search tuning, head injections) drives rendering
// of a markdown content tree, either as a static build or served live with
// an optional admin editor.
//
// The markdown pipeline, search index, and structural checks live in the
// content, search, and check subpackages; this package wires them to the
// web layer and the static builder.
package docsite

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/docsite/content"
	"github.com/eringen/docsite/search"
)

// App is the serve-mode docsite application. It wires together the loader,
// render cache, search index, handlers, middleware, and theme.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Loader *content.Loader
	Cache  *SiteCache
	Store  *Store
	Views  ViewFuncs

	loginLimiter *loginLimiter
	customRoutes []func(*App)
}

// New creates a new docsite App with the given configuration. The loader
// and page cache exist from here on, so Invalidate is safe to call before
// Start (the serve command's file watcher does).
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
	}
	a.Loader = content.NewLoader(cfg.ContentDir)
	a.Cache = NewSiteCache(a.Loader, searchOptions(cfg), cfg.PageTTL)

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// searchOptions maps the config's search tuning onto the index options.
func searchOptions(cfg SiteConfig) search.Options {
	return search.Options{
		Fuzziness: cfg.Search.Fuzziness,
		Prefix:    cfg.Search.Prefix,
		Boosts:    cfg.Search.Boosts,
	}
}

// Start initializes the render store, content cache, middleware, and routes,
// then starts the server.
func (a *App) Start() error {
	if err := a.Config.Validate(); err != nil {
		return err
	}
	if a.Config.AdminPassword != "" && a.Config.SessionSecret == "" {
		return fmt.Errorf("docsite: SessionSecret is required when the admin editor is enabled")
	}

	store, err := NewStore(a.Config.CachePath)
	if err != nil {
		return fmt.Errorf("docsite: init store: %w", err)
	}
	a.Store = store

	a.Loader.Cache = store
	// Drop cache rows for source files that no longer exist.
	a.Cache.OnLoad = func(pages []content.Page) {
		live := make(map[string]bool, len(pages))
		for _, p := range pages {
			live[p.SourcePath] = true
		}
		if err := store.PruneRendered(live); err != nil {
			a.Echo.Logger.Warnf("prune render cache: %v", err)
		}
	}

	a.loginLimiter = newLoginLimiter(5, loginWindow)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded theme assets, then the project's own static dir.
	e.GET("/assets/docsite.css", a.handleEmbeddedAsset)
	e.GET("/assets/search.js", a.handleEmbeddedAsset)
	e.Static("/public", a.Config.StaticDir)

	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/search-index.json", a.handleSearchIndex)
	e.GET("/api/search", a.handleSearch)

	if a.Config.AdminPassword != "" {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.GET("/admin/edit/*", a.handleAdminEdit)
		e.POST("/admin/save/", a.handleAdminSave)
		e.GET("/admin/images/", a.handleImageList)
		e.POST("/admin/images/upload/", a.handleImageUpload)
		e.DELETE("/admin/images/:filename/", a.handleImageDelete)
	}

	// Every remaining GET is a content route.
	e.GET("/*", a.handlePage)
}

// Invalidate drops the page cache; the next request reloads from disk.
// The serve command's file watcher calls this on content changes.
func (a *App) Invalidate() {
	if a.Cache != nil {
		a.Cache.Invalidate()
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
