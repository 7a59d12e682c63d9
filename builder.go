package docsite

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/eringen/docsite/check"
	"github.com/eringen/docsite/content"
	"github.com/eringen/docsite/search"
)

// Builder writes the whole site as static files: every page rendered
// through the theme, the search index, sitemap, feed, robots.txt, and the
// static assets.
type Builder struct {
	Config SiteConfig
	Loader *content.Loader
	Views  ViewFuncs

	// Strict turns check errors into build failures. Warnings are always
	// logged either way.
	Strict bool

	Logf func(format string, args ...any)
}

// NewBuilder creates a Builder for cfg with the default theme.
func NewBuilder(cfg SiteConfig) *Builder {
	cfg.setDefaults()
	return &Builder{
		Config: cfg,
		Loader: content.NewLoader(cfg.ContentDir),
		Views:  DefaultViews(),
		Logf:   log.Printf,
	}
}

// checkInput maps the site config onto the checker's input shape.
func checkInput(cfg SiteConfig) check.Config {
	in := check.Config{
		SidebarPrefixes: cfg.SidebarPrefixes(),
		SidebarLinks:    cfg.SidebarLinks(),
		Fuzziness:       cfg.Search.Fuzziness,
	}
	for _, n := range cfg.Nav {
		in.Nav = append(in.Nav, check.NavRef{Text: n.Text, Link: n.Link, ActiveMatch: n.ActiveMatch})
	}
	return in
}

// Check loads the content and runs every structural check.
func (b *Builder) Check() ([]check.Problem, error) {
	if err := b.Config.Validate(); err != nil {
		return nil, err
	}
	pages, err := b.Loader.Load()
	if err != nil {
		return nil, err
	}
	problems := check.Site(checkInput(b.Config), pages)
	check.Sort(problems)
	return problems, nil
}

// Build renders the full static site into the configured output dir.
func (b *Builder) Build(ctx context.Context) error {
	cfg := b.Config
	if err := cfg.Validate(); err != nil {
		return err
	}

	pages, err := b.Loader.Load()
	if err != nil {
		return err
	}

	problems := check.Site(checkInput(cfg), pages)
	check.Sort(problems)
	for _, p := range problems {
		b.Logf("check: %s", p)
	}
	if errs := check.Errors(problems); b.Strict && len(errs) > 0 {
		return fmt.Errorf("docsite: build failed: %d check error(s)", len(errs))
	}

	if err := os.RemoveAll(cfg.OutputDir); err != nil {
		return fmt.Errorf("docsite: clean output dir %s: %w", cfg.OutputDir, err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("docsite: create output dir %s: %w", cfg.OutputDir, err)
	}

	if _, err := os.Stat(cfg.StaticDir); err == nil {
		if err := copyDirContents(cfg.StaticDir, filepath.Join(cfg.OutputDir, "public")); err != nil {
			return fmt.Errorf("docsite: copy static assets: %w", err)
		}
	}
	if err := b.writeEmbeddedAssets(); err != nil {
		return err
	}

	for _, p := range pages {
		if err := b.writePage(ctx, p); err != nil {
			return fmt.Errorf("docsite: render %s: %w", p.Route, err)
		}
	}
	b.Logf("rendered %d pages", len(pages))

	index := search.Build(pages, searchOptions(cfg))
	indexJSON, err := json.Marshal(index)
	if err != nil {
		return fmt.Errorf("docsite: marshal search index: %w", err)
	}
	if err := b.writeFile("search-index.json", indexJSON); err != nil {
		return err
	}

	sitemap, err := sitemapXML(cfg, pages)
	if err != nil {
		return fmt.Errorf("docsite: render sitemap: %w", err)
	}
	if err := b.writeFile("sitemap.xml", sitemap); err != nil {
		return err
	}

	feed, err := feedXML(cfg, pages)
	if err != nil {
		return fmt.Errorf("docsite: render feed: %w", err)
	}
	if err := b.writeFile("feed.xml", feed); err != nil {
		return err
	}

	return b.writeFile("robots.txt", []byte(robotsTxt(cfg)))
}

func (b *Builder) writePage(ctx context.Context, p content.Page) error {
	outPath := filepath.Join(b.Config.OutputDir, filepath.FromSlash(strings.TrimPrefix(p.Route, "/")), "index.html")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	cmp := b.Views.Page(siteView(b.Config, p.Route), pageView(b.Config, p))
	if err := cmp.Render(ctx, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (b *Builder) writeFile(name string, data []byte) error {
	return os.WriteFile(filepath.Join(b.Config.OutputDir, name), data, 0o644)
}

func (b *Builder) writeEmbeddedAssets() error {
	dir := filepath.Join(b.Config.OutputDir, "assets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	entries, err := EmbeddedAssets.ReadDir("embedded")
	if err != nil {
		return err
	}
	for _, e := range entries {
		data, err := EmbeddedAssets.ReadFile("embedded/" + e.Name())
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

// copyDirContents recursively copies contents from src to dst.
func copyDirContents(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, relPath)
		if d.IsDir() {
			return os.MkdirAll(dstPath, 0o755)
		}
		return copyFile(path, dstPath)
	})
}

func copyFile(srcFile, dstFile string) error {
	srcF, err := os.Open(srcFile)
	if err != nil {
		return err
	}
	defer srcF.Close()

	if err := os.MkdirAll(filepath.Dir(dstFile), 0o755); err != nil {
		return err
	}
	dstF, err := os.Create(dstFile)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstF, srcF); err != nil {
		dstF.Close()
		return err
	}
	return dstF.Close()
}
