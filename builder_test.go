package docsite

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eringen/docsite/content"
	"github.com/eringen/docsite/search"
)

func setupBuildProject(t *testing.T) SiteConfig {
	t.Helper()
	root := t.TempDir()
	write := func(rel, data string) {
		t.Helper()
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	write("docs/index.md", "---\ntitle: 首页\ndescription: 教程站点\n---\n\n欢迎。\n")
	write("docs/solidity/01_HelloWeb3.md", "# 第1讲：Hello Web3\n\n部署第一个合约。\n")
	write("public/logo.svg", "<svg></svg>")

	return SiteConfig{
		Title:       "测试站",
		Description: "极简教程",
		URL:         "https://example.com",
		Nav:         []NavItem{{Text: "Solidity", Link: "/solidity/01_HelloWeb3/", ActiveMatch: "/solidity/"}},
		Sidebar: map[string][]SidebarGroup{
			"/solidity/": {{Text: "入门", Items: []SidebarItem{
				{Text: "第1讲", Link: "/solidity/01_HelloWeb3/"},
			}}},
		},
		ContentDir: filepath.Join(root, "docs"),
		StaticDir:  filepath.Join(root, "public"),
		OutputDir:  filepath.Join(root, "dist"),
	}
}

func TestBuilderBuild(t *testing.T) {
	cfg := setupBuildProject(t)
	b := NewBuilder(cfg)
	b.Logf = t.Logf

	if err := b.Build(context.Background()); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	out := b.Config.OutputDir
	for _, rel := range []string{
		"index.html",
		"solidity/01_HelloWeb3/index.html",
		"search-index.json",
		"sitemap.xml",
		"feed.xml",
		"robots.txt",
		"public/logo.svg",
		"assets/docsite.css",
		"assets/search.js",
	} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(rel))); err != nil {
			t.Errorf("missing output file %s: %v", rel, err)
		}
	}

	html, err := os.ReadFile(filepath.Join(out, "solidity", "01_HelloWeb3", "index.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	page := string(html)
	if !strings.Contains(page, "第1讲：Hello Web3") {
		t.Error("page missing title")
	}
	if !strings.Contains(page, "部署第一个合约") {
		t.Error("page missing body")
	}

	data, err := os.ReadFile(filepath.Join(out, "search-index.json"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	var ix search.Index
	if err := json.Unmarshal(data, &ix); err != nil {
		t.Fatalf("search index does not parse: %v", err)
	}
	if ix.Len() != 2 {
		t.Errorf("index Len = %d, want 2", ix.Len())
	}

	robots, err := os.ReadFile(filepath.Join(out, "robots.txt"))
	if err != nil {
		t.Fatalf("read robots: %v", err)
	}
	if !strings.Contains(string(robots), "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("robots.txt = %s", robots)
	}
}

func TestBuilderCheck(t *testing.T) {
	cfg := setupBuildProject(t)
	cfg.Sidebar["/solidity/"][0].Items = append(cfg.Sidebar["/solidity/"][0].Items,
		SidebarItem{Text: "缺失", Link: "/solidity/99_Missing/"})

	b := NewBuilder(cfg)
	problems, err := b.Check()
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(problems) != 1 || !strings.Contains(problems[0].Message, "/solidity/99_Missing/") {
		t.Fatalf("problems = %v", problems)
	}
}

func TestBuilderCheckReportsMalformedFrontmatter(t *testing.T) {
	cfg := setupBuildProject(t)
	bad := filepath.Join(cfg.ContentDir, "solidity", "03_Broken.md")
	if err := os.WriteFile(bad, []byte("---\ntitle: [unclosed\n---\n\n# 第3讲\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	b := NewBuilder(cfg)
	problems, err := b.Check()
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1: %v", len(problems), problems)
	}
	p := problems[0]
	if p.Where != "solidity/03_Broken.md" || !strings.Contains(p.Message, "frontmatter does not parse") {
		t.Errorf("problem = %v", p)
	}

	// The malformed page fails a strict build, too.
	b.Logf = t.Logf
	b.Strict = true
	if err := b.Build(context.Background()); err == nil {
		t.Error("strict build with malformed frontmatter should fail")
	}
}

func TestBuilderStrictFailsOnBrokenLink(t *testing.T) {
	cfg := setupBuildProject(t)
	cfg.Nav = append(cfg.Nav, NavItem{Text: "Broken", Link: "/nowhere/"})

	b := NewBuilder(cfg)
	b.Logf = t.Logf
	b.Strict = true
	if err := b.Build(context.Background()); err == nil {
		t.Fatal("strict build with a broken link should fail")
	}

	b.Strict = false
	if err := b.Build(context.Background()); err != nil {
		t.Fatalf("non-strict build should succeed, got %v", err)
	}
}

func TestSitemapXML(t *testing.T) {
	cfg := SiteConfig{URL: "https://example.com"}
	pages := []content.Page{
		{Route: "/", UpdatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Route: "/solidity/01_HelloWeb3/"},
	}
	data, err := sitemapXML(cfg, pages)
	if err != nil {
		t.Fatalf("sitemapXML failed: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, "<loc>https://example.com/solidity/01_HelloWeb3/</loc>") {
		t.Errorf("sitemap = %s", s)
	}
	if !strings.Contains(s, "<lastmod>2026-03-01</lastmod>") {
		t.Errorf("sitemap missing lastmod: %s", s)
	}
}

func TestFeedXMLNewestFirst(t *testing.T) {
	cfg := SiteConfig{Title: "测试站", URL: "https://example.com", Lang: "zh-CN"}
	pages := []content.Page{
		{Route: "/old/", Title: "旧", UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Route: "/new/", Title: "新", UpdatedAt: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	data, err := feedXML(cfg, pages)
	if err != nil {
		t.Fatalf("feedXML failed: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `<rss version="2.0">`) {
		t.Errorf("feed = %s", s)
	}
	newIdx := strings.Index(s, "https://example.com/new/")
	oldIdx := strings.Index(s, "https://example.com/old/")
	if newIdx < 0 || oldIdx < 0 || newIdx > oldIdx {
		t.Errorf("feed items not newest first: %s", s)
	}
	if !strings.Contains(s, "<language>zh-CN</language>") {
		t.Errorf("feed missing language: %s", s)
	}
}
