package content

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RenderCache lets a loader skip markdown conversion for unchanged files.
// Implementations key on the source path plus a content hash.
type RenderCache interface {
	Get(path, hash string) (html string, ok bool)
	Put(path, hash, html string)
}

// Loader walks a content directory and produces Pages.
type Loader struct {
	Dir   string
	Cache RenderCache // optional

	md    goldmark.Markdown
	title cases.Caser
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{
		Dir: dir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
		title: cases.Title(language.English),
	}
}

// Load walks the content dir and returns all pages sorted by route.
func (l *Loader) Load() ([]Page, error) {
	var pages []Page
	err := filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		rel, err := filepath.Rel(l.Dir, path)
		if err != nil {
			return err
		}
		page, err := l.loadFile(path, rel)
		if err != nil {
			return fmt.Errorf("content: %s: %w", rel, err)
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Route < pages[j].Route })
	return pages, nil
}

func (l *Loader) loadFile(path, rel string) (Page, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Page{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return Page{}, err
	}

	var fm map[string]any
	var fmErr error
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		// A malformed frontmatter block should not tear down the whole
		// build; the check package reports it. Treat as pure markdown.
		body = raw
		fm = nil
		fmErr = err
	}

	page := Page{
		Route:          routeFor(rel),
		SourcePath:     filepath.ToSlash(rel),
		Frontmatter:    fm,
		FrontmatterErr: fmErr,
		UpdatedAt:      info.ModTime(),
	}
	page.Section = sectionFor(page.Route)

	if title, ok := fm["title"].(string); ok {
		page.Title = title
	}
	if desc, ok := fm["description"].(string); ok {
		page.Description = desc
	}
	if kw, err := coerceKeywords(fm["keywords"]); err == nil {
		page.Keywords = kw
	}

	hash := contentHash(raw)
	doc := l.md.Parser().Parse(text.NewReader(body))
	page.Headings, page.Text = outline(doc, body)

	if l.Cache != nil {
		if html, ok := l.Cache.Get(page.SourcePath, hash); ok {
			page.HTML = html
		}
	}
	if page.HTML == "" {
		var buf bytes.Buffer
		if err := l.md.Renderer().Render(&buf, body, doc); err != nil {
			return Page{}, fmt.Errorf("render markdown: %w", err)
		}
		page.HTML = buf.String()
		if l.Cache != nil {
			l.Cache.Put(page.SourcePath, hash, page.HTML)
		}
	}

	if page.Title == "" {
		page.Title = l.fallbackTitle(page)
	}
	return page, nil
}

// fallbackTitle prefers the first h1, then a title-cased file name.
func (l *Loader) fallbackTitle(p Page) string {
	for _, h := range p.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	base := strings.TrimSuffix(filepath.Base(p.SourcePath), ".md")
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return l.title.String(base)
}

func contentHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// outline walks the parsed document collecting the heading outline and the
// plain-text body. Code blocks are skipped so the search index is not
// flooded with snippet tokens.
func outline(doc ast.Node, source []byte) ([]Heading, string) {
	var headings []Heading
	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		case *ast.Heading:
			h := Heading{Level: node.Level, Text: nodeText(node, source)}
			if id, ok := node.AttributeString("id"); ok {
				if b, isBytes := id.([]byte); isBytes {
					h.Anchor = string(b)
				}
			}
			headings = append(headings, h)
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			buf.Write(node.Segment.Value(source))
			buf.WriteByte(' ')
		case *ast.String:
			buf.Write(node.Value)
			buf.WriteByte(' ')
		}
		return ast.WalkContinue, nil
	})
	return headings, strings.TrimSpace(buf.String())
}

// nodeText flattens the text content of a node's subtree.
func nodeText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(nodeText(c, source))
		}
	}
	return buf.String()
}

// SplitFrontmatter separates a raw markdown file into its frontmatter map
// and body. Used by the admin editor to validate a file before saving.
func SplitFrontmatter(raw []byte) (map[string]any, []byte, error) {
	var fm map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return nil, nil, err
	}
	return fm, body, nil
}
