package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Layout renders a full documentation page: head with injected tags, top
// nav with the search widget, sidebar, article body, prev/next footer.
func Layout(site Site, page Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeHead(&b, site, page)
		b.WriteString(`<body><div class="layout">`)
		writeNav(&b, site)
		writeSidebar(&b, site)
		b.WriteString(`<main class="doc">`)
		writeBreadcrumbTitle(&b, page)
		b.WriteString(`<article class="doc-content">`)
		b.WriteString(page.HTML)
		b.WriteString(`</article>`)
		writeDocFooter(&b, page)
		b.WriteString(`</main>`)
		writeOutline(&b, page)
		b.WriteString(`</div>`)
		writeFooter(&b, site)
		b.WriteString(`<script src="` + esc(site.Base) + `assets/search.js" defer></script>`)
		b.WriteString(`</body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeHead(b *strings.Builder, site Site, page Page) {
	title := site.Title
	if page.Title != "" && page.Title != site.Title {
		title = page.Title + " | " + site.Title
	}
	desc := page.Description
	if desc == "" {
		desc = site.Description
	}
	b.WriteString(`<!DOCTYPE html><html lang="` + esc(site.Lang) + `"><head>`)
	b.WriteString(`<meta charset="utf-8">`)
	b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.WriteString(`<title>` + esc(title) + `</title>`)
	if desc != "" {
		b.WriteString(`<meta name="description" content="` + esc(desc) + `">`)
	}
	if len(page.Keywords) > 0 {
		b.WriteString(`<meta name="keywords" content="` + esc(strings.Join(page.Keywords, ",")) + `">`)
	}
	b.WriteString(`<link rel="stylesheet" href="` + esc(site.Base) + `assets/docsite.css">`)
	for _, t := range site.Head {
		writeHeadTag(b, t)
	}
	if page.JSONLD != "" {
		b.WriteString(`<script type="application/ld+json">` + page.JSONLD + `</script>`)
	} else if site.JSONLD != "" {
		b.WriteString(`<script type="application/ld+json">` + site.JSONLD + `</script>`)
	}
	b.WriteString(`</head>`)
}

func writeNav(b *strings.Builder, site Site) {
	b.WriteString(`<header class="navbar"><a class="site-title" href="` + esc(site.Base) + `">` + esc(site.Title) + `</a>`)
	b.WriteString(`<div id="search" class="search" data-placeholder="` + esc(site.Search.Placeholder) +
		`" data-no-results="` + esc(site.Search.NoResultsText) + `">` +
		`<button type="button" class="search-button">` + esc(site.Search.ButtonText) + `</button></div>`)
	b.WriteString(`<nav class="nav-links">`)
	for _, n := range site.Nav {
		class := "nav-link"
		if n.Active {
			class += " active"
		}
		b.WriteString(`<a class="` + class + `" href="` + esc(n.Link) + `">` + esc(n.Text) + `</a>`)
	}
	for _, s := range site.SocialLinks {
		b.WriteString(`<a class="social-link social-` + esc(s.Text) + `" href="` + esc(s.Link) + `" rel="noopener" target="_blank">` + esc(s.Text) + `</a>`)
	}
	b.WriteString(`</nav></header>`)
}

func writeSidebar(b *strings.Builder, site Site) {
	if len(site.Sidebar) == 0 {
		return
	}
	b.WriteString(`<aside class="sidebar"><nav>`)
	for _, g := range site.Sidebar {
		class := "sidebar-group"
		if g.Collapsed {
			class += " collapsed"
		}
		b.WriteString(`<section class="` + class + `"><p class="sidebar-group-title">` + esc(g.Text) + `</p>`)
		writeSidebarItems(b, g.Items)
		b.WriteString(`</section>`)
	}
	b.WriteString(`</nav></aside>`)
}

func writeSidebarItems(b *strings.Builder, items []SidebarItem) {
	b.WriteString(`<ul class="sidebar-items">`)
	for _, item := range items {
		b.WriteString(`<li>`)
		if item.Link != "" {
			class := "sidebar-link"
			if item.Active {
				class += " active"
			}
			b.WriteString(`<a class="` + class + `" href="` + esc(item.Link) + `">` + esc(item.Text) + `</a>`)
		} else {
			b.WriteString(`<span class="sidebar-subgroup-title">` + esc(item.Text) + `</span>`)
		}
		if len(item.Items) > 0 {
			writeSidebarItems(b, item.Items)
		}
		b.WriteString(`</li>`)
	}
	b.WriteString(`</ul>`)
}

func writeBreadcrumbTitle(b *strings.Builder, page Page) {
	// The h1 comes from the markdown body itself; nothing extra when the
	// body already opens with a heading.
	if !strings.Contains(page.HTML, "<h1") && page.Title != "" {
		b.WriteString(`<h1 class="doc-title">` + esc(page.Title) + `</h1>`)
	}
}

func writeOutline(b *strings.Builder, page Page) {
	var items []OutlineItem
	for _, o := range page.Outline {
		if o.Level == 2 || o.Level == 3 {
			items = append(items, o)
		}
	}
	if len(items) == 0 {
		return
	}
	b.WriteString(`<aside class="outline"><nav><ul>`)
	for _, o := range items {
		b.WriteString(`<li class="outline-l` + itoa(o.Level) + `"><a href="#` + esc(o.Anchor) + `">` + esc(o.Text) + `</a></li>`)
	}
	b.WriteString(`</ul></nav></aside>`)
}

func writeDocFooter(b *strings.Builder, page Page) {
	b.WriteString(`<footer class="doc-footer">`)
	if page.EditURL != "" {
		b.WriteString(`<a class="edit-link" href="` + esc(page.EditURL) + `" rel="noopener" target="_blank">` + esc(page.EditText) + `</a>`)
	}
	if page.UpdatedAt != "" {
		b.WriteString(`<span class="last-updated">` + esc(page.UpdatedAt) + `</span>`)
	}
	if page.Prev != nil || page.Next != nil {
		b.WriteString(`<nav class="pager">`)
		if page.Prev != nil {
			b.WriteString(`<a class="pager-prev" href="` + esc(page.Prev.Link) + `">` + esc(page.Prev.Text) + `</a>`)
		}
		if page.Next != nil {
			b.WriteString(`<a class="pager-next" href="` + esc(page.Next.Link) + `">` + esc(page.Next.Text) + `</a>`)
		}
		b.WriteString(`</nav>`)
	}
	b.WriteString(`</footer>`)
}

func writeFooter(b *strings.Builder, site Site) {
	if site.FooterMsg == "" && site.Copyright == "" {
		return
	}
	b.WriteString(`<footer class="site-footer">`)
	if site.FooterMsg != "" {
		b.WriteString(`<p class="footer-message">` + esc(site.FooterMsg) + `</p>`)
	}
	if site.Copyright != "" {
		b.WriteString(`<p class="footer-copyright">` + esc(site.Copyright) + `</p>`)
	}
	b.WriteString(`</footer>`)
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return statusPage(site, "404", "页面不存在")
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return statusPage(site, "500", "服务器内部错误")
}

func statusPage(site Site, code, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeHead(&b, site, Page{Title: code})
		b.WriteString(`<body><div class="layout">`)
		writeNav(&b, site)
		b.WriteString(`<main class="doc status-page"><h1>` + esc(code) + `</h1><p>` + esc(message) + `</p>`)
		b.WriteString(`<a href="` + esc(site.Base) + `">` + esc(site.Title) + `</a></main></div></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func itoa(n int) string {
	// outline levels are 2 or 3
	return string(rune('0' + n))
}
