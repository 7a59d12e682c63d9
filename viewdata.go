package docsite

import (
	"github.com/a-h/templ"

	"github.com/eringen/docsite/content"
	"github.com/eringen/docsite/views"
)

// ViewFuncs holds the templ components the engine calls when rendering
// pages. Defaults come from the views package; users can swap any of them
// via WithViews to own the theme.
type ViewFuncs struct {
	Page           func(site views.Site, page views.Page) templ.Component
	NotFound       func(site views.Site) templ.Component
	ServerError    func(site views.Site) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(pages []views.PageRow, message, csrfToken string) templ.Component
	AdminEdit      func(sourcePath, raw, csrfToken string) templ.Component
	AdminImages    func(images []views.ImageRow, csrfToken string) templ.Component
}

// DefaultViews returns the built-in theme.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Page:           views.Layout,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		AdminEdit:      views.AdminEdit,
		AdminImages:    views.AdminImages,
	}
}

// siteView assembles the site-wide view model for a route: nav highlighting,
// the sidebar tree for the route's section, head injections, search strings.
func siteView(cfg SiteConfig, route string) views.Site {
	site := views.Site{
		Title:       cfg.Title,
		Description: cfg.Description,
		Lang:        cfg.Lang,
		Base:        cfg.Base,
		URL:         cfg.URL,
		FooterMsg:   cfg.Footer.Message,
		Copyright:   cfg.Footer.Copyright,
		JSONLD:      WebsiteJsonLD(cfg),
	}
	for _, n := range cfg.Nav {
		site.Nav = append(site.Nav, views.Link{Text: n.Text, Link: n.Link, Active: NavActive(n, route)})
	}
	for _, s := range cfg.SocialLinks {
		site.SocialLinks = append(site.SocialLinks, views.Link{Text: s.Icon, Link: s.Link})
	}
	for _, t := range cfg.Head {
		site.Head = append(site.Head, views.HeadTag{Tag: t.Tag, Attrs: t.Attrs, Content: t.Content})
	}
	_, groups := cfg.SidebarFor(route)
	for _, g := range groups {
		site.Sidebar = append(site.Sidebar, views.SidebarGroup{
			Text:      g.Text,
			Collapsed: g.Collapsed,
			Items:     sidebarItems(g.Items, route),
		})
	}
	site.Search = searchUI(cfg)
	return site
}

func sidebarItems(items []SidebarItem, route string) []views.SidebarItem {
	out := make([]views.SidebarItem, 0, len(items))
	for _, item := range items {
		v := views.SidebarItem{
			Text:      item.Text,
			Link:      item.Link,
			Collapsed: item.Collapsed,
			Active:    item.Link != "" && sameRoute(item.Link, route),
		}
		if len(item.Items) > 0 {
			v.Items = sidebarItems(item.Items, route)
		}
		out = append(out, v)
	}
	return out
}

// searchUI picks the locale strings for the config language, falling back
// to the "root" locale and then to builtin English defaults.
func searchUI(cfg SiteConfig) views.SearchUI {
	ui := views.SearchUI{ButtonText: "Search", Placeholder: "Search docs", NoResultsText: "No results for"}
	locale, ok := cfg.Search.Locales[cfg.Lang]
	if !ok {
		locale, ok = cfg.Search.Locales["root"]
	}
	if ok {
		if locale.ButtonText != "" {
			ui.ButtonText = locale.ButtonText
		}
		if locale.Placeholder != "" {
			ui.Placeholder = locale.Placeholder
		}
		if locale.NoResultsText != "" {
			ui.NoResultsText = locale.NoResultsText
		}
	}
	return ui
}

// pageView assembles the per-page view model.
func pageView(cfg SiteConfig, p content.Page) views.Page {
	v := views.Page{
		Title:       p.Title,
		Description: p.Description,
		Keywords:    p.Keywords,
		Route:       p.Route,
		HTML:        p.HTML,
		EditURL:     cfg.EditLinkFor(p.SourcePath),
		EditText:    cfg.EditLink.Text,
		JSONLD:      ArticleJsonLD(cfg, p.Title, p.Description, p.Route, p.Keywords),
	}
	if v.EditURL != "" && v.EditText == "" {
		v.EditText = "Edit this page"
	}
	if cfg.LastUpdated && !p.UpdatedAt.IsZero() {
		v.UpdatedAt = p.UpdatedAt.Format("2006-01-02")
	}
	for _, h := range p.Headings {
		v.Outline = append(v.Outline, views.OutlineItem{Level: h.Level, Text: h.Text, Anchor: h.Anchor})
	}
	if prev, next := cfg.PrevNext(p.Route); prev != nil || next != nil {
		if prev != nil {
			v.Prev = &views.Link{Text: prev.Text, Link: prev.Link}
		}
		if next != nil {
			v.Next = &views.Link{Text: next.Text, Link: next.Link}
		}
	}
	return v
}

func pageRows(cfg SiteConfig, pages []content.Page) []views.PageRow {
	rows := make([]views.PageRow, 0, len(pages))
	for _, p := range pages {
		rows = append(rows, views.PageRow{
			Title:      p.Title,
			Route:      p.Route,
			SourcePath: p.SourcePath,
			UpdatedAt:  p.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	return rows
}
