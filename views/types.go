// Package views renders the default docsite theme as templ components.
// The types here mirror the resolved per-request view of the site config:
// the root package assembles them so templates never see raw config.
package views

// Link is a resolved navigation link.
type Link struct {
	Text   string
	Link   string
	Active bool
}

// SidebarItem is a leaf link or nested group in the rendered sidebar.
type SidebarItem struct {
	Text      string
	Link      string
	Active    bool
	Collapsed bool
	Items     []SidebarItem
}

// SidebarGroup is one titled sidebar section.
type SidebarGroup struct {
	Text      string
	Collapsed bool
	Items     []SidebarItem
}

// HeadTag is an extra tag emitted into <head>.
type HeadTag struct {
	Tag     string
	Attrs   map[string]string
	Content string
}

// SearchUI holds the localized search widget strings.
type SearchUI struct {
	ButtonText    string
	Placeholder   string
	NoResultsText string
}

// Site is the site-wide view model shared by every page render.
type Site struct {
	Title       string
	Description string
	Lang        string
	Base        string
	URL         string
	Nav         []Link
	Sidebar     []SidebarGroup
	SocialLinks []Link // Text carries the icon name
	Head        []HeadTag
	Search      SearchUI
	FooterMsg   string
	Copyright   string
	JSONLD      string
}

// OutlineItem is one entry of the on-page table of contents.
type OutlineItem struct {
	Level  int
	Text   string
	Anchor string
}

// Page is the per-page view model.
type Page struct {
	Title       string
	Description string
	Keywords    []string
	Route       string
	HTML        string // rendered markdown, inserted without escaping
	Outline     []OutlineItem
	UpdatedAt   string // formatted, empty when lastUpdated is off
	EditURL     string
	EditText    string
	Prev        *Link
	Next        *Link
	JSONLD      string
}

// PageRow is one row of the admin dashboard page listing.
type PageRow struct {
	Title      string
	Route      string
	SourcePath string
	UpdatedAt  string
}

// ImageRow is one row of the admin image listing.
type ImageRow struct {
	Filename string
	Width    int
	Height   int
	Size     int
}
