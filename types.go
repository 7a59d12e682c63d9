package docsite

// NavItem is one entry in the top navigation bar. Order is display order.
type NavItem struct {
	Text string `yaml:"text"`
	Link string `yaml:"link"`
	// ActiveMatch is an optional regular expression matched against the
	// current route to decide whether the entry is highlighted. When empty,
	// Link is used as a prefix match instead.
	ActiveMatch string `yaml:"activeMatch,omitempty"`
}

// SidebarItem is a leaf link or a nested group inside a sidebar tree.
// A leaf has Link set; a group has Items set.
type SidebarItem struct {
	Text      string        `yaml:"text"`
	Link      string        `yaml:"link,omitempty"`
	Collapsed bool          `yaml:"collapsed,omitempty"`
	Items     []SidebarItem `yaml:"items,omitempty"`
}

// SidebarGroup is a titled section of the sidebar for one path prefix.
type SidebarGroup struct {
	Text      string        `yaml:"text"`
	Collapsed bool          `yaml:"collapsed,omitempty"`
	Items     []SidebarItem `yaml:"items"`
}

// SearchLocale holds the search UI strings for one locale.
type SearchLocale struct {
	ButtonText       string `yaml:"buttonText"`
	ButtonAriaLabel  string `yaml:"buttonAriaLabel,omitempty"`
	Placeholder      string `yaml:"placeholder,omitempty"`
	NoResultsText    string `yaml:"noResultsText,omitempty"`
	ResetButtonTitle string `yaml:"resetButtonTitle,omitempty"`
	FooterSelectText string `yaml:"footerSelectText,omitempty"`
	FooterCloseText  string `yaml:"footerCloseText,omitempty"`
}

// SearchConfig tunes the local search index builder and query side.
type SearchConfig struct {
	Provider  string                  `yaml:"provider"` // only "local" is supported
	Fuzziness float64                 `yaml:"fuzziness"`
	Prefix    bool                    `yaml:"prefix"`
	Boosts    map[string]float64      `yaml:"boosts,omitempty"` // field name -> weight
	Locales   map[string]SearchLocale `yaml:"locales,omitempty"`
}

// HeadTag is emitted verbatim into the rendered <head>. Order-significant.
type HeadTag struct {
	Tag     string            `yaml:"tag"`
	Attrs   map[string]string `yaml:"attrs,omitempty"`
	Content string            `yaml:"content,omitempty"`
}

// SocialLink is an icon link rendered in the nav bar.
type SocialLink struct {
	Icon string `yaml:"icon"`
	Link string `yaml:"link"`
}

// EditLink configures the per-page "edit this page" link. Pattern may
// contain ":path", replaced with the page's source path relative to the
// content directory.
type EditLink struct {
	Pattern string `yaml:"pattern"`
	Text    string `yaml:"text"`
}

// Footer is the site-wide footer text.
type Footer struct {
	Message   string `yaml:"message"`
	Copyright string `yaml:"copyright"`
}
