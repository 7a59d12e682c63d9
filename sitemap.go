package docsite

import (
	"bytes"
	"encoding/xml"
	"strings"

	"github.com/eringen/docsite/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// sitemapXML renders the sitemap for all pages. Shared by the serve handler
// and the static builder.
func sitemapXML(cfg SiteConfig, pages []content.Page) ([]byte, error) {
	urls := make([]sitemapURL, 0, len(pages))
	for _, p := range pages {
		u := sitemapURL{Loc: BuildURL(cfg.URL, p.Route)}
		if !p.UpdatedAt.IsZero() {
			u.LastMod = p.UpdatedAt.Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(sitemap); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// robotsTxt points crawlers at the sitemap and keeps them out of the admin.
func robotsTxt(cfg SiteConfig) string {
	return "User-agent: *\nDisallow: /admin/\nSitemap: " + strings.TrimSuffix(cfg.URL, "/") + "/sitemap.xml\n"
}
