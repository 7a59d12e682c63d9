package docsite

import (
	"bytes"
	"encoding/xml"
	"sort"
	"time"

	"github.com/eringen/docsite/content"
)

const feedLimit = 30

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language,omitempty"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// feedXML renders the RSS feed of the most recently updated pages. Shared
// by the serve handler and the static builder.
func feedXML(cfg SiteConfig, pages []content.Page) ([]byte, error) {
	recent := make([]content.Page, len(pages))
	copy(recent, pages)
	sort.Slice(recent, func(i, j int) bool {
		if !recent[i].UpdatedAt.Equal(recent[j].UpdatedAt) {
			return recent[i].UpdatedAt.After(recent[j].UpdatedAt)
		}
		return recent[i].Route < recent[j].Route
	})
	if len(recent) > feedLimit {
		recent = recent[:feedLimit]
	}

	items := make([]rssItem, 0, len(recent))
	for _, p := range recent {
		pageURL := BuildURL(cfg.URL, p.Route)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        pageURL,
			Description: p.Description,
			PubDate:     p.UpdatedAt.Format(time.RFC1123Z),
			GUID:        pageURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Title,
			Link:        cfg.URL,
			Description: cfg.Description,
			Language:    cfg.Lang,
			Items:       items,
		},
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(feed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
