package feeds

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/language"
	"github.com/gorod-legends/lunapages/pkg/output"
)

// DefaultRSSLimit caps the feed at the most recent rows.
const DefaultRSSLimit = 20

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description,omitempty"`
	PubDate     string  `xml:"pubDate"`
	GUID        rssGUID `xml:"guid"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	PubDate       string    `xml:"pubDate"`
	Items         []rssItem `xml:"item"`
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

// WriteRSS writes <out>/rss.xml. The last CSV row is treated as the newest
// entry: items are emitted in reverse row order with pubDates synthesized as
// the run time minus one minute per step, so aggregators see a strictly
// descending timeline even though the source has no dates. limit <= 0 means
// DefaultRSSLimit. No items writes nothing.
func WriteRSS(root *output.Root, cfg models.SiteConfig, items []Item, limit int, now time.Time) error {
	if len(items) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultRSSLimit
	}

	langs := make([]string, 0, len(items))
	for _, it := range items {
		langs = append(langs, it.Lang)
	}

	build := now.UTC().Format(time.RFC1123Z)
	doc := rssDoc{
		Version: "2.0",
		Channel: rssChannel{
			Title:         cfg.SiteTitle,
			Link:          cfg.Origin() + "/",
			Description:   cfg.SiteDesc,
			Language:      language.Dominant(langs),
			LastBuildDate: build,
			PubDate:       build,
		},
	}

	count := 0
	for i := len(items) - 1; i >= 0 && count < limit; i-- {
		it := items[i]
		pub := now.UTC().Add(-time.Duration(count) * time.Minute).Format(time.RFC1123Z)
		doc.Channel.Items = append(doc.Channel.Items, rssItem{
			Title:       it.Title,
			Link:        it.Loc,
			Description: it.Description,
			PubDate:     pub,
			GUID:        rssGUID{IsPermaLink: "true", Value: it.Loc},
		})
		count++
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rss: %w", err)
	}
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	return root.WriteFile("rss.xml", out)
}
