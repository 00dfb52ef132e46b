package feeds

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/gorod-legends/lunapages/pkg/output"
)

const lastmodLayout = "2006-01-02"

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	Changefreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// WriteSitemap writes <out>/sitemap.xml, one <url> per item in row order.
// Rows may override changefreq and priority; the defaults are weekly / 0.6.
// lastmod comes from the item's stored time when present, else the run time.
// No items writes nothing.
func WriteSitemap(root *output.Root, items []Item, now time.Time) error {
	if len(items) == 0 {
		return nil
	}
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, it := range items {
		u := sitemapURL{
			Loc:        it.Loc,
			LastMod:    now.UTC().Format(lastmodLayout),
			Changefreq: "weekly",
			Priority:   "0.6",
		}
		if !it.LastMod.IsZero() {
			u.LastMod = it.LastMod.UTC().Format(lastmodLayout)
		}
		if it.Changefreq != "" {
			u.Changefreq = it.Changefreq
		}
		if it.Priority != "" {
			u.Priority = it.Priority
		}
		set.URLs = append(set.URLs, u)
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sitemap: %w", err)
	}
	doc := append([]byte(xml.Header), data...)
	doc = append(doc, '\n')
	return root.WriteFile("sitemap.xml", doc)
}
