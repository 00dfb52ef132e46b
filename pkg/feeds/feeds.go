// Package feeds writes sitemap.xml, rss.xml and robots.txt from the same
// record set the page generator consumes.
package feeds

import (
	"strings"
	"time"

	"github.com/gorod-legends/lunapages/models"
)

// Item is one feed entry, shared by the sitemap and RSS writers.
type Item struct {
	Path        string // site-relative page path
	Loc         string // absolute URL
	Title       string
	Description string
	LastMod     time.Time // zero means "use the run time"
	Changefreq  string
	Priority    string
	Lang        string
}

// LastModFunc reports a stored last-modified time for a page path. The
// build log provides one; nil means no history is available.
type LastModFunc func(path string) (time.Time, bool)

// FromRecords flattens page records into feed items in row order.
func FromRecords(cfg models.SiteConfig, records []models.PageRecord, lastMod LastModFunc) []Item {
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		it := Item{
			Path:        rec.URL,
			Loc:         cfg.AbsoluteURL(rec.URL),
			Title:       rec.Title,
			Description: firstNonEmpty(rec.Description, rec.OGDescription, rec.Intro),
			Changefreq:  rec.Changefreq,
			Priority:    rec.Priority,
			Lang:        rec.Lang,
		}
		if it.Title == "" {
			it.Title = strings.Trim(rec.URL, "/")
		}
		if it.Title == "" {
			it.Title = cfg.Brand
		}
		if lastMod != nil {
			if t, ok := lastMod(rec.URL); ok {
				it.LastMod = t
			}
		}
		items = append(items, it)
	}
	return items
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
