// Package csvsource loads page records from the source spreadsheet: it
// finds the CSV among candidate paths, parses it tolerantly (BOM, ragged
// rows), applies the per-field fallback chains and skips rows that cannot
// become pages.
package csvsource

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/language"
	"github.com/gorod-legends/lunapages/pkg/normalize"
)

// DefaultCandidates are the locations probed, in order, when no explicit
// --csv path is given.
var DefaultCandidates = []string{
	"data/pages.csv",
	"content/pages.csv",
	"pages.csv",
	"content.csv",
	"data.csv",
}

// canonicalHeader is the strict-mode column list, in exact order.
var canonicalHeader = []string{
	"url", "title", "keyword", "slug", "description", "intro", "cta",
	"bullets", "tags", "examples", "tips_do", "tips_avoid",
	"h2a_title", "h2a_text", "h2b_title", "h2b_text", "h2c_title", "h2c_text",
	"faq1_q", "faq1_a", "faq2_q", "faq2_a", "faq3_q", "faq3_a",
	"internal_links",
}

// maxFAQ is how many numbered faq{i}_q/faq{i}_a pairs the loader probes.
const maxFAQ = 10

// sectionKeys are the generic H2 block column prefixes.
var sectionKeys = []string{"h2a", "h2b", "h2c", "h2d"}

// Stats summarizes one load pass.
type Stats struct {
	Rows    int // data rows seen
	Loaded  int // records produced (after duplicate folding)
	Skipped int // rows rejected
}

// Loader reads CSV rows into PageRecords.
type Loader struct {
	Logger *slog.Logger

	// Strict validates the header against the canonical 25-column list
	// and fails on rows wider than the header.
	Strict bool

	// RelatedWindow, when positive, gives rows without explicit related
	// links the previous N rows as a default related set.
	RelatedWindow int

	// Detector fills PageRecord.Lang; nil means everything is "ru".
	Detector *language.Detector
}

// Find returns the first existing path among candidates.
func Find(candidates []string) (string, bool) {
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// Load parses the CSV at path into page records. Row-level problems are
// logged and skipped; only unreadable files and malformed headers error.
func (l *Loader) Load(path string) ([]models.PageRecord, Stats, error) {
	var stats Stats

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read csv: %w", err)
	}
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})

	r := csv.NewReader(bytes.NewReader(b))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	if l.Strict {
		if err := checkHeader(header); err != nil {
			return nil, stats, err
		}
	}

	var records []models.PageRecord
	seen := map[string]int{} // normalized URL -> index in records

	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Only the header may kill the run; a broken row is one
			// lost page, not zero.
			stats.Rows++
			stats.Skipped++
			l.logger().Warn("skipping row", "line", line, "reason", err.Error())
			continue
		}
		stats.Rows++

		if l.Strict && len(rec) > len(header) {
			return nil, stats, fmt.Errorf("line %d has %d extra column(s); check quoting around cells with commas", line, len(rec)-len(header))
		}

		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}

		page, reason := l.buildRecord(row, line)
		if reason != "" {
			stats.Skipped++
			l.logger().Warn("skipping row", "line", line, "reason", reason)
			continue
		}

		// Duplicate URLs: the later row wins, keeping the earlier position.
		if i, dup := seen[page.URL]; dup {
			l.logger().Warn("duplicate url, later row wins", "line", line, "url", page.URL)
			records[i] = page
			continue
		}
		seen[page.URL] = len(records)
		records = append(records, page)
	}

	if l.RelatedWindow > 0 {
		fillRelatedWindow(records, l.RelatedWindow)
	}

	stats.Loaded = len(records)
	return records, stats, nil
}

// buildRecord turns one row map into a PageRecord. A non-empty reason
// means the row cannot become a page.
func (l *Loader) buildRecord(row map[string]string, line int) (models.PageRecord, string) {
	url := row["url"]
	slugCol := row["slug"]
	if url == "" {
		if slugCol == "" {
			return models.PageRecord{}, "no url and no slug"
		}
		url = "/chat/" + normalize.Slug(slugCol) + "/"
	}
	url = normalize.URL(url)

	title := firstNonEmpty(row["title"], row["og_title"], row["h1"])
	if title == "" {
		return models.PageRecord{}, "empty title (checked title, og_title, h1)"
	}

	slugSrc := slugCol
	if slugSrc == "" {
		slugSrc = url
	}

	page := models.PageRecord{
		URL:  url,
		Slug: normalize.Slug(slugSrc),

		Title:       title,
		H1:          firstNonEmpty(row["h1"], title),
		Keyword:     row["keyword"],
		Description: row["description"],
		Intro:       row["intro"],

		OGTitle:       row["og_title"],
		OGDescription: row["og_description"],

		CTA:     row["cta"],
		CTAHref: row["cta_href"],

		Bullets:   normalize.SplitList(row["bullets"]),
		Tags:      normalize.SplitList(row["tags"]),
		Examples:  normalize.SplitList(row["examples"]),
		TipsDo:    normalize.SplitList(row["tips_do"]),
		TipsAvoid: normalize.SplitList(row["tips_avoid"]),

		Noindex:    normalize.Truthy(row["noindex"]),
		Canonical:  row["canonical"],
		Changefreq: row["changefreq"],
		Priority:   row["priority"],
		Hub:        row["hub"],

		Line: line,
	}

	for _, key := range sectionKeys {
		secTitle, secText := row[key+"_title"], row[key+"_text"]
		if secTitle == "" && secText == "" {
			continue
		}
		page.Sections = append(page.Sections, models.Section{Title: secTitle, Text: secText})
	}

	for i := 1; i <= maxFAQ; i++ {
		q := row[fmt.Sprintf("faq%d_q", i)]
		a := row[fmt.Sprintf("faq%d_a", i)]
		if q == "" || a == "" {
			continue
		}
		page.FAQ = append(page.FAQ, models.QA{Question: q, Answer: a})
	}

	linksField := firstNonEmpty(row["internal_links"], row["related"])
	for _, raw := range normalize.SplitLinks(linksField) {
		page.Related = append(page.Related, models.ParseLinkRef(raw))
	}

	if l.Detector != nil {
		page.Lang = l.Detector.Detect(page.Title + " " + page.Intro)
	} else {
		page.Lang = language.DefaultLang
	}

	return page, ""
}

// fillRelatedWindow gives link-less records the previous n records as
// related targets (anchor text resolves through the batch title index).
func fillRelatedWindow(records []models.PageRecord, n int) {
	for i := range records {
		if len(records[i].Related) > 0 {
			continue
		}
		lo := i - n
		if lo < 0 {
			lo = 0
		}
		for j := lo; j < i; j++ {
			records[i].Related = append(records[i].Related, models.LinkReference{Target: records[j].URL})
		}
	}
}

func checkHeader(header []string) error {
	if len(header) != len(canonicalHeader) {
		return fmt.Errorf("bad csv header: want %d columns, got %d\nexpected:\n%s",
			len(canonicalHeader), len(header), strings.Join(canonicalHeader, ","))
	}
	for i, want := range canonicalHeader {
		if header[i] != want {
			return fmt.Errorf("bad csv header: column %d is %q, want %q\nexpected:\n%s",
				i+1, header[i], want, strings.Join(canonicalHeader, ","))
		}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}
