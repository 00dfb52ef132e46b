package links

import (
	"bytes"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ScrapeTitle recovers a page title from a previously rendered HTML file:
// the first <h1> wins, the document <title> is the fallback. This is the
// last lookup before giving up on real titles, kept for output trees that
// predate the sidecar manifest.
func ScrapeTitle(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", false
	}

	if text := cleanText(doc.Find("h1").First().Text()); text != "" {
		return text, true
	}
	if text := cleanText(doc.Find("title").First().Text()); text != "" {
		return text, true
	}
	return "", false
}

// cleanText collapses runs of whitespace left behind by nested markup.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
