// Package sitescan recovers page records from an already-built output tree,
// so the feed writers can run without the source CSV.
package sitescan

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"

	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/normalize"
)

// Scan walks dir for **/index.html and rebuilds a minimal record per page:
// the URL from the directory path, title and description from the document
// itself. Records come back deduped and sorted by URL. A missing dir is not
// an error; it just yields nothing.
func Scan(dir string) ([]models.PageRecord, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var records []models.PageRecord
	seen := make(map[string]bool)

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || d.Name() != "index.html" {
			return nil
		}

		rel, err := filepath.Rel(dir, filepath.Dir(path))
		if err != nil {
			return err
		}
		pageURL := "/"
		if rel != "." {
			pageURL = "/" + filepath.ToSlash(rel) + "/"
		}
		if seen[pageURL] {
			return nil
		}
		seen[pageURL] = true

		title, desc := extractMeta(path, pageURL)
		if title == "" {
			title = strings.Trim(pageURL, "/")
		}
		records = append(records, models.PageRecord{
			URL:         pageURL,
			Slug:        normalize.Slug(pageURL),
			Title:       title,
			Description: desc,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].URL < records[j].URL })
	return records, nil
}

// extractMeta pulls the title and description out of a built page.
// Readability metadata first; a raw <title> walk when that comes up empty.
// Unreadable or unparsable files degrade to empty strings.
func extractMeta(path, pageURL string) (title, desc string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", ""
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		base = &url.URL{Path: "/"}
	}
	parser := readability.NewParser()
	if article, err := parser.Parse(bytes.NewReader(raw), base); err == nil {
		title = squash(article.Title)
		desc = squash(article.Excerpt)
	}
	if title == "" {
		title = rawTitle(bytes.NewReader(raw))
	}
	return title, desc
}

// rawTitle returns the text of the first <title> element.
func rawTitle(r io.Reader) string {
	doc, err := html.Parse(r)
	if err != nil {
		return ""
	}
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				title = squash(n.FirstChild.Data)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}

func squash(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
