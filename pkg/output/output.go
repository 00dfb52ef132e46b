// Package output manages the generated-site root: overwrite-style file
// writes, URL-to-path mapping, and the --clean / --replace-md operations.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// generatedNames are the root-level artifacts the generator owns. Clean
// removes these and the per-page directories, never the whole tree.
var generatedNames = []string{
	"index.html",
	"sitemap.xml",
	"rss.xml",
	"robots.txt",
	"pages.yaml",
	".buildlog.db",
}

// Root is the output directory all artifacts are written under.
type Root struct {
	Dir string
}

// NewRoot ensures the output directory exists.
func NewRoot(dir string) (*Root, error) {
	if dir == "" {
		dir = "docs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output root: %w", err)
	}
	return &Root{Dir: dir}, nil
}

// PagePath maps a normalized page URL to its index.html location under
// the root. "/" maps to the root's own index.html.
func (r *Root) PagePath(url string) string {
	parts := []string{r.Dir}
	for _, seg := range strings.Split(url, "/") {
		if seg != "" {
			parts = append(parts, seg)
		}
	}
	parts = append(parts, "index.html")
	return filepath.Join(parts...)
}

// Path joins a root-relative name.
func (r *Root) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// WriteFile writes data at a root-relative path, creating parent
// directories. Writes always overwrite; a full write per file means no
// partial-content risk.
func (r *Root) WriteFile(rel string, data []byte) error {
	path := filepath.Join(r.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", rel, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to save file %s: %w", rel, err)
	}
	return nil
}

// WritePage writes a rendered document at the page path for url and
// returns that path.
func (r *Root) WritePage(url string, data []byte) (string, error) {
	path := r.PagePath(url)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create page directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save page: %w", err)
	}
	return path, nil
}

// Clean removes previously generated content from the root: the known
// root-level artifacts, the og/ directory, and every child directory that
// contains a rendered index.html somewhere beneath it. Anything else
// (CNAME, hand-written assets) is left alone.
func (r *Root) Clean() error {
	entries, err := os.ReadDir(r.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read output root: %w", err)
	}

	for _, name := range generatedNames {
		path := filepath.Join(r.Dir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(r.Dir, e.Name())
		if e.Name() == "og" || containsIndexHTML(dir) {
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("failed to remove %s: %w", e.Name(), err)
			}
		}
	}
	return nil
}

// ReplaceMarkdown deletes markdown files that compete with generated
// pages: for every <dir>/index.html it removes <dir>/index.md and the
// sibling <dir>.md next to the directory. Returns how many were removed.
func (r *Root) ReplaceMarkdown() (int, error) {
	removed := 0
	err := filepath.WalkDir(r.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "index.html" {
			return nil
		}
		dir := filepath.Dir(path)
		for _, md := range []string{
			filepath.Join(dir, "index.md"),
			dir + ".md",
		} {
			if rmErr := os.Remove(md); rmErr == nil {
				removed++
			} else if !os.IsNotExist(rmErr) {
				return fmt.Errorf("failed to remove %s: %w", md, rmErr)
			}
		}
		return nil
	})
	if err != nil {
		return removed, err
	}
	return removed, nil
}

func containsIndexHTML(dir string) bool {
	found := false
	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == "index.html" {
			found = true
			return filepath.SkipAll
		}
		return nil
	})
	return found
}
