// Package manifest maintains pages.yaml, the sidecar index written next
// to the generated site. It maps every generated URL to its title so the
// link resolver can answer anchor lookups without re-parsing HTML, and it
// survives partial regenerations: entries for URLs missing from the
// current batch are preserved.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// FileName is the manifest's name inside the output root.
const FileName = "pages.yaml"

// Entry describes one generated page.
type Entry struct {
	URL         string `yaml:"url"`
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// Manifest is the pages.yaml document.
type Manifest struct {
	Pages []Entry `yaml:"pages"`

	index map[string]Entry
}

// Path returns the manifest location for an output root.
func Path(outDir string) string {
	return filepath.Join(outDir, FileName)
}

// Load reads a manifest. A missing file is an empty manifest, not an
// error; the caller decides whether a corrupt one is worth more than a
// warning.
func Load(path string) (*Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		m.reindex()
		return &m, nil
	}
	if err != nil {
		return &Manifest{index: map[string]Entry{}}, fmt.Errorf("failed to read manifest: %w", err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return &Manifest{index: map[string]Entry{}}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	m.reindex()
	return &m, nil
}

// Title looks up the recorded title for a normalized URL.
func (m *Manifest) Title(url string) (string, bool) {
	e, ok := m.index[url]
	if !ok || e.Title == "" {
		return "", false
	}
	return e.Title, true
}

// Update merges the current batch into the manifest at path and writes it
// back: batch entries win on collision, prior entries for absent URLs are
// kept, the result is sorted by URL for stable diffs.
func Update(path string, entries []Entry) error {
	existing, err := Load(path)
	if err != nil {
		// A corrupt manifest is rebuilt from the batch alone.
		existing = &Manifest{index: map[string]Entry{}}
	}

	merged := make(map[string]Entry, len(existing.Pages)+len(entries))
	for _, e := range existing.Pages {
		merged[e.URL] = e
	}
	for _, e := range entries {
		merged[e.URL] = e
	}

	out := Manifest{Pages: make([]Entry, 0, len(merged))}
	for _, e := range merged {
		out.Pages = append(out.Pages, e)
	}
	sort.Slice(out.Pages, func(i, j int) bool { return out.Pages[i].URL < out.Pages[j].URL })

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func (m *Manifest) reindex() {
	m.index = make(map[string]Entry, len(m.Pages))
	for _, e := range m.Pages {
		m.index[e.URL] = e
	}
}
