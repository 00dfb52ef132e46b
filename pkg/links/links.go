// Package links resolves related-link references into display-ready
// (href, anchor) pairs. Anchor text falls through an ordered chain:
// explicit label, batch title index, sidecar manifest, scrape of a
// previously rendered file, then slug-derived title. The last step always
// produces something, so resolution never fails.
package links

import (
	"strings"

	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/manifest"
	"github.com/gorod-legends/lunapages/pkg/normalize"
	"github.com/gorod-legends/lunapages/pkg/output"
)

// Resolver carries the lookup sources for one generate run. Index and
// Manifest may be nil; Root enables the rendered-file scrape step when
// set.
type Resolver struct {
	Config   models.SiteConfig
	Index    map[string]string // normalized URL -> title for the current batch
	Manifest *manifest.Manifest
	Root     *output.Root
}

// ResolvedLink is one related card ready for the template.
type ResolvedLink struct {
	Href   string
	Anchor string
}

// BuildIndex maps normalized URLs to titles for the current batch. On
// duplicate URLs the later record wins, matching the loader's
// last-row-wins rule.
func BuildIndex(records []models.PageRecord) map[string]string {
	index := make(map[string]string, len(records))
	for _, rec := range records {
		index[rec.URL] = rec.Title
	}
	return index
}

// Resolve turns one reference into an absolute href and anchor text.
func (r *Resolver) Resolve(ref models.LinkReference) ResolvedLink {
	target := strings.TrimSpace(ref.Target)

	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		anchor := ref.Anchor
		if anchor == "" {
			anchor = normalize.PrettySlug(normalize.Slug(target))
		}
		return ResolvedLink{Href: target, Anchor: anchor}
	}

	url := normalize.URL(target)
	return ResolvedLink{
		Href:   r.Config.AbsoluteURL(url),
		Anchor: r.anchorFor(url, ref.Anchor),
	}
}

// ResolveAll resolves a record's whole related list.
func (r *Resolver) ResolveAll(refs []models.LinkReference) []ResolvedLink {
	if len(refs) == 0 {
		return nil
	}
	resolved := make([]ResolvedLink, 0, len(refs))
	for _, ref := range refs {
		resolved = append(resolved, r.Resolve(ref))
	}
	return resolved
}

// anchorFor walks the fallback chain for a normalized site-relative URL.
func (r *Resolver) anchorFor(url, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if title, ok := r.Index[url]; ok && title != "" {
		return title
	}
	if r.Manifest != nil {
		if title, ok := r.Manifest.Title(url); ok {
			return title
		}
	}
	if r.Root != nil {
		if title, ok := ScrapeTitle(r.Root.PagePath(url)); ok {
			return title
		}
	}
	return normalize.PrettySlug(normalize.Slug(url))
}
