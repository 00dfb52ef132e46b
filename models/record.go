package models

// QA is one FAQ entry. A pair only exists when both sides are non-empty;
// the loader enforces that.
type QA struct {
	Question string
	Answer   string
}

// Section is one generic H2 content block (title + body text).
type Section struct {
	Title string
	Text  string
}

// PageRecord is one row of the source table, normalized. Records are built
// once at load time and never mutated afterwards; regeneration always
// rebuilds the full set and overwrites prior output.
type PageRecord struct {
	URL  string // canonical path, always /segment/.../
	Slug string

	Title       string // non-empty after the title → og_title → h1 chain
	H1          string
	Keyword     string
	Description string
	Intro       string

	OGTitle       string
	OGDescription string

	CTA     string // button label; empty means use the site default
	CTAHref string

	Bullets   []string
	Tags      []string
	Examples  []string
	TipsDo    []string
	TipsAvoid []string

	Sections []Section
	FAQ      []QA
	Related  []LinkReference

	Noindex    bool
	Canonical  string
	Changefreq string
	Priority   string
	Hub        string

	// Lang is the detected content language ("ru" unless detection is
	// confident about something else).
	Lang string

	// Line is the 1-based CSV line the record came from, for diagnostics.
	Line int
}
