// Package render turns normalized page records into complete HTML
// documents: fragment builders for the list-like columns, a JSON-LD
// bundle per page and a html/template shell around them.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/links"
)

// buildTimeLayout matches the second-resolution UTC stamp written into the
// footer and the Article JSON-LD.
const buildTimeLayout = "2006-01-02T15:04:05Z"

// Renderer renders one page record at a time. It is safe to share across
// records within a run; nothing on it mutates.
type Renderer struct {
	Config   models.SiteConfig
	Template *template.Template
	Links    *links.Resolver

	// Now supplies the build timestamp. Tests pin it; nil means wall clock.
	Now func() time.Time
}

// PageData is the context handed to the page template. Fragment fields are
// pre-escaped HTML; scalar fields are escaped by the template engine.
type PageData struct {
	Lang          string
	Title         string
	Description   string
	Keywords      string
	Robots        string
	Canonical     string
	OGTitle       string
	OGDescription string
	OGImage       string
	BuildTS       string
	Year          int

	Brand     string
	SiteDesc  string
	BotURL    string
	CTAText   string
	CTAHref   string
	MetrikaID string

	H1        string
	Intro     string
	Bullets   template.HTML
	Tags      template.HTML
	Examples  template.HTML
	TipsDo    template.HTML
	TipsAvoid template.HTML
	Sections  []models.Section
	FAQ       template.HTML
	Related   template.HTML
	JSONLD    template.JS
}

func NewRenderer(cfg models.SiteConfig, tpl *template.Template, res *links.Resolver) *Renderer {
	return &Renderer{Config: cfg, Template: tpl, Links: res}
}

func (r *Renderer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Page assembles the template context for a record, applying the metadata
// fallback chains: description falls back to intro then title, the OG pair
// falls back to the plain pair, canonical defaults to the site origin plus
// the page path.
func (r *Renderer) Page(rec models.PageRecord) (PageData, error) {
	buildTS := r.now().UTC().Format(buildTimeLayout)

	description := firstNonEmpty(rec.Description, rec.Intro, rec.Title)
	ogTitle := firstNonEmpty(rec.OGTitle, rec.Title)
	ogDescription := firstNonEmpty(rec.OGDescription, description)

	canonical := rec.Canonical
	if canonical == "" {
		canonical = r.Config.AbsoluteURL(rec.URL)
	}

	robots := "index,follow"
	if rec.Noindex {
		robots = "noindex,nofollow"
	}

	keywords := joinKeywords(rec.Keyword, rec.Tags)

	lang := rec.Lang
	if lang == "" {
		lang = "ru"
	}

	var related []links.ResolvedLink
	if r.Links != nil {
		related = r.Links.ResolveAll(rec.Related)
	}

	jsonld, err := r.jsonldBundle(rec, description, lang, canonical, keywords, buildTS)
	if err != nil {
		return PageData{}, err
	}

	return PageData{
		Lang:          lang,
		Title:         rec.Title,
		Description:   description,
		Keywords:      keywords,
		Robots:        robots,
		Canonical:     canonical,
		OGTitle:       ogTitle,
		OGDescription: ogDescription,
		OGImage:       r.Config.AbsoluteURL("/og/" + rec.Slug + ".png"),
		BuildTS:       buildTS,
		Year:          r.now().UTC().Year(),

		Brand:     r.Config.Brand,
		SiteDesc:  r.Config.SiteDesc,
		BotURL:    r.Config.BotURL,
		CTAText:   firstNonEmpty(rec.CTA, r.Config.CTAText),
		CTAHref:   firstNonEmpty(rec.CTAHref, r.Config.CTAHref),
		MetrikaID: r.Config.MetrikaID,

		H1:        firstNonEmpty(rec.H1, rec.Title),
		Intro:     rec.Intro,
		Bullets:   BulletList(rec.Bullets),
		Tags:      TagChips(rec.Tags),
		Examples:  ExampleList(rec.Examples),
		TipsDo:    TipList(rec.TipsDo),
		TipsAvoid: TipList(rec.TipsAvoid),
		Sections:  rec.Sections,
		FAQ:       FAQBlocks(rec.FAQ),
		Related:   RelatedCards(related),
		JSONLD:    jsonld,
	}, nil
}

// Render executes the page template for a record and returns the document
// bytes.
func (r *Renderer) Render(rec models.PageRecord) ([]byte, error) {
	data, err := r.Page(rec)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.Template.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", rec.URL, err)
	}
	return buf.Bytes(), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// joinKeywords builds the keywords meta value from the primary keyword plus
// the tags, comma separated, skipping blanks.
func joinKeywords(keyword string, tags []string) string {
	parts := make([]string, 0, len(tags)+1)
	if s := strings.TrimSpace(keyword); s != "" {
		parts = append(parts, s)
	}
	for _, t := range tags {
		if s := strings.TrimSpace(t); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
