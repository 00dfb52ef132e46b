package render

import (
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/gorod-legends/lunapages/models"
)

const schemaContext = "https://schema.org"

type organization struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type articleSchema struct {
	Context          string       `json:"@context"`
	Type             string       `json:"@type"`
	Headline         string       `json:"headline"`
	Description      string       `json:"description"`
	InLanguage       string       `json:"inLanguage"`
	MainEntityOfPage string       `json:"mainEntityOfPage"`
	Author           organization `json:"author"`
	Publisher        organization `json:"publisher"`
	DatePublished    string       `json:"datePublished"`
	DateModified     string       `json:"dateModified"`
	Keywords         string       `json:"keywords"`
}

type breadcrumbItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type breadcrumbSchema struct {
	Context         string           `json:"@context"`
	Type            string           `json:"@type"`
	ItemListElement []breadcrumbItem `json:"itemListElement"`
}

type faqAnswer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

type faqQuestion struct {
	Type           string    `json:"@type"`
	Name           string    `json:"name"`
	AcceptedAnswer faqAnswer `json:"acceptedAnswer"`
}

type faqSchema struct {
	Context    string        `json:"@context"`
	Type       string        `json:"@type"`
	MainEntity []faqQuestion `json:"mainEntity"`
}

// jsonldBundle assembles the Article, BreadcrumbList and FAQPage blocks for
// one page into a single JSON array, in that order. The breadcrumb trail is
// always root → /chat/ hub → page.
func (r *Renderer) jsonldBundle(rec models.PageRecord, description, lang, canonical, keywords, buildTS string) (template.JS, error) {
	origin := r.Config.Origin()
	org := organization{Type: "Organization", Name: r.Config.Brand}

	article := articleSchema{
		Context:          schemaContext,
		Type:             "Article",
		Headline:         rec.Title,
		Description:      description,
		InLanguage:       lang,
		MainEntityOfPage: canonical,
		Author:           org,
		Publisher:        org,
		DatePublished:    buildTS,
		DateModified:     buildTS,
		Keywords:         keywords,
	}

	crumbs := breadcrumbSchema{
		Context: schemaContext,
		Type:    "BreadcrumbList",
		ItemListElement: []breadcrumbItem{
			{Type: "ListItem", Position: 1, Name: "Главная", Item: origin + "/"},
			{Type: "ListItem", Position: 2, Name: "Чат", Item: origin + "/chat/"},
			{Type: "ListItem", Position: 3, Name: rec.Title, Item: canonical},
		},
	}

	faq := faqSchema{Context: schemaContext, Type: "FAQPage", MainEntity: []faqQuestion{}}
	for _, qa := range rec.FAQ {
		faq.MainEntity = append(faq.MainEntity, faqQuestion{
			Type:           "Question",
			Name:           qa.Question,
			AcceptedAnswer: faqAnswer{Type: "Answer", Text: qa.Answer},
		})
	}

	raw, err := json.Marshal([]any{article, crumbs, faq})
	if err != nil {
		return "", fmt.Errorf("failed to marshal json-ld for %s: %w", rec.URL, err)
	}
	return template.JS(raw), nil
}
