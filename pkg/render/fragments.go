package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/links"
)

// Placeholder copy shown when a source column is empty. Pages go live
// before every field is filled in, so empty blocks degrade to a stub
// instead of a hole in the layout.
const (
	PlaceholderListItem = "Скоро дополним."
	PlaceholderFAQ      = "Вопросы появятся позже."
	PlaceholderRelated  = "Скоро добавим больше страниц."
)

// BulletList renders feature bullets as <li> rows with an accent dot.
func BulletList(items []string) template.HTML {
	if len(items) == 0 {
		return template.HTML(`<li class="text-zinc-400">` + PlaceholderListItem + `</li>`)
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b,
			`<li class="flex gap-3"><span class="w-2 h-2 mt-2 rounded-full bg-accent-500"></span><span class="text-zinc-300">%s</span></li>`,
			template.HTMLEscapeString(item))
	}
	return template.HTML(b.String())
}

// TagChips renders topic tags as small chips. Empty input renders nothing;
// the template hides the whole row.
func TagChips(tags []string) template.HTML {
	var b strings.Builder
	for i, tag := range tags {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b,
			`<span class="px-3 py-1 rounded-lg bg-white/5 text-zinc-300 text-xs">%s</span>`,
			template.HTMLEscapeString(tag))
	}
	return template.HTML(b.String())
}

// ExampleList renders conversation openers as <code> rows. Empty input
// renders nothing.
func ExampleList(examples []string) template.HTML {
	var b strings.Builder
	for i, ex := range examples {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b,
			`<li class="glass rounded-lg px-3 py-2"><code class="text-sm">%s</code></li>`,
			template.HTMLEscapeString(ex))
	}
	return template.HTML(b.String())
}

// TipList renders the do/avoid advice columns.
func TipList(items []string) template.HTML {
	if len(items) == 0 {
		return template.HTML(`<li class="text-zinc-400">` + PlaceholderListItem + `</li>`)
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b,
			`<li class="flex gap-2"><span class="mt-2 w-2 h-2 bg-gold-400 rounded-full"></span><span class="text-zinc-300">%s</span></li>`,
			template.HTMLEscapeString(item))
	}
	return template.HTML(b.String())
}

// FAQBlocks renders question/answer pairs as <details> disclosures.
func FAQBlocks(faq []models.QA) template.HTML {
	if len(faq) == 0 {
		return template.HTML(`<p class="text-zinc-400">` + PlaceholderFAQ + `</p>`)
	}
	var b strings.Builder
	for i, qa := range faq {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b,
			`<details class="glass rounded-xl p-4"><summary class="cursor-pointer font-medium text-white">%s</summary><p class="mt-2 text-zinc-300">%s</p></details>`,
			template.HTMLEscapeString(qa.Question),
			template.HTMLEscapeString(qa.Answer))
	}
	return template.HTML(b.String())
}

// RelatedCards renders resolved internal links as click cards.
func RelatedCards(resolved []links.ResolvedLink) template.HTML {
	if len(resolved) == 0 {
		return template.HTML(`<p class="text-zinc-400">` + PlaceholderRelated + `</p>`)
	}
	var b strings.Builder
	for i, link := range resolved {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b,
			`<a href="%s" class="glass rounded-xl p-4 hover:bg-white/10 transition"><div class="text-white font-medium">%s</div><div class="text-xs text-zinc-400 mt-1">Открыть →</div></a>`,
			template.HTMLEscapeString(link.Href),
			template.HTMLEscapeString(link.Anchor))
	}
	return template.HTML(b.String())
}
