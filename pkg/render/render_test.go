package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorod-legends/lunapages/models"
)

func testConfig() models.SiteConfig {
	return models.SiteConfig{
		Base:     "https://example.com",
		BotURL:   "https://t.me/testbot",
		CTAText:  "Открыть в Telegram",
		CTAHref:  "/go/telegram",
		Brand:    "Luna Chat",
		SiteDesc: "Уютное общение 24/7",
	}
}

func testRenderer(t *testing.T, cfg models.SiteConfig) *Renderer {
	t.Helper()
	tpl, err := LoadTemplate("")
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	r := NewRenderer(cfg, tpl, nil)
	r.Now = func() time.Time {
		return time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	}
	return r
}

func TestPageFallbackChains(t *testing.T) {
	r := testRenderer(t, testConfig())
	data, err := r.Page(models.PageRecord{
		URL:   "/chat/podderzhka/",
		Slug:  "podderzhka",
		Title: "Чат поддержки",
	})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	if data.Description != "Чат поддержки" {
		t.Errorf("Description = %q, want title fallback", data.Description)
	}
	if data.OGTitle != "Чат поддержки" || data.OGDescription != "Чат поддержки" {
		t.Errorf("OG pair = %q / %q, want title fallback", data.OGTitle, data.OGDescription)
	}
	if want := "https://example.com/chat/podderzhka/"; data.Canonical != want {
		t.Errorf("Canonical = %q, want %q", data.Canonical, want)
	}
	if data.Robots != "index,follow" {
		t.Errorf("Robots = %q, want index,follow", data.Robots)
	}
	if data.Lang != "ru" {
		t.Errorf("Lang = %q, want ru", data.Lang)
	}
	if data.H1 != "Чат поддержки" {
		t.Errorf("H1 = %q, want title fallback", data.H1)
	}
	if data.CTAText != "Открыть в Telegram" || data.CTAHref != "/go/telegram" {
		t.Errorf("CTA = %q / %q, want site defaults", data.CTAText, data.CTAHref)
	}
	if want := "https://example.com/og/podderzhka.png"; data.OGImage != want {
		t.Errorf("OGImage = %q, want %q", data.OGImage, want)
	}
	if data.BuildTS != "2025-03-14T10:30:00Z" {
		t.Errorf("BuildTS = %q", data.BuildTS)
	}
}

func TestPageIntroBeatsTitleForDescription(t *testing.T) {
	r := testRenderer(t, testConfig())
	data, err := r.Page(models.PageRecord{
		URL:   "/chat/x/",
		Slug:  "x",
		Title: "Заголовок",
		Intro: "Вводный абзац.",
	})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if data.Description != "Вводный абзац." {
		t.Errorf("Description = %q, want intro fallback", data.Description)
	}
}

func TestPageExplicitValuesPassThrough(t *testing.T) {
	r := testRenderer(t, testConfig())
	data, err := r.Page(models.PageRecord{
		URL:           "/chat/vecher/",
		Slug:          "vecher",
		Title:         "Вечерний чат",
		H1:            "Вечерние разговоры",
		Keyword:       "вечерний чат",
		Description:   "Описание страницы.",
		Intro:         "Интро.",
		OGTitle:       "OG заголовок",
		OGDescription: "OG описание",
		CTA:           "Начать",
		CTAHref:       "/start",
		Tags:          []string{"вечер", "разговоры"},
		Canonical:     "https://example.com/custom/",
		Noindex:       true,
		Lang:          "en",
	})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	if data.Robots != "noindex,nofollow" {
		t.Errorf("Robots = %q, want noindex,nofollow", data.Robots)
	}
	if data.Canonical != "https://example.com/custom/" {
		t.Errorf("Canonical = %q, want explicit value kept", data.Canonical)
	}
	if want := "вечерний чат, вечер, разговоры"; data.Keywords != want {
		t.Errorf("Keywords = %q, want %q", data.Keywords, want)
	}
	if data.OGTitle != "OG заголовок" || data.OGDescription != "OG описание" {
		t.Errorf("OG pair = %q / %q", data.OGTitle, data.OGDescription)
	}
	if data.CTAText != "Начать" || data.CTAHref != "/start" {
		t.Errorf("CTA = %q / %q, want row values", data.CTAText, data.CTAHref)
	}
	if data.H1 != "Вечерние разговоры" {
		t.Errorf("H1 = %q", data.H1)
	}
	if data.Lang != "en" {
		t.Errorf("Lang = %q, want en", data.Lang)
	}
}

func TestJSONLDBundleShape(t *testing.T) {
	r := testRenderer(t, testConfig())
	data, err := r.Page(models.PageRecord{
		URL:   "/chat/faq-page/",
		Slug:  "faq-page",
		Title: "Страница с вопросами",
		FAQ: []models.QA{
			{Question: "Первый вопрос?", Answer: "Первый ответ."},
			{Question: "Второй вопрос?", Answer: "Второй ответ."},
		},
	})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}

	var blocks []map[string]any
	if err := json.Unmarshal([]byte(data.JSONLD), &blocks); err != nil {
		t.Fatalf("JSONLD is not valid JSON: %v\n%s", err, data.JSONLD)
	}
	if len(blocks) != 3 {
		t.Fatalf("bundle has %d blocks, want 3", len(blocks))
	}
	wantTypes := []string{"Article", "BreadcrumbList", "FAQPage"}
	for i, want := range wantTypes {
		if got := blocks[i]["@type"]; got != want {
			t.Errorf("block %d @type = %v, want %q", i, got, want)
		}
	}

	crumbs, ok := blocks[1]["itemListElement"].([]any)
	if !ok || len(crumbs) != 3 {
		t.Fatalf("breadcrumb trail = %v, want 3 items", blocks[1]["itemListElement"])
	}
	first := crumbs[0].(map[string]any)
	if first["name"] != "Главная" || first["item"] != "https://example.com/" {
		t.Errorf("first crumb = %v", first)
	}
	second := crumbs[1].(map[string]any)
	if second["name"] != "Чат" || second["item"] != "https://example.com/chat/" {
		t.Errorf("second crumb = %v", second)
	}
	last := crumbs[2].(map[string]any)
	if last["name"] != "Страница с вопросами" {
		t.Errorf("last crumb = %v", last)
	}

	faq := blocks[2]["mainEntity"].([]any)
	if len(faq) != 2 {
		t.Fatalf("mainEntity has %d questions, want 2", len(faq))
	}
	q0 := faq[0].(map[string]any)
	if q0["name"] != "Первый вопрос?" {
		t.Errorf("question order changed: %v", q0["name"])
	}
}

func TestJSONLDEmptyFAQKeepsEmptyList(t *testing.T) {
	r := testRenderer(t, testConfig())
	data, err := r.Page(models.PageRecord{URL: "/chat/x/", Slug: "x", Title: "X"})
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if !strings.Contains(string(data.JSONLD), `"mainEntity":[]`) {
		t.Errorf("empty FAQ should marshal as an empty list, got %s", data.JSONLD)
	}
}

func TestRenderDocument(t *testing.T) {
	r := testRenderer(t, testConfig())
	out, err := r.Render(models.PageRecord{
		URL:         "/chat/nochnoi/",
		Slug:        "nochnoi",
		Title:       "Ночной чат",
		Description: "Собеседник, который не спит.",
		Intro:       "Когда не спится, есть с кем поговорить.",
		Bullets:     []string{"Отвечает мгновенно", "Помнит контекст"},
		Tags:        []string{"ночь"},
		FAQ:         []models.QA{{Question: "Это анонимно?", Answer: "Да."}},
		Sections: []models.Section{
			{Title: "Почему ночью проще", Text: "Тишина располагает к разговору."},
		},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := string(out)

	for _, want := range []string{
		`<html lang="ru">`,
		`<title>Ночной чат</title>`,
		`<meta name="description" content="Собеседник, который не спит.">`,
		`<meta name="robots" content="index,follow">`,
		`<link rel="canonical" href="https://example.com/chat/nochnoi/">`,
		`<meta property="og:image" content="https://example.com/og/nochnoi.png">`,
		`"@type":"Article"`,
		`"@type":"BreadcrumbList"`,
		`"@type":"FAQPage"`,
		"Отвечает мгновенно",
		"Это анонимно?",
		"Почему ночью проще",
		"Тишина располагает к разговору.",
		"Обновлено: 2025-03-14T10:30:00Z",
		"© 2025 Luna Chat",
		`href="https://t.me/testbot"`,
		"Открыть в Telegram",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	if strings.Contains(doc, "mc.yandex.ru") {
		t.Errorf("metrika snippet rendered without an id")
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := testRenderer(t, testConfig())
	rec := models.PageRecord{
		URL:   "/chat/povtor/",
		Slug:  "povtor",
		Title: "Повтор",
		Tags:  []string{"ночь", "аноним"},
		FAQ:   []models.QA{{Question: "Q?", Answer: "A."}},
	}

	first, err := r.Render(rec)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	second, err := r.Render(rec)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("two renders of the same record differ")
	}
}

func TestRenderEscapesUserText(t *testing.T) {
	r := testRenderer(t, testConfig())
	out, err := r.Render(models.PageRecord{
		URL:   "/chat/x/",
		Slug:  "x",
		Title: `Чат <script>alert(1)</script> & "кавычки"`,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := string(out)

	if strings.Contains(doc, "Чат <script>") {
		t.Errorf("raw markup from the title leaked into the document")
	}
	if !strings.Contains(doc, "Чат &lt;script&gt;") {
		t.Errorf("title was not HTML-escaped")
	}
}

func TestRenderNoindex(t *testing.T) {
	r := testRenderer(t, testConfig())
	out, err := r.Render(models.PageRecord{URL: "/chat/x/", Slug: "x", Title: "X", Noindex: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), `<meta name="robots" content="noindex,nofollow">`) {
		t.Errorf("noindex record did not produce a noindex robots meta")
	}
}

func TestRenderPlaceholders(t *testing.T) {
	r := testRenderer(t, testConfig())
	out, err := r.Render(models.PageRecord{URL: "/chat/pustoi/", Slug: "pustoi", Title: "Пустая строка"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := string(out)

	for _, want := range []string{PlaceholderListItem, PlaceholderFAQ, PlaceholderRelated} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing placeholder %q", want)
		}
	}
}

func TestRenderMetrika(t *testing.T) {
	cfg := testConfig()
	cfg.MetrikaID = "12345678"
	r := testRenderer(t, cfg)
	out, err := r.Render(models.PageRecord{URL: "/chat/x/", Slug: "x", Title: "X"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc := string(out)

	if !strings.Contains(doc, "mc.yandex.ru/metrika/tag.js") {
		t.Errorf("metrika loader missing")
	}
	if !strings.Contains(doc, "mc.yandex.ru/watch/12345678") {
		t.Errorf("metrika noscript pixel missing")
	}
}

func TestLoadTemplateExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.html")
	if err := os.WriteFile(path, []byte("<h1>{{.H1}}</h1>"), 0644); err != nil {
		t.Fatal(err)
	}

	tpl, err := LoadTemplate(path)
	if err != nil {
		t.Fatalf("LoadTemplate(%s): %v", path, err)
	}
	r := NewRenderer(testConfig(), tpl, nil)
	out, err := r.Render(models.PageRecord{URL: "/chat/x/", Slug: "x", Title: "Свой шаблон"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := string(out); got != "<h1>Свой шаблон</h1>" {
		t.Errorf("custom template output = %q", got)
	}
}

func TestLoadTemplateMissingPath(t *testing.T) {
	if _, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.html")); err == nil {
		t.Fatal("expected an error for a missing template path")
	}
}
