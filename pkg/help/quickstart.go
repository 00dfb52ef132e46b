package help

const QuickstartYAML = `# lunapages Quick Start

csv_columns:
  canonical: "url,title,keyword,slug,description,intro,cta,bullets,tags,examples,tips_do,tips_avoid,h2a_title,h2a_text,h2b_title,h2b_text,h2c_title,h2c_text,faq1_q,faq1_a,faq2_q,faq2_a,faq3_q,faq3_a,internal_links"
  list_separator: "items inside bullets/tags/examples/tips_do/tips_avoid split on | (or newlines)"
  internal_links: 'each item is "/chat/slug/" or "Анкор::/chat/slug/"'
  lenient_extras: "h1, og_title, og_description, cta_href, h2d_*, faq4..faq10, related, noindex, canonical, changefreq, priority, hub"

commands:
  generate_default: |
    lunapages --csv data/pages.csv

  generate_custom_template: |
    lunapages generate --csv data/pages.csv --template templates/page.html --out docs

  clean_rebuild: |
    lunapages generate --csv data/pages.csv --clean --replace-md

  feeds_from_csv: |
    lunapages feeds --csv data/pages.csv --out docs --robots

  feeds_from_built_site: |
    # no --csv and no candidate file: walks docs/**/index.html instead
    lunapages feeds --out docs

  og_images: |
    lunapages og --csv data/pages.csv --out docs --font assets/Inter-Bold.ttf

csv_discovery:
  - "data/pages.csv"
  - "content/pages.csv"
  - "pages.csv"
  - "content.csv"
  - "data.csv"

env:
  SITE_BASE: "site origin for absolute URLs (default https://gorod-legends.ru)"
  BOT_URL: "Telegram deep link used by the CTA buttons"
  CTA_TEXT: "CTA button label (default Открыть в Telegram)"
  CTA_HREF: "CTA link target (default /go/telegram)"
  BRAND_NAME: "brand shown in header, footer and OG cards (default Luna Chat)"
  SITE_TITLE: "RSS channel title"
  SITE_DESCRIPTION: "RSS channel description and OG footer tail"
  METRIKA_ID: "enables the Yandex Metrika snippet when set"
  WRITE_SITEMAP: "truthy value makes generate also write sitemap.xml"
  aliases: "SITE_ORIGIN -> SITE_BASE, SITE_NAME -> BRAND_NAME"

outputs:
  - "docs/<url>/index.html (one per CSV row, always overwritten)"
  - "docs/sitemap.xml + docs/rss.xml (feeds command, or WRITE_SITEMAP)"
  - "docs/robots.txt (feeds --robots)"
  - "docs/og/<slug>.png (og command, 1200x630)"
  - "docs/pages.yaml (page manifest for link anchors)"
  - "docs/.buildlog.db (content hashes for sitemap lastmod)"

row_rules:
  - "url empty but slug present: url becomes /chat/<slug>/"
  - "title empty: falls back to og_title, then h1; row skipped if all empty"
  - "faqN_q/faqN_a pairs only count when both sides are non-empty"
  - "duplicate urls: the later row wins"
  - "noindex truthy values: 1, true, yes, y, да, on"

exit_codes:
  0: "success, including 'no data found'"
  1: "usage errors and malformed CSV header (strict mode)"
  2: "fatal config: missing explicit template, unusable output root"
`
