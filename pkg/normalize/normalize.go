// Package normalize holds the pure string transforms the pipeline applies
// to raw spreadsheet fields: URL slash normalization, slug derivation,
// list splitting and truthy parsing. Everything here is stateless.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// truthyTokens is the set of accepted "yes" spellings. The data is
// bilingual, so "да" counts.
var truthyTokens = map[string]bool{
	"1":    true,
	"true": true,
	"yes":  true,
	"y":    true,
	"да":   true,
	"on":   true,
}

// URL normalizes a site-relative path to exactly one leading and one
// trailing slash, collapsing duplicate slashes. Idempotent.
func URL(u string) string {
	segs := strings.FieldsFunc(strings.TrimSpace(u), func(r rune) bool { return r == '/' })
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/") + "/"
}

// stripMarks removes combining marks after NFD decomposition, so "é"
// becomes "e" before the slug charset filter runs.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// cyrillicLatin is a plain ru→latin transliteration table. "ё" is folded
// to "е" before this table applies.
var cyrillicLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "i", 'к': "k", 'л': "l",
	'м': "m", 'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s",
	'т': "t", 'у': "u", 'ф': "f", 'х': "h", 'ц': "ts", 'ч': "ch",
	'ш': "sh", 'щ': "shch", 'ъ': "", 'ы': "y", 'ь': "", 'э': "e",
	'ю': "yu", 'я': "ya",
}

// Slug derives a URL-safe identifier from a path or title: the last
// non-empty path segment, lower-cased, transliterated, with disallowed
// character runs collapsed to single hyphens. Never returns an empty
// string; unusable input falls back to "page".
func Slug(s string) string {
	seg := lastSegment(s)
	seg = strings.ToLower(strings.TrimSpace(seg))
	seg = strings.ReplaceAll(seg, "ё", "е")

	if folded, _, err := transform.String(stripMarks, seg); err == nil {
		seg = folded
	}

	var b strings.Builder
	lastDash := false
	for _, r := range seg {
		var out string
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			out = string(r)
		default:
			if trans, ok := cyrillicLatin[r]; ok {
				out = trans // "ъ" and "ь" map to nothing
			} else {
				out = "-"
			}
		}
		if out == "" {
			continue
		}
		if out == "-" {
			if lastDash {
				continue
			}
			lastDash = true
		} else {
			lastDash = false
		}
		b.WriteString(out)
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "page"
	}
	return slug
}

// lastSegment returns the last non-empty /-separated part of s, or s
// itself when there are no slashes.
func lastSegment(s string) string {
	parts := strings.Split(s, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if p := strings.TrimSpace(parts[i]); p != "" {
			return p
		}
	}
	return ""
}

// SplitList splits a list-valued cell on "|", or on newlines when no pipe
// is present. Tokens are trimmed; empties are dropped.
func SplitList(s string) []string {
	sep := "|"
	if !strings.Contains(s, "|") {
		sep = "\n"
	}
	var items []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// SplitLinks splits a related-links cell into reference tokens. Single
// pipes and newlines separate tokens; a double pipe is the legacy
// "url||label" form and stays inside its token. Tokens are trimmed;
// empties are dropped.
func SplitLinks(s string) []string {
	var items []string
	var b strings.Builder
	flush := func() {
		if p := strings.TrimSpace(b.String()); p != "" {
			items = append(items, p)
		}
		b.Reset()
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '|' && i+1 < len(s) && s[i+1] == '|' {
			b.WriteString("||")
			i++
			continue
		}
		if c == '|' || c == '\n' {
			flush()
			continue
		}
		b.WriteByte(c)
	}
	flush()
	return items
}

// Truthy reports whether a cell spells "yes".
func Truthy(s string) bool {
	return truthyTokens[strings.ToLower(strings.TrimSpace(s))]
}

// PrettySlug turns a slug back into display text: separators become
// spaces, the first letter is upper-cased. Last resort for anchor text.
func PrettySlug(slug string) string {
	text := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	runes := []rune(text)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
