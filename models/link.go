package models

import "strings"

// LinkReference is one entry of a related-links field: a bare URL, a bare
// slug, or a pair with an explicit anchor. Target is kept raw here; URL
// normalization and anchor resolution happen at render time.
type LinkReference struct {
	Anchor string // explicit anchor text, may be empty
	Target string // URL, path or bare slug
}

// ParseLinkRef splits a raw related-links token. Two pair formats exist in
// the data: "Анкор::/chat/slug/" (anchor first) and the older
// "/chat/slug/||Анкор" (target first). The first separator found wins; a
// token without one is a bare target.
func ParseLinkRef(raw string) LinkReference {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "::"); i >= 0 {
		return LinkReference{
			Anchor: strings.TrimSpace(raw[:i]),
			Target: strings.TrimSpace(raw[i+2:]),
		}
	}
	if i := strings.Index(raw, "||"); i >= 0 {
		return LinkReference{
			Anchor: strings.TrimSpace(raw[i+2:]),
			Target: strings.TrimSpace(raw[:i]),
		}
	}
	return LinkReference{Target: raw}
}
