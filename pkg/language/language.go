// Package language detects the content language of a page record so the
// rendered shell can carry the right lang attribute and the RSS channel
// the right language code.
package language

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// DefaultLang is what everything falls back to; the site's content is
// Russian unless detection is confident otherwise.
const DefaultLang = "ru"

// minConfidence is the floor below which detection results are ignored.
const minConfidence = 0.65

// Detector wraps a lingua detector restricted to the two languages the
// site actually publishes in. Building the underlying models is not free,
// so construct one Detector per run and share it.
type Detector struct {
	detector lingua.LanguageDetector
}

func NewDetector() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Russian, lingua.English).
			Build(),
	}
}

// Detect returns the ISO 639-1 code of text's language, or DefaultLang
// when the input is empty or the detector is unsure.
func (d *Detector) Detect(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultLang
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return DefaultLang
	}
	if d.detector.ComputeLanguageConfidence(text, lang) < minConfidence {
		return DefaultLang
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}

// Dominant returns the most common code in langs, defaulting to
// DefaultLang on an empty input. Used for the feed channel language.
func Dominant(langs []string) string {
	if len(langs) == 0 {
		return DefaultLang
	}
	counts := make(map[string]int, 2)
	for _, l := range langs {
		if l == "" {
			continue
		}
		counts[l]++
	}
	best, bestN := DefaultLang, 0
	for l, n := range counts {
		if n > bestN {
			best, bestN = l, n
		}
	}
	return best
}
