// Package ogimage renders the social preview card for each page: a dark
// 1200×630 PNG with the wrapped page title and a brand footer.
package ogimage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/normalize"
	"github.com/gorod-legends/lunapages/pkg/output"
)

const (
	imgWidth  = 1200
	imgHeight = 630

	titleSize  = 72
	footerSize = 32

	maxTitleLines = 4
	lineSpacing   = 6
	footerMargin  = 36
)

var (
	bgColor     = color.RGBA{14, 14, 18, 255}
	titleColor  = color.RGBA{245, 245, 245, 255}
	footerColor = color.RGBA{170, 170, 170, 255}
)

// fontCandidates are common system font locations tried in order when no
// explicit font path is given.
var fontCandidates = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Bold.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/noto/NotoSans-Bold.ttf",
	"/usr/share/fonts/truetype/noto/NotoSans-Regular.ttf",
	"/System/Library/Fonts/Supplemental/Arial Bold.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
}

// Writer renders one card per record into <out>/og/. Construct once per run;
// font faces are loaded up front and shared.
type Writer struct {
	Config models.SiteConfig
	Root   *output.Root

	titleFace  font.Face
	footerFace font.Face
}

// NewWriter prepares the font faces. fontPath may be empty. When neither it
// nor any system candidate loads, the built-in bitmap face takes over; font
// trouble never fails a run.
func NewWriter(cfg models.SiteConfig, root *output.Root, fontPath string) *Writer {
	return &Writer{
		Config:     cfg,
		Root:       root,
		titleFace:  loadFace(fontPath, titleSize),
		footerFace: loadFace(fontPath, footerSize),
	}
}

func loadFace(explicit string, size float64) font.Face {
	paths := fontCandidates
	if explicit != "" {
		paths = append([]string{explicit}, fontCandidates...)
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		ft, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		face, err := opentype.NewFace(ft, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			continue
		}
		return face
	}
	return basicfont.Face7x13
}

// Write renders the card for one record and returns the file path. An empty
// slug is derived from the URL; existing files are overwritten.
func (w *Writer) Write(rec models.PageRecord) (string, error) {
	slug := rec.Slug
	if slug == "" {
		slug = normalize.Slug(rec.URL)
	}
	title := rec.OGTitle
	if strings.TrimSpace(title) == "" {
		title = rec.Title
	}

	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bgColor}, image.Point{}, draw.Src)

	lines := wrapTitle(w.titleFace, title, int(float64(imgWidth)*0.86), maxTitleLines)
	drawTitle(img, w.titleFace, lines)
	drawFooter(img, w.footerFace, w.Config.Brand+" — "+w.Config.SiteDesc)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("failed to encode og image for %s: %w", slug, err)
	}
	rel := filepath.Join("og", slug+".png")
	if err := w.Root.WriteFile(rel, buf.Bytes()); err != nil {
		return "", err
	}
	return w.Root.Path(rel), nil
}

// wrapTitle breaks text into at most maxLines lines that fit maxWidth,
// measuring real glyph advances. When the text overflows, the last line is
// trimmed rune by rune until it fits with a trailing ellipsis.
func wrapTitle(face font.Face, text string, maxWidth, maxLines int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var cur []string
	for i, word := range words {
		probe := strings.Join(append(cur, word), " ")
		if font.MeasureString(face, probe).Ceil() <= maxWidth || len(cur) == 0 {
			cur = append(cur, word)
			continue
		}

		lines = append(lines, strings.Join(cur, " "))
		cur = []string{word}
		if len(lines) >= maxLines-1 {
			tail := strings.Join(append(cur, words[i+1:]...), " ")
			for font.MeasureString(face, tail+"…").Ceil() > maxWidth && len([]rune(tail)) > 3 {
				r := []rune(tail)
				tail = strings.TrimRight(string(r[:len(r)-1]), " ")
			}
			if tail == "" {
				return append(lines, "…")
			}
			return append(lines, tail+"…")
		}
	}
	if len(cur) > 0 && len(lines) < maxLines {
		lines = append(lines, strings.Join(cur, " "))
	}
	return lines
}

func drawTitle(img draw.Image, face font.Face, lines []string) {
	if len(lines) == 0 {
		return
	}
	m := face.Metrics()
	lineHeight := m.Height.Ceil() + lineSpacing
	total := lineHeight*len(lines) - lineSpacing

	y := (imgHeight-total)/2 + m.Ascent.Ceil() - 16
	for _, line := range lines {
		width := font.MeasureString(face, line).Ceil()
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(titleColor),
			Face: face,
			Dot:  fixed.P((imgWidth-width)/2, y),
		}
		d.DrawString(line)
		y += lineHeight
	}
}

func drawFooter(img draw.Image, face font.Face, text string) {
	width := font.MeasureString(face, text).Ceil()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(footerColor),
		Face: face,
		Dot:  fixed.P((imgWidth-width)/2, imgHeight-footerMargin),
	}
	d.DrawString(text)
}
