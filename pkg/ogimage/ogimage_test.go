package ogimage

import (
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/basicfont"

	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/output"
)

func testWriter(t *testing.T) *Writer {
	t.Helper()
	root, err := output.NewRoot(t.TempDir())
	if err != nil {
		t.Fatalf("NewRoot: %v", err)
	}
	cfg := models.SiteConfig{Brand: "Luna Chat", SiteDesc: "Уютное общение 24/7"}
	return NewWriter(cfg, root, "")
}

func TestWriteCreatesCard(t *testing.T) {
	w := testWriter(t)
	path, err := w.Write(models.PageRecord{
		URL:   "/chat/nochnoi/",
		Slug:  "nochnoi",
		Title: "Ночной чат с виртуальным собеседником",
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasSuffix(path, "og/nochnoi.png") {
		t.Errorf("path = %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 1200 || b.Dy() != 630 {
		t.Errorf("dimensions = %dx%d, want 1200x630", b.Dx(), b.Dy())
	}

	r, g, bl, _ := img.At(0, 0).RGBA()
	if r>>8 != 14 || g>>8 != 14 || bl>>8 != 18 {
		t.Errorf("corner pixel = %d,%d,%d, want background 14,14,18", r>>8, g>>8, bl>>8)
	}
}

func TestWriteDerivesSlugFromURL(t *testing.T) {
	w := testWriter(t)
	path, err := w.Write(models.PageRecord{
		URL:   "/chat/bez-sluga/",
		Title: "Без слага",
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasSuffix(path, "og/bez-sluga.png") {
		t.Errorf("path = %q, want slug derived from the URL", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stat: %v", err)
	}
}

func TestWriteOverwrites(t *testing.T) {
	w := testWriter(t)
	rec := models.PageRecord{URL: "/chat/x/", Slug: "x", Title: "Первый заголовок"}
	if _, err := w.Write(rec); err != nil {
		t.Fatal(err)
	}
	rec.Title = "Второй заголовок"
	if _, err := w.Write(rec); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
}

// Face7x13 advances every glyph 7px, which makes wrapping arithmetic exact.
func TestWrapTitle(t *testing.T) {
	face := basicfont.Face7x13

	t.Run("short stays on one line", func(t *testing.T) {
		got := wrapTitle(face, "aaaa", 700, 4)
		if diff := cmp.Diff([]string{"aaaa"}, got); diff != "" {
			t.Errorf("wrapTitle mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("empty yields nothing", func(t *testing.T) {
		if got := wrapTitle(face, "   ", 700, 4); got != nil {
			t.Errorf("wrapTitle = %v, want nil", got)
		}
	})

	t.Run("wraps at measured width", func(t *testing.T) {
		// 70px fits ten 7px glyphs per line.
		got := wrapTitle(face, "aaaa bbbb cccc dddd", 70, 4)
		want := []string{"aaaa bbbb", "cccc dddd"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("wrapTitle mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("overflow gains ellipsis on the last line", func(t *testing.T) {
		got := wrapTitle(face, "aaaa bbbb cccc dddd eeee ffff gggg", 70, 2)
		if len(got) != 2 {
			t.Fatalf("got %d lines, want 2: %v", len(got), got)
		}
		if !strings.HasSuffix(got[1], "…") {
			t.Errorf("last line %q should end with an ellipsis", got[1])
		}
		if got[0] != "aaaa bbbb" {
			t.Errorf("first line = %q", got[0])
		}
	})

	t.Run("never exceeds max lines", func(t *testing.T) {
		long := strings.Repeat("слово ", 40)
		got := wrapTitle(face, long, 70, 4)
		if len(got) > 4 {
			t.Errorf("got %d lines, want at most 4", len(got))
		}
	})
}
