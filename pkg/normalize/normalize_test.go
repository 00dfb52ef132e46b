package normalize

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "already normalized", in: "/chat/hello/", want: "/chat/hello/"},
		{name: "missing leading slash", in: "chat/hello/", want: "/chat/hello/"},
		{name: "missing trailing slash", in: "/chat/hello", want: "/chat/hello/"},
		{name: "bare slug", in: "hello", want: "/hello/"},
		{name: "duplicate slashes collapse", in: "//chat///hello//", want: "/chat/hello/"},
		{name: "surrounding whitespace", in: "  /chat/a/  ", want: "/chat/a/"},
		{name: "empty becomes root", in: "", want: "/"},
		{name: "only slashes becomes root", in: "///", want: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := URL(tt.in)
			if got != tt.want {
				t.Errorf("URL(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := URL(got); again != got {
				t.Errorf("URL is not idempotent: URL(%q) = %q", got, again)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "last path segment", in: "/chat/hello-world/", want: "hello-world"},
		{name: "lowercases", in: "Hello-World", want: "hello-world"},
		{name: "spaces become hyphens", in: "ночной чат", want: "nochnoi-chat"},
		{name: "cyrillic transliterates", in: "/chat/девушки/", want: "devushki"},
		{name: "yo folds to ye", in: "всё", want: "vse"},
		{name: "soft sign drops", in: "общаться", want: "obshchatsya"},
		{name: "diacritics strip", in: "café", want: "cafe"},
		{name: "underscores survive", in: "night_chat", want: "night_chat"},
		{name: "punctuation runs collapse", in: "a!!!b", want: "a-b"},
		{name: "leading trailing junk trims", in: "--hello--", want: "hello"},
		{name: "empty falls back", in: "", want: "page"},
		{name: "all punctuation falls back", in: "///???///", want: "page"},
		{name: "digits survive", in: "/chat/24-7/", want: "24-7"},
	}

	slugShape := regexp.MustCompile(`^[a-z0-9_-]+$`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slug(tt.in)
			if got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !slugShape.MatchString(got) {
				t.Errorf("Slug(%q) = %q does not match %v", tt.in, got, slugShape)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "pipe separated", in: "a|b|c", want: []string{"a", "b", "c"}},
		{name: "trims items", in: " a | b ", want: []string{"a", "b"}},
		{name: "drops empties", in: "a||b|", want: []string{"a", "b"}},
		{name: "newlines when no pipe", in: "a\nb\nc", want: []string{"a", "b", "c"}},
		{name: "pipe wins over newline", in: "a|b\nc", want: []string{"a", "b\nc"}},
		{name: "empty input", in: "", want: nil},
		{name: "whitespace only", in: "  \n  ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitList(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitList(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSplitLinks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{name: "pipe separated", in: "/chat/a/|/chat/b/", want: []string{"/chat/a/", "/chat/b/"}},
		{name: "double pipe stays in token", in: "/chat/b/||Анкор", want: []string{"/chat/b/||Анкор"}},
		{name: "double pipe next to separator", in: "/chat/b/||Анкор|/chat/c/", want: []string{"/chat/b/||Анкор", "/chat/c/"}},
		{name: "newline separated pairs", in: "a||A\nb||B", want: []string{"a||A", "b||B"}},
		{name: "anchor-first form untouched", in: "Анкор::/chat/b/|/chat/c/", want: []string{"Анкор::/chat/b/", "/chat/c/"}},
		{name: "trims and drops empties", in: " a | | b ", want: []string{"a", "b"}},
		{name: "empty input", in: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLinks(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SplitLinks(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"y", true},
		{"да", true},
		{"Да", true},
		{"on", true},
		{" on ", true},
		{"", false},
		{"0", false},
		{"no", false},
		{"нет", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Truthy(tt.in); got != tt.want {
				t.Errorf("Truthy(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPrettySlug(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello-world", "Hello world"},
		{"night_chat", "Night chat"},
		{"page", "Page"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := PrettySlug(tt.in); got != tt.want {
				t.Errorf("PrettySlug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
