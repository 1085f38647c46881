package render_test

import (
	"testing"

	"github.com/goliatone/go-formfield/pkg/render"
)

func TestSanitizeRichText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"whitespace", "   ", ""},
		{"inline kept", "use <code>kebab-case</code> names", "use <code>kebab-case</code> names"},
		{"script stripped", `before<script>alert(1)</script>after`, "beforeafter"},
		{"span class kept", `<span class="hint">tip</span>`, `<span class="hint">tip</span>`},
		{"event handler stripped", `<b onclick="x()">bold</b>`, "<b>bold</b>"},
		{"javascript url stripped", `<a href="javascript:alert(1)">x</a>`, "x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := render.SanitizeRichText(tc.in); got != tc.want {
				t.Fatalf("sanitize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeRichTextLinksGetNoFollow(t *testing.T) {
	got := render.SanitizeRichText(`<a href="https://example.com">docs</a>`)
	want := `<a href="https://example.com" rel="nofollow">docs</a>`
	if got != want {
		t.Fatalf("sanitize = %q, want %q", got, want)
	}
}
