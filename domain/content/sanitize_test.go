package content

import (
	"strings"
	"testing"
)

func TestSanitizeBody(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		keep    []string
		dropped []string
	}{
		{
			name:    "script removed",
			in:      `<p>hello</p><script>alert(1)</script>`,
			keep:    []string{"<p>hello</p>"},
			dropped: []string{"<script>", "alert(1)"},
		},
		{
			name:    "event handlers stripped",
			in:      `<p onclick="steal()">click</p>`,
			keep:    []string{"click"},
			dropped: []string{"onclick"},
		},
		{
			name: "formatting preserved",
			in:   `<h2>Head</h2><strong>bold</strong> <em>em</em> <blockquote>q</blockquote>`,
			keep: []string{"<h2>Head</h2>", "<strong>bold</strong>", "<em>em</em>", "<blockquote>q</blockquote>"},
		},
		{
			name: "relative links allowed",
			in:   `<a href="/about">about</a>`,
			keep: []string{`href="/about"`},
		},
		{
			name:    "javascript urls dropped",
			in:      `<a href="javascript:alert(1)">x</a>`,
			dropped: []string{"javascript:"},
		},
	}

	for _, tc := range cases {
		got := SanitizeBody(tc.in)
		for _, want := range tc.keep {
			if !strings.Contains(got, want) {
				t.Fatalf("%s: %q missing from %q", tc.name, want, got)
			}
		}
		for _, bad := range tc.dropped {
			if strings.Contains(got, bad) {
				t.Fatalf("%s: %q survived in %q", tc.name, bad, got)
			}
		}
	}
}

func TestSanitizePlain(t *testing.T) {
	if got := SanitizePlain(`<b>Title</b> here`); got != "Title here" {
		t.Fatalf("got %q, want %q", got, "Title here")
	}
	if got := SanitizePlain("  padded  "); got != "padded" {
		t.Fatalf("got %q, want %q", got, "padded")
	}
	if got := SanitizePlain(`<script>x</script>`); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"", "", 1, 20},
		{"2", "10", 2, 10},
		{"0", "0", 1, 1},
		{"-5", "-5", 1, 1},
		{"3", "500", 3, 50},
		{"abc", "xyz", 1, 20},
	}
	for _, tc := range cases {
		page, limit := ParsePagination(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Fatalf("ParsePagination(%q, %q) = %d, %d; want %d, %d",
				tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}
