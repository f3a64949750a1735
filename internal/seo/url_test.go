package seo

import "testing"

func TestAbsoluteURL(t *testing.T) {
	t.Parallel()

	r := NewResolver(Site{BaseURL: "https://example.com", DefaultImage: "/images/default.png"})
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"relative", "logo.png", "https://example.com/logo.png"},
		{"root relative", "/logo.png", "https://example.com/logo.png"},
		{"absolute", "https://cdn.x.com/a.png", "https://cdn.x.com/a.png"},
		{"plain http", "http://cdn.x.com/a.png", "http://cdn.x.com/a.png"},
		{"empty uses default image", "", "https://example.com/images/default.png"},
		{"nested relative", "img/courses/go.png", "https://example.com/img/courses/go.png"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := r.AbsoluteURL(tc.in); got != tc.want {
				t.Fatalf("AbsoluteURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestAbsoluteURLDefaultImageAlreadyAbsolute(t *testing.T) {
	t.Parallel()

	r := NewResolver(Site{BaseURL: "https://example.com", DefaultImage: "https://cdn.example.com/og.png"})
	if got := r.AbsoluteURL(""); got != "https://cdn.example.com/og.png" {
		t.Fatalf("expected default image unchanged, got %q", got)
	}
}
