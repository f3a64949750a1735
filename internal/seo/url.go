package seo

import "strings"

// AbsoluteURL converts a possibly relative image or page reference into an
// absolute URL against the site base. An empty ref yields the default image.
func (r *Resolver) AbsoluteURL(ref string) string {
	if ref == "" {
		ref = r.site.DefaultImage
	}
	return joinBase(r.site.BaseURL, ref)
}

// joinBase is a pure string transform; it never validates reachability.
func joinBase(base, ref string) string {
	switch {
	case strings.HasPrefix(ref, "http"):
		return ref
	case strings.HasPrefix(ref, "/"):
		return base + ref
	default:
		return base + "/" + ref
	}
}
