// Package summary derives plain-text meta descriptions from rich content bodies.
package summary

import (
	"bytes"
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"golang.org/x/text/unicode/norm"
)

const ellipsis = "…"

var (
	markdown = goldmark.New()
	strip    = bluemonday.StrictPolicy()

	// breaks matches tags that separate words when rendered: block elements,
	// line breaks and comments (goldmark writes one for omitted raw HTML).
	breaks = regexp.MustCompile(`(?i)<(?:/?(?:p|div|li|ul|ol|dl|dt|dd|h[1-6]|tr|td|th|table|thead|tbody|caption|blockquote|pre|section|article|header|footer|nav|aside|figure|figcaption|hr|br)\b|!--)`)
)

// FromMarkdown renders md and returns its text content truncated to max
// characters. A max of zero or less disables truncation.
func FromMarkdown(md string, max int) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return Truncate(clean(md), max)
	}
	return FromHTML(buf.String(), max)
}

// FromHTML strips every tag from markup and returns its text content truncated
// to max characters.
func FromHTML(markup string, max int) string {
	markup = breaks.ReplaceAllString(markup, " $0")
	return Truncate(clean(html.UnescapeString(strip.Sanitize(markup))), max)
}

// clean NFC-normalizes s and collapses runs of whitespace to single spaces.
func clean(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// Truncate shortens s to at most max characters, cutting at the last word
// boundary and appending an ellipsis that counts toward max.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	limit := max - utf8.RuneCountInString(ellipsis)
	if limit <= 0 {
		return string([]rune(ellipsis)[:max])
	}
	runes := []rune(s)
	cut := runes[:limit]
	if !unicode.IsSpace(runes[limit]) {
		if i := lastSpace(cut); i > 0 {
			cut = cut[:i]
		}
	}
	out := strings.TrimRightFunc(string(cut), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return out + ellipsis
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}
