package seo

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Platform length limits, in characters.
const (
	MaxTitleLength              = 60
	MaxDescriptionLength        = 160
	MaxOGTitleLength            = 100
	MaxOGDescriptionLength      = 200
	MaxTwitterTitleLength       = 70
	MaxTwitterDescriptionLength = 200
)

// Fields holds the raw author-supplied strings that are subject to length
// limits. Empty fields are treated as absent.
type Fields struct {
	Title              string `json:"title,omitempty"`
	Description        string `json:"description,omitempty"`
	OGTitle            string `json:"ogTitle,omitempty"`
	OGDescription      string `json:"ogDescription,omitempty"`
	TwitterTitle       string `json:"twitterTitle,omitempty"`
	TwitterDescription string `json:"twitterDescription,omitempty"`
}

// Fields extracts the length-limited fields from in.
func (in Input) Fields() Fields {
	return Fields{
		Title:              in.Title,
		Description:        in.Description,
		OGTitle:            in.OGTitle,
		OGDescription:      in.OGDescription,
		TwitterTitle:       in.TwitterTitle,
		TwitterDescription: in.TwitterDescription,
	}
}

// ValidationResult maps a field name to a human-readable warning. An empty
// result means every field is within its limit.
type ValidationResult map[string]string

// Valid reports whether no field exceeded its limit.
func (v ValidationResult) Valid() bool { return len(v) == 0 }

// Fields returns the names of the violated fields in sorted order.
func (v ValidationResult) Fields() []string {
	out := make([]string, 0, len(v))
	for k := range v {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type fieldLimit struct {
	name  string
	label string
	max   int
	value func(Fields) string
}

var fieldLimits = []fieldLimit{
	{"title", "Title", MaxTitleLength, func(f Fields) string { return f.Title }},
	{"description", "Description", MaxDescriptionLength, func(f Fields) string { return f.Description }},
	{"ogTitle", "Open Graph title", MaxOGTitleLength, func(f Fields) string { return f.OGTitle }},
	{"ogDescription", "Open Graph description", MaxOGDescriptionLength, func(f Fields) string { return f.OGDescription }},
	{"twitterTitle", "Twitter title", MaxTwitterTitleLength, func(f Fields) string { return f.TwitterTitle }},
	{"twitterDescription", "Twitter description", MaxTwitterDescriptionLength, func(f Fields) string { return f.TwitterDescription }},
}

// Validate reports every field longer than its platform limit. It is advisory
// and never blocks resolution.
func Validate(f Fields) ValidationResult {
	result := ValidationResult{}
	for _, limit := range fieldLimits {
		n := utf8.RuneCountInString(limit.value(f))
		if n > limit.max {
			result[limit.name] = fmt.Sprintf("%s should be at most %d characters (currently %d)", limit.label, limit.max, n)
		}
	}
	return result
}
