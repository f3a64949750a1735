package seo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDescriptionBoundary(t *testing.T) {
	t.Parallel()

	require.True(t, Validate(Fields{Description: strings.Repeat("a", 160)}).Valid())

	got := Validate(Fields{Description: strings.Repeat("a", 161)})
	require.Equal(t, []string{"description"}, got.Fields())
	require.Contains(t, got["description"], "160")
}

func TestValidateLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		field string
		max   int
		set   func(*Fields, string)
	}{
		{"title", 60, func(f *Fields, v string) { f.Title = v }},
		{"description", 160, func(f *Fields, v string) { f.Description = v }},
		{"ogTitle", 100, func(f *Fields, v string) { f.OGTitle = v }},
		{"ogDescription", 200, func(f *Fields, v string) { f.OGDescription = v }},
		{"twitterTitle", 70, func(f *Fields, v string) { f.TwitterTitle = v }},
		{"twitterDescription", 200, func(f *Fields, v string) { f.TwitterDescription = v }},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.field, func(t *testing.T) {
			t.Parallel()
			var ok, over Fields
			tc.set(&ok, strings.Repeat("x", tc.max))
			tc.set(&over, strings.Repeat("x", tc.max+1))
			require.True(t, Validate(ok).Valid())
			got := Validate(over)
			require.Len(t, got, 1)
			require.Contains(t, got, tc.field)
		})
	}
}

func TestValidateAbsentFieldsNotReported(t *testing.T) {
	t.Parallel()

	require.Empty(t, Validate(Fields{}))
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	t.Parallel()

	title := strings.Repeat("प", 60)
	require.True(t, Validate(Fields{Title: title}).Valid())
}

func TestValidateReportsEveryViolation(t *testing.T) {
	t.Parallel()

	in := Input{Title: strings.Repeat("t", 61), TwitterTitle: strings.Repeat("t", 71), OGTitle: "fine"}
	got := Validate(in.Fields())
	require.Equal(t, []string{"title", "twitterTitle"}, got.Fields())
}
