package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func testResolver() *Resolver {
	site := DefaultSite()
	site.BaseURL = "https://example.com/"
	return NewResolver(site)
}

func TestResolveEmptyInputUsesSiteDefaults(t *testing.T) {
	t.Parallel()

	r := testResolver()
	site := r.Site()
	got := r.Resolve(Input{})

	require.Equal(t, site.DefaultTitle, got.Title)
	require.Equal(t, site.DefaultDescription, got.Description)
	require.Equal(t, site.DefaultTitle, got.OGTitle)
	require.Equal(t, site.DefaultDescription, got.OGDescription)
	require.Equal(t, site.DefaultTitle, got.TwitterTitle)
	require.Equal(t, site.DefaultDescription, got.TwitterDescription)
	require.Equal(t, site.DefaultKeywords.String(), got.Keywords)
	require.Equal(t, "https://example.com/images/og-default.png", got.OGImage)
	require.Equal(t, got.OGImage, got.TwitterImage)
	require.Equal(t, "https://example.com", got.OGURL)
	require.Equal(t, "website", got.OGType)
	require.Equal(t, "summary_large_image", got.TwitterCard)
	require.Equal(t, "index,follow", got.Robots)
	require.Empty(t, got.CanonicalURL)
}

func TestResolveRequiredFieldsNeverEmpty(t *testing.T) {
	t.Parallel()

	r := testResolver()
	inputs := []Input{
		{},
		{Title: "Only title"},
		{Description: "Only description"},
		{OGTitle: "og", TwitterDescription: "tw"},
		{NoIndex: true, NoFollow: true},
		{Keywords: Keywords{"", "  "}},
	}
	for _, in := range inputs {
		got := r.Resolve(in)
		for name, v := range map[string]string{
			"title":              got.Title,
			"description":        got.Description,
			"keywords":           got.Keywords,
			"ogTitle":            got.OGTitle,
			"ogDescription":      got.OGDescription,
			"ogImage":            got.OGImage,
			"ogUrl":              got.OGURL,
			"twitterTitle":       got.TwitterTitle,
			"twitterDescription": got.TwitterDescription,
			"twitterImage":       got.TwitterImage,
			"robots":             got.Robots,
		} {
			require.NotEmptyf(t, v, "%s empty for input %+v", name, in)
		}
	}
}

func TestResolveFallbackOrder(t *testing.T) {
	t.Parallel()

	r := testResolver()
	tests := []struct {
		name  string
		in    Input
		check func(t *testing.T, m Metadata)
	}{
		{
			name: "og title falls back to title",
			in:   Input{Title: "Java Full Stack"},
			check: func(t *testing.T, m Metadata) {
				require.Equal(t, "Java Full Stack", m.OGTitle)
				require.Equal(t, "Java Full Stack", m.TwitterTitle)
			},
		},
		{
			name: "explicit og and twitter titles win",
			in:   Input{Title: "T", OGTitle: "OG", TwitterTitle: "TW"},
			check: func(t *testing.T, m Metadata) {
				require.Equal(t, "T", m.Title)
				require.Equal(t, "OG", m.OGTitle)
				require.Equal(t, "TW", m.TwitterTitle)
			},
		},
		{
			name: "og description falls back to description",
			in:   Input{Description: "Learn Go"},
			check: func(t *testing.T, m Metadata) {
				require.Equal(t, "Learn Go", m.OGDescription)
				require.Equal(t, "Learn Go", m.TwitterDescription)
			},
		},
		{
			name: "twitter image falls back to og image",
			in:   Input{OGImage: "/img/course.png"},
			check: func(t *testing.T, m Metadata) {
				require.Equal(t, "https://example.com/img/course.png", m.OGImage)
				require.Equal(t, "https://example.com/img/course.png", m.TwitterImage)
			},
		},
		{
			name: "twitter image explicit",
			in:   Input{OGImage: "og.png", TwitterImage: "https://cdn.x.com/tw.png"},
			check: func(t *testing.T, m Metadata) {
				require.Equal(t, "https://example.com/og.png", m.OGImage)
				require.Equal(t, "https://cdn.x.com/tw.png", m.TwitterImage)
			},
		},
		{
			name: "canonical falls back to og url",
			in:   Input{OGURL: "/courses/golang"},
			check: func(t *testing.T, m Metadata) {
				require.Equal(t, "https://example.com/courses/golang", m.CanonicalURL)
				require.Equal(t, "https://example.com/courses/golang", m.OGURL)
			},
		},
		{
			name: "og url falls back to canonical",
			in:   Input{CanonicalURL: "https://example.com/about"},
			check: func(t *testing.T, m Metadata) {
				require.Equal(t, "https://example.com/about", m.CanonicalURL)
				require.Equal(t, "https://example.com/about", m.OGURL)
			},
		},
		{
			name: "keywords list joined",
			in:   Input{Keywords: Keywords{"go", "", "microservices"}},
			check: func(t *testing.T, m Metadata) {
				require.Equal(t, "go, microservices", m.Keywords)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			tc.check(t, r.Resolve(tc.in))
		})
	}
}

func TestRobotsDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Input
		want string
	}{
		{Input{}, "index,follow"},
		{Input{NoIndex: true}, "noindex,follow"},
		{Input{NoFollow: true}, "index,nofollow"},
		{Input{NoIndex: true, NoFollow: true}, "noindex,nofollow"},
		{Input{Robots: "noarchive", NoIndex: true}, "noarchive"},
	}
	r := testResolver()
	for _, tc := range tests {
		require.Equal(t, tc.want, r.Resolve(tc.in).Robots, "input %+v", tc.in)
	}
}

func TestFallbackChainsEndInSiteDefault(t *testing.T) {
	t.Parallel()

	site := DefaultSite()
	for name, c := range map[string]chain{
		"title":              titleChain,
		"description":        descriptionChain,
		"keywords":           keywordsChain,
		"ogTitle":            ogTitleChain,
		"ogDescription":      ogDescriptionChain,
		"ogImage":            ogImageChain,
		"ogUrl":              ogURLChain,
		"ogType":             ogTypeChain,
		"twitterTitle":       twitterTitleChain,
		"twitterDescription": twitterDescriptionChain,
		"twitterImage":       twitterImageChain,
	} {
		require.NotEmptyf(t, c.resolve(Input{}, site), "%s chain has no terminal default", name)
	}
	require.Empty(t, canonicalChain.resolve(Input{}, site))
}

func TestResolveIsDeterministic(t *testing.T) {
	t.Parallel()

	r := testResolver()
	in := Input{Title: "Data Science", OGImage: "ds.png", NoFollow: true, Keywords: Keywords{"python", "ml"}}
	first, err := json.Marshal(r.Resolve(in))
	require.NoError(t, err)
	second, err := json.Marshal(r.Resolve(in))
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestKeywordsDecoding(t *testing.T) {
	t.Parallel()

	var in Input
	require.NoError(t, json.Unmarshal([]byte(`{"keywords":"go, cloud"}`), &in))
	require.Equal(t, "go, cloud", in.Keywords.String())

	require.NoError(t, json.Unmarshal([]byte(`{"keywords":["go","cloud"]}`), &in))
	require.Equal(t, "go, cloud", in.Keywords.String())

	require.Error(t, json.Unmarshal([]byte(`{"keywords":42}`), &in))
}

func TestNewResolverFillsBlankSite(t *testing.T) {
	t.Parallel()

	r := NewResolver(Site{BaseURL: "https://academy.test/"})
	site := r.Site()
	require.Equal(t, "https://academy.test", site.BaseURL)
	require.Equal(t, DefaultSite().DefaultTitle, site.DefaultTitle)
	require.Equal(t, DefaultSite().Name, site.Name)
}
