package seo

// source yields one candidate for a field. An empty string means "absent".
type source func(in Input, s Site) string

// chain is an ordered list of sources; the first non-empty candidate wins.
type chain []source

func (c chain) resolve(in Input, s Site) string {
	for _, src := range c {
		if v := src(in, s); v != "" {
			return v
		}
	}
	return ""
}

func inputTitle(in Input, _ Site) string              { return in.Title }
func inputDescription(in Input, _ Site) string        { return in.Description }
func inputKeywords(in Input, _ Site) string           { return in.Keywords.String() }
func inputOGTitle(in Input, _ Site) string            { return in.OGTitle }
func inputOGDescription(in Input, _ Site) string      { return in.OGDescription }
func inputOGImage(in Input, _ Site) string            { return in.OGImage }
func inputOGURL(in Input, _ Site) string              { return in.OGURL }
func inputOGType(in Input, _ Site) string             { return in.OGType }
func inputTwitterTitle(in Input, _ Site) string       { return in.TwitterTitle }
func inputTwitterDescription(in Input, _ Site) string { return in.TwitterDescription }
func inputTwitterImage(in Input, _ Site) string       { return in.TwitterImage }
func inputCanonical(in Input, _ Site) string          { return in.CanonicalURL }

func siteTitle(_ Input, s Site) string       { return s.DefaultTitle }
func siteDescription(_ Input, s Site) string { return s.DefaultDescription }
func siteKeywords(_ Input, s Site) string    { return s.DefaultKeywords.String() }
func siteImage(_ Input, s Site) string       { return s.DefaultImage }
func siteURL(_ Input, s Site) string         { return s.BaseURL }

func constant(v string) source {
	return func(Input, Site) string { return v }
}

const (
	defaultOGType      = "website"
	defaultTwitterCard = "summary_large_image"
)

// Fallback order for every resolved field.
var (
	titleChain              = chain{inputTitle, siteTitle}
	descriptionChain        = chain{inputDescription, siteDescription}
	keywordsChain           = chain{inputKeywords, siteKeywords}
	ogTitleChain            = chain{inputOGTitle, inputTitle, siteTitle}
	ogDescriptionChain      = chain{inputOGDescription, inputDescription, siteDescription}
	ogImageChain            = chain{inputOGImage, siteImage}
	ogURLChain              = chain{inputOGURL, inputCanonical, siteURL}
	ogTypeChain             = chain{inputOGType, constant(defaultOGType)}
	twitterTitleChain       = chain{inputTwitterTitle, inputTitle, siteTitle}
	twitterDescriptionChain = chain{inputTwitterDescription, inputDescription, siteDescription}
	twitterImageChain       = chain{inputTwitterImage, inputOGImage, siteImage}
	canonicalChain          = chain{inputCanonical, inputOGURL}
)

// Resolve fills every gap in in from the fallback chains and absolutizes URLs.
func (r *Resolver) Resolve(in Input) Metadata {
	s := r.site
	m := Metadata{
		Title:              titleChain.resolve(in, s),
		Description:        descriptionChain.resolve(in, s),
		Keywords:           keywordsChain.resolve(in, s),
		Robots:             robotsDirective(in),
		OGTitle:            ogTitleChain.resolve(in, s),
		OGDescription:      ogDescriptionChain.resolve(in, s),
		OGImage:            r.AbsoluteURL(ogImageChain.resolve(in, s)),
		OGURL:              joinBase(s.BaseURL, ogURLChain.resolve(in, s)),
		OGType:             ogTypeChain.resolve(in, s),
		OGSiteName:         s.Name,
		OGLocale:           s.Locale,
		TwitterCard:        defaultTwitterCard,
		TwitterSite:        s.TwitterHandle,
		TwitterTitle:       twitterTitleChain.resolve(in, s),
		TwitterDescription: twitterDescriptionChain.resolve(in, s),
		TwitterImage:       r.AbsoluteURL(twitterImageChain.resolve(in, s)),
	}
	if canonical := canonicalChain.resolve(in, s); canonical != "" {
		m.CanonicalURL = joinBase(s.BaseURL, canonical)
	}
	return m
}

// robotsDirective returns in.Robots verbatim when set, otherwise synthesizes
// "<index>,<follow>" from the two flags.
func robotsDirective(in Input) string {
	if in.Robots != "" {
		return in.Robots
	}
	index := "index"
	if in.NoIndex {
		index = "noindex"
	}
	follow := "follow"
	if in.NoFollow {
		follow = "nofollow"
	}
	return index + "," + follow
}
