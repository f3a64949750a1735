package seo

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Keywords holds page keywords supplied either as a single string or as a list.
type Keywords []string

// UnmarshalJSON accepts both "a, b" and ["a", "b"].
func (k *Keywords) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*k = keywordsFromString(single)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("seo: keywords must be a string or a list of strings: %w", err)
	}
	*k = Keywords(list)
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence node.
func (k *Keywords) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*k = keywordsFromString(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*k = Keywords(list)
		return nil
	default:
		return fmt.Errorf("seo: keywords must be a string or a list of strings (line %d)", node.Line)
	}
}

func keywordsFromString(s string) Keywords {
	if s == "" {
		return nil
	}
	return Keywords{s}
}

// String joins the non-empty keywords with ", ".
func (k Keywords) String() string {
	parts := make([]string, 0, len(k))
	for _, kw := range k {
		if kw = strings.TrimSpace(kw); kw != "" {
			parts = append(parts, kw)
		}
	}
	return strings.Join(parts, ", ")
}

// Input is the caller-supplied metadata for a page. Every field is optional;
// an empty string means the value was not supplied.
type Input struct {
	Title              string   `json:"title,omitempty" yaml:"title"`
	Description        string   `json:"description,omitempty" yaml:"description"`
	Keywords           Keywords `json:"keywords,omitempty" yaml:"keywords"`
	OGTitle            string   `json:"ogTitle,omitempty" yaml:"og_title"`
	OGDescription      string   `json:"ogDescription,omitempty" yaml:"og_description"`
	OGImage            string   `json:"ogImage,omitempty" yaml:"og_image"`
	OGURL              string   `json:"ogUrl,omitempty" yaml:"og_url"`
	OGType             string   `json:"ogType,omitempty" yaml:"og_type"`
	TwitterTitle       string   `json:"twitterTitle,omitempty" yaml:"twitter_title"`
	TwitterDescription string   `json:"twitterDescription,omitempty" yaml:"twitter_description"`
	TwitterImage       string   `json:"twitterImage,omitempty" yaml:"twitter_image"`
	CanonicalURL       string   `json:"canonicalUrl,omitempty" yaml:"canonical_url"`
	Robots             string   `json:"robots,omitempty" yaml:"robots"`
	NoIndex            bool     `json:"noindex,omitempty" yaml:"noindex"`
	NoFollow           bool     `json:"nofollow,omitempty" yaml:"nofollow"`
}

// Metadata is the fully resolved head metadata for a page. CanonicalURL is the
// only field that may be empty, in which case no canonical link is emitted.
type Metadata struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Keywords           string `json:"keywords"`
	Robots             string `json:"robots"`
	CanonicalURL       string `json:"canonicalUrl,omitempty"`
	OGTitle            string `json:"ogTitle"`
	OGDescription      string `json:"ogDescription"`
	OGImage            string `json:"ogImage"`
	OGURL              string `json:"ogUrl"`
	OGType             string `json:"ogType"`
	OGSiteName         string `json:"ogSiteName"`
	OGLocale           string `json:"ogLocale"`
	TwitterCard        string `json:"twitterCard"`
	TwitterSite        string `json:"twitterSite"`
	TwitterTitle       string `json:"twitterTitle"`
	TwitterDescription string `json:"twitterDescription"`
	TwitterImage       string `json:"twitterImage"`
}

// Site carries the process-wide site defaults. It is built once at startup and
// never mutated afterwards.
type Site struct {
	BaseURL            string
	Name               string
	DefaultTitle       string
	DefaultDescription string
	DefaultKeywords    Keywords
	DefaultImage       string
	TwitterHandle      string
	Locale             string
	Organization       OrganizationProfile
}

// OrganizationProfile holds the fixed facts published in Organization JSON-LD.
type OrganizationProfile struct {
	Logo        string
	Description string
	Address     PostalAddress
	Contact     ContactPoint
	SameAs      []string
}

// PostalAddress is a schema.org PostalAddress.
type PostalAddress struct {
	Street     string
	Locality   string
	Region     string
	PostalCode string
	Country    string
}

// ContactPoint is a schema.org ContactPoint.
type ContactPoint struct {
	Telephone         string
	Email             string
	ContactType       string
	AvailableLanguage []string
}

// DefaultSite returns the hard-coded site defaults that end every fallback chain.
func DefaultSite() Site {
	return Site{
		BaseURL:            "https://www.nexoratech.in",
		Name:               "Nexora Tech Academy",
		DefaultTitle:       "Nexora Tech Academy | Software Training & Internships",
		DefaultDescription: "Industry-led software training, live projects and internships in full stack development, data science and cloud. Learn from practitioners and get placement support.",
		DefaultKeywords: Keywords{
			"software training",
			"internships",
			"full stack development",
			"data science",
			"placement support",
		},
		DefaultImage:  "/images/og-default.png",
		TwitterHandle: "@nexoratech",
		Locale:        "en_IN",
		Organization: OrganizationProfile{
			Logo:        "/images/logo.png",
			Description: "Nexora Tech Academy offers hands-on software training and internship programs for students and working professionals.",
			Address: PostalAddress{
				Street:     "4th Floor, Skyline Towers, Hitech City Road",
				Locality:   "Hyderabad",
				Region:     "Telangana",
				PostalCode: "500081",
				Country:    "IN",
			},
			Contact: ContactPoint{
				Telephone:         "+91-40-4000-1234",
				Email:             "hello@nexoratech.in",
				ContactType:       "customer service",
				AvailableLanguage: []string{"English", "Hindi", "Telugu"},
			},
			SameAs: []string{
				"https://www.linkedin.com/company/nexoratech",
				"https://www.instagram.com/nexoratech",
				"https://twitter.com/nexoratech",
				"https://www.youtube.com/@nexoratech",
			},
		},
	}
}

// withDefaults fills blank fields from DefaultSite so every chain terminates in
// a non-empty value.
func (s Site) withDefaults() Site {
	d := DefaultSite()
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if s.BaseURL == "" {
		s.BaseURL = d.BaseURL
	}
	if s.Name == "" {
		s.Name = d.Name
	}
	if s.DefaultTitle == "" {
		s.DefaultTitle = d.DefaultTitle
	}
	if s.DefaultDescription == "" {
		s.DefaultDescription = d.DefaultDescription
	}
	if s.DefaultKeywords.String() == "" {
		s.DefaultKeywords = d.DefaultKeywords
	}
	if s.DefaultImage == "" {
		s.DefaultImage = d.DefaultImage
	}
	if s.TwitterHandle == "" {
		s.TwitterHandle = d.TwitterHandle
	}
	if s.Locale == "" {
		s.Locale = d.Locale
	}
	if s.Organization.Logo == "" && s.Organization.Description == "" {
		s.Organization = d.Organization
	}
	return s
}

// Resolver turns partial page metadata into complete head metadata and
// structured data. A Resolver is immutable and safe for concurrent use.
type Resolver struct {
	site Site
}

// NewResolver returns a Resolver bound to site. Blank site fields fall back to
// DefaultSite.
func NewResolver(site Site) *Resolver {
	return &Resolver{site: site.withDefaults()}
}

// Site returns the effective site defaults.
func (r *Resolver) Site() Site { return r.site }

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
