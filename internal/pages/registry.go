// Package pages loads the static per-route metadata registry.
package pages

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"finitefield.org/academy-web/internal/seo"
)

// ErrUnknownPage is returned by Lookup for paths missing from the registry.
var ErrUnknownPage = errors.New("pages: unknown page")

// Page is the registry entry for one route.
type Page struct {
	Path           string               `yaml:"path"`
	Meta           seo.Input            `yaml:",inline"`
	StructuredData string               `yaml:"structured_data"`
	Breadcrumbs    []seo.BreadcrumbItem `yaml:"breadcrumbs"`
	// SearchPath, when set, adds a WebSite block with a SearchAction whose
	// target is SearchPath followed by the query placeholder.
	SearchPath string `yaml:"search_path"`
}

type document struct {
	Pages []Page `yaml:"pages"`
}

// Registry is an immutable path-indexed set of pages.
type Registry struct {
	pages map[string]Page
}

// Load reads a registry from a YAML file.
func Load(file string) (*Registry, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("pages: read %s: %w", file, err)
	}
	reg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("pages: %s: %w", file, err)
	}
	return reg, nil
}

// Parse decodes a registry document. Paths are normalized and must be unique.
func Parse(r io.Reader) (*Registry, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	reg := &Registry{pages: make(map[string]Page, len(doc.Pages))}
	for i, p := range doc.Pages {
		if strings.TrimSpace(p.Path) == "" {
			return nil, fmt.Errorf("page %d: path is required", i)
		}
		p.Path = NormalizePath(p.Path)
		if _, dup := reg.pages[p.Path]; dup {
			return nil, fmt.Errorf("duplicate page %q", p.Path)
		}
		if p.StructuredData != "" {
			kind, ok := seo.ParseKind(p.StructuredData)
			if !ok {
				return nil, fmt.Errorf("page %q: unknown structured_data %q", p.Path, p.StructuredData)
			}
			if kind != seo.KindOrganization {
				return nil, fmt.Errorf("page %q: structured_data %q is only available for catalog records", p.Path, p.StructuredData)
			}
		}
		reg.pages[p.Path] = p
	}
	return reg, nil
}

// NormalizePath returns a cleaned path with a leading slash and no trailing
// slash, except for the root.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Clean("/" + p)
}

// Lookup returns the page registered for p.
func (r *Registry) Lookup(p string) (Page, error) {
	if r == nil {
		return Page{}, ErrUnknownPage
	}
	page, ok := r.pages[NormalizePath(p)]
	if !ok {
		return Page{}, ErrUnknownPage
	}
	return page, nil
}

// Paths lists registered paths in sorted order.
func (r *Registry) Paths() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.pages))
	for p := range r.pages {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Record returns the structured-data record for the page, if any. Parse only
// admits the Organization variant; detail variants come from catalog records.
func (p Page) Record() (seo.Record, bool) {
	kind, ok := seo.ParseKind(p.StructuredData)
	if !ok || kind != seo.KindOrganization {
		return nil, false
	}
	return seo.Organization{}, true
}
