package seo

import (
	"encoding/json"
	"fmt"
	"strings"
)

const schemaContext = "https://schema.org"

// Kind names a structured-data variant.
type Kind string

const (
	KindOrganization Kind = "organization"
	KindCourse       Kind = "course"
	KindJobPosting   Kind = "job"
	KindEvent        Kind = "event"
)

// Record is one of Organization, Course, JobPosting or Event.
type Record interface {
	Kind() Kind
	record()
}

// Organization describes the training company itself. All of its fields come
// from the Site profile.
type Organization struct{}

// Course is a training program offered for sale.
type Course struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency,omitempty"`
	IsFree      bool    `json:"isFree,omitempty"`
	URL         string  `json:"url,omitempty"`
	Image       string  `json:"image,omitempty"`
	Rating      *Rating `json:"rating,omitempty"`
}

// Rating is an aggregate review score. It is published only when both Average
// and Count are present.
type Rating struct {
	Average *float64 `json:"average,omitempty"`
	Count   *int     `json:"count,omitempty"`
}

func (r *Rating) complete() bool {
	return r != nil && r.Average != nil && r.Count != nil
}

// JobPosting covers both jobs and internships.
type JobPosting struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	DatePosted     string   `json:"datePosted"`
	ValidThrough   string   `json:"validThrough,omitempty"`
	EmploymentType string   `json:"employmentType,omitempty"`
	Location       string   `json:"location,omitempty"`
	MinSalary      *float64 `json:"minSalary,omitempty"`
	MaxSalary      *float64 `json:"maxSalary,omitempty"`
	Currency       string   `json:"currency,omitempty"`
}

// Event is a workshop, webinar or hiring drive.
type Event struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Location    string `json:"location,omitempty"`
}

func (Organization) Kind() Kind { return KindOrganization }
func (Course) Kind() Kind       { return KindCourse }
func (JobPosting) Kind() Kind   { return KindJobPosting }
func (Event) Kind() Kind        { return KindEvent }

func (Organization) record() {}
func (Course) record()       {}
func (JobPosting) record()   {}
func (Event) record()        {}

const (
	defaultCurrency   = "INR"
	defaultCountry    = "IN"
	courseMode        = "online"
	salaryUnit        = "MONTH"
	defaultEmployment = "FULL_TIME"
)

// ParseKind maps a content-type tag to a Kind. Matching ignores case and
// surrounding space; "jobposting" and "internship" are accepted for jobs.
func ParseKind(tag string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "organization", "organisation":
		return KindOrganization, true
	case "course":
		return KindCourse, true
	case "job", "jobposting", "internship":
		return KindJobPosting, true
	case "event":
		return KindEvent, true
	default:
		return "", false
	}
}

// DecodeRecord decodes an upstream JSON record for the variant named by tag.
// ok is false for unknown tags; err reports malformed data for a known tag.
func DecodeRecord(tag string, data json.RawMessage) (rec Record, ok bool, err error) {
	kind, ok := ParseKind(tag)
	if !ok {
		return nil, false, nil
	}
	if len(data) == 0 || string(data) == "null" {
		data = json.RawMessage("{}")
	}
	switch kind {
	case KindOrganization:
		return Organization{}, true, nil
	case KindCourse:
		var c Course
		err = json.Unmarshal(data, &c)
		rec = c
	case KindJobPosting:
		var j JobPosting
		err = json.Unmarshal(data, &j)
		rec = j
	case KindEvent:
		var e Event
		err = json.Unmarshal(data, &e)
		rec = e
	}
	if err != nil {
		return nil, true, fmt.Errorf("seo: decode %s record: %w", kind, err)
	}
	return rec, true, nil
}

// StructuredData returns the schema.org JSON-LD object for rec. ok is false
// when rec is nil or not a known variant.
func (r *Resolver) StructuredData(rec Record) (map[string]any, bool) {
	switch v := rec.(type) {
	case Organization:
		return r.organization(), true
	case Course:
		return r.course(v), true
	case JobPosting:
		return r.jobPosting(v), true
	case Event:
		return r.event(v), true
	default:
		return nil, false
	}
}

func (r *Resolver) organization() map[string]any {
	s := r.site
	org := s.Organization
	m := map[string]any{
		"@context":    schemaContext,
		"@type":       "Organization",
		"name":        s.Name,
		"url":         s.BaseURL,
		"logo":        r.AbsoluteURL(org.Logo),
		"description": org.Description,
		"address": map[string]any{
			"@type":           "PostalAddress",
			"streetAddress":   org.Address.Street,
			"addressLocality": org.Address.Locality,
			"addressRegion":   org.Address.Region,
			"postalCode":      org.Address.PostalCode,
			"addressCountry":  org.Address.Country,
		},
		"contactPoint": map[string]any{
			"@type":             "ContactPoint",
			"telephone":         org.Contact.Telephone,
			"email":             org.Contact.Email,
			"contactType":       org.Contact.ContactType,
			"availableLanguage": append([]string(nil), org.Contact.AvailableLanguage...),
		},
		"sameAs": append([]string{}, org.SameAs...),
	}
	return m
}

// orgRef is the short Organization block embedded in other variants.
func (r *Resolver) orgRef() map[string]any {
	return map[string]any{
		"@type":  "Organization",
		"name":   r.site.Name,
		"sameAs": r.site.BaseURL,
	}
}

func (r *Resolver) course(c Course) map[string]any {
	currency := c.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	m := map[string]any{
		"@context":            schemaContext,
		"@type":               "Course",
		"name":                c.Title,
		"description":         c.Description,
		"provider":            r.orgRef(),
		"courseMode":          courseMode,
		"isAccessibleForFree": c.IsFree,
		"offers": map[string]any{
			"@type":         "Offer",
			"price":         c.Price,
			"priceCurrency": currency,
			"category":      offerCategory(c),
		},
	}
	if c.URL != "" {
		m["url"] = joinBase(r.site.BaseURL, c.URL)
	}
	if c.Image != "" {
		m["image"] = r.AbsoluteURL(c.Image)
	}
	if c.Rating.complete() {
		m["aggregateRating"] = map[string]any{
			"@type":       "AggregateRating",
			"ratingValue": *c.Rating.Average,
			"ratingCount": *c.Rating.Count,
		}
	}
	return m
}

func offerCategory(c Course) string {
	if c.IsFree {
		return "Free"
	}
	return "Paid"
}

func (r *Resolver) jobPosting(j JobPosting) map[string]any {
	employment := j.EmploymentType
	if employment == "" {
		employment = defaultEmployment
	}
	hiring := r.orgRef()
	hiring["logo"] = r.AbsoluteURL(r.site.Organization.Logo)
	m := map[string]any{
		"@context":           schemaContext,
		"@type":              "JobPosting",
		"title":              j.Title,
		"description":        j.Description,
		"datePosted":         j.DatePosted,
		"employmentType":     employment,
		"hiringOrganization": hiring,
		"jobLocation": map[string]any{
			"@type":   "Place",
			"address": locationAddress(j.Location),
		},
	}
	if j.ValidThrough != "" {
		m["validThrough"] = j.ValidThrough
	}
	if j.MinSalary != nil {
		value := map[string]any{
			"@type":    "QuantitativeValue",
			"minValue": *j.MinSalary,
			"unitText": salaryUnit,
		}
		if j.MaxSalary != nil {
			value["maxValue"] = *j.MaxSalary
		}
		currency := j.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		m["baseSalary"] = map[string]any{
			"@type":    "MonetaryAmount",
			"currency": currency,
			"value":    value,
		}
	}
	return m
}

func (r *Resolver) event(e Event) map[string]any {
	m := map[string]any{
		"@context":    schemaContext,
		"@type":       "Event",
		"name":        e.Name,
		"description": e.Description,
		"startDate":   e.StartDate,
		"location": map[string]any{
			"@type":   "Place",
			"name":    e.Location,
			"address": locationAddress(e.Location),
		},
		"organizer": map[string]any{
			"@type": "Organization",
			"name":  r.site.Name,
			"url":   r.site.BaseURL,
		},
	}
	if e.EndDate != "" {
		m["endDate"] = e.EndDate
	}
	return m
}

func locationAddress(location string) map[string]any {
	return map[string]any{
		"@type":           "PostalAddress",
		"addressLocality": location,
		"addressCountry":  defaultCountry,
	}
}

// WebSite returns the site-wide WebSite schema with an optional SearchAction.
func (r *Resolver) WebSite(searchPath string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     r.site.Name,
		"url":      r.site.BaseURL,
	}
	if searchPath != "" {
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      joinBase(r.site.BaseURL, searchPath) + "{search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// BreadcrumbItem maps a display name to a page path or URL.
type BreadcrumbItem struct {
	Name string `json:"name" yaml:"name"`
	Item string `json:"item" yaml:"item"`
}

// BreadcrumbList builds a schema.org BreadcrumbList with absolute item URLs.
func (r *Resolver) BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     joinBase(r.site.BaseURL, it.Item),
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}
