package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"finitefield.org/academy-web/internal/seo"
	"finitefield.org/academy-web/internal/summary"
)

// Course is a course record as served by the backend.
type Course struct {
	Slug     string      `json:"slug"`
	Title    string      `json:"title"`
	Summary  string      `json:"summary"`
	Body     string      `json:"body"`
	Image    string      `json:"image"`
	Price    float64     `json:"price"`
	Currency string      `json:"currency"`
	IsFree   bool        `json:"isFree"`
	Keywords []string    `json:"keywords"`
	Rating   *seo.Rating `json:"rating,omitempty"`
}

// Job is a job or internship opening.
type Job struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	Body           string   `json:"body"`
	DatePosted     string   `json:"datePosted"`
	ValidThrough   string   `json:"validThrough"`
	EmploymentType string   `json:"employmentType"`
	Location       string   `json:"location"`
	MinSalary      *float64 `json:"minSalary,omitempty"`
	MaxSalary      *float64 `json:"maxSalary,omitempty"`
}

// Event is a workshop, webinar or hiring drive.
type Event struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Summary   string `json:"summary"`
	Body      string `json:"body"`
	Image     string `json:"image"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Location  string `json:"location"`
}

// Course fetches a course by slug.
func (c *Client) Course(ctx context.Context, slug string) (Course, error) {
	var out Course
	err := c.decode(ctx, "courses", slug, &out)
	return out, err
}

// Job fetches a job or internship by id.
func (c *Client) Job(ctx context.Context, id string) (Job, error) {
	var out Job
	err := c.decode(ctx, "jobs", id, &out)
	return out, err
}

// Event fetches an event by id.
func (c *Client) Event(ctx context.Context, id string) (Event, error) {
	var out Event
	err := c.decode(ctx, "events", id, &out)
	return out, err
}

func (c *Client) decode(ctx context.Context, kind, id string, out any) error {
	body, err := c.get(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("catalog: decode %s/%s: %w", kind, id, err)
	}
	return nil
}

// describe prefers the explicit summary and otherwise derives one from the
// markdown body, bounded by the search-engine description limit.
func describe(summaryText, body string) string {
	if summaryText != "" {
		return summary.Truncate(summaryText, seo.MaxDescriptionLength)
	}
	return summary.FromMarkdown(body, seo.MaxDescriptionLength)
}

// Input returns page metadata for the course detail page.
func (c Course) Input() seo.Input {
	return seo.Input{
		Title:        c.Title,
		Description:  describe(c.Summary, c.Body),
		Keywords:     seo.Keywords(c.Keywords),
		OGImage:      c.Image,
		OGType:       "product",
		CanonicalURL: "/courses/" + c.Slug,
	}
}

// Record returns the Course structured-data variant.
func (c Course) Record() seo.Course {
	return seo.Course{
		Title:       c.Title,
		Description: describe(c.Summary, c.Body),
		Price:       c.Price,
		Currency:    c.Currency,
		IsFree:      c.IsFree,
		URL:         "/courses/" + c.Slug,
		Image:       c.Image,
		Rating:      c.Rating,
	}
}

// Input returns page metadata for the job detail page.
func (j Job) Input() seo.Input {
	return seo.Input{
		Title:        j.Title,
		Description:  describe(j.Summary, j.Body),
		CanonicalURL: "/jobs/" + j.ID,
	}
}

// Record returns the JobPosting structured-data variant. The full body is
// published since search engines accept long job descriptions.
func (j Job) Record() seo.JobPosting {
	desc := summary.FromMarkdown(j.Body, 0)
	if desc == "" {
		desc = j.Summary
	}
	return seo.JobPosting{
		Title:          j.Title,
		Description:    desc,
		DatePosted:     j.DatePosted,
		ValidThrough:   j.ValidThrough,
		EmploymentType: j.EmploymentType,
		Location:       j.Location,
		MinSalary:      j.MinSalary,
		MaxSalary:      j.MaxSalary,
	}
}

// Input returns page metadata for the event detail page.
func (e Event) Input() seo.Input {
	return seo.Input{
		Title:        e.Name,
		Description:  describe(e.Summary, e.Body),
		OGImage:      e.Image,
		CanonicalURL: "/events/" + e.ID,
	}
}

// Record returns the Event structured-data variant.
func (e Event) Record() seo.Event {
	return seo.Event{
		Name:        e.Name,
		Description: describe(e.Summary, e.Body),
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		Location:    e.Location,
	}
}
