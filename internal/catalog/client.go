// Package catalog reads course, job and event records from the training
// backend's REST API.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when the backend has no record for the id.
	ErrNotFound = errors.New("catalog: record not found")
	// ErrDisabled is returned when no backend base URL is configured.
	ErrDisabled = errors.New("catalog: backend not configured")
)

const (
	defaultTimeout  = 5 * time.Second
	defaultCacheTTL = 5 * time.Minute
	maxBodyBytes    = 1 << 20
)

// Recorder observes backend fetches. outcome is one of "hit", "ok",
// "not_found" or "error".
type Recorder interface {
	CatalogFetch(kind, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) CatalogFetch(string, string) {}

// Client fetches records over HTTP and caches response bodies in memory.
type Client struct {
	baseURL  string
	http     *http.Client
	ttl      time.Duration
	now      func() time.Time
	recorder Recorder

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	body    []byte
	expires time.Time
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithCacheTTL sets how long successful responses are reused. Zero disables caching.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) {
		c.ttl = d
	}
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRecorder attaches a fetch observer.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		if r != nil {
			c.recorder = r
		}
	}
}

// New constructs a Client. An empty baseURL yields a client whose lookups
// return ErrDisabled.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		ttl:      defaultCacheTTL,
		now:      time.Now,
		recorder: nopRecorder{},
		cache:    map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether a backend is configured.
func (c *Client) Enabled() bool { return c != nil && c.baseURL != "" }

func (c *Client) get(ctx context.Context, kind, id string) ([]byte, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	id = strings.TrimSpace(id)
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, "/?#") {
		return nil, ErrNotFound
	}
	key := kind + "|" + id
	if body, ok := c.cached(key); ok {
		c.recorder.CatalogFetch(kind, "hit")
		return body, nil
	}

	body, err := c.fetch(ctx, kind, id)
	switch {
	case errors.Is(err, ErrNotFound):
		c.recorder.CatalogFetch(kind, "not_found")
		return nil, err
	case err != nil:
		c.recorder.CatalogFetch(kind, "error")
		return nil, err
	}
	c.recorder.CatalogFetch(kind, "ok")
	c.store(key, body)
	return body, nil
}

func (c *Client) fetch(ctx context.Context, kind, id string) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, kind, id)
	if err != nil {
		return nil, fmt.Errorf("catalog: build %s url: %w", kind, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: get %s/%s: %w", kind, id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("catalog: %s/%s remote status %d", kind, id, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s/%s: %w", kind, id, err)
	}
	return body, nil
}

func (c *Client) cached(key string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expires) {
		c.mu.Lock()
		if current, ok := c.cache[key]; ok && !c.now().Before(current.expires) {
			delete(c.cache, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.body, true
}

func (c *Client) store(key string, body []byte) {
	if c.ttl <= 0 {
		return
	}
	now := c.now()
	c.mu.Lock()
	for k, entry := range c.cache {
		if !now.Before(entry.expires) {
			delete(c.cache, k)
		}
	}
	c.cache[key] = cacheEntry{body: body, expires: now.Add(c.ttl)}
	c.mu.Unlock()
}
