package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"finitefield.org/academy-web/internal/seo"
)

const (
	defaultEnvFile         = ".env"
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultPagesFile       = "content/pages.yaml"
	defaultCatalogTimeout  = 5 * time.Second
	defaultCatalogCacheTTL = 5 * time.Minute
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Site    seo.Site
	Pages   PagesConfig
	Catalog CatalogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// PagesConfig locates the static page registry.
type PagesConfig struct {
	File string
}

// CatalogConfig points at the REST backend serving course, job and event records.
type CatalogConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.LookupEnv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides, environment
// variables and explicit maps, in increasing precedence.
func Load(_ context.Context, opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	defaults := seo.DefaultSite()
	cfg := Config{
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "WEB_SERVER_PORT", stringWithDefault(lookup, "PORT", defaultPort)),
			ReadTimeout:  durationWithDefault(lookup, "WEB_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "WEB_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "WEB_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Site: seo.Site{
			BaseURL:            strings.TrimRight(stringWithDefault(lookup, "WEB_SITE_BASE_URL", defaults.BaseURL), "/"),
			Name:               stringWithDefault(lookup, "WEB_SITE_NAME", defaults.Name),
			DefaultTitle:       stringWithDefault(lookup, "WEB_SITE_DEFAULT_TITLE", defaults.DefaultTitle),
			DefaultDescription: stringWithDefault(lookup, "WEB_SITE_DEFAULT_DESCRIPTION", defaults.DefaultDescription),
			DefaultKeywords:    keywordsWithDefault(lookup, "WEB_SITE_DEFAULT_KEYWORDS", defaults.DefaultKeywords),
			DefaultImage:       stringWithDefault(lookup, "WEB_SITE_DEFAULT_IMAGE", defaults.DefaultImage),
			TwitterHandle:      stringWithDefault(lookup, "WEB_SITE_TWITTER_HANDLE", defaults.TwitterHandle),
			Locale:             stringWithDefault(lookup, "WEB_SITE_LOCALE", defaults.Locale),
			Organization:       defaults.Organization,
		},
		Pages: PagesConfig{
			File: stringWithDefault(lookup, "WEB_PAGES_FILE", defaultPagesFile),
		},
		Catalog: CatalogConfig{
			BaseURL:  strings.TrimSpace(stringWithDefault(lookup, "WEB_CATALOG_BASE_URL", "")),
			Timeout:  durationWithDefault(lookup, "WEB_CATALOG_TIMEOUT", defaultCatalogTimeout),
			CacheTTL: durationWithDefault(lookup, "WEB_CATALOG_CACHE_TTL", defaultCatalogCacheTTL),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if cfg.Server.Port == "" {
		missing = append(missing, "Server.Port")
	}
	if !isAbsoluteHTTPURL(cfg.Site.BaseURL) {
		missing = append(missing, "Site.BaseURL")
	}
	if strings.TrimSpace(cfg.Pages.File) == "" {
		missing = append(missing, "Pages.File")
	}
	if cfg.Catalog.BaseURL != "" && !isAbsoluteHTTPURL(cfg.Catalog.BaseURL) {
		missing = append(missing, "Catalog.BaseURL")
	}
	if cfg.Catalog.Timeout <= 0 {
		missing = append(missing, "Catalog.Timeout")
	}
	if cfg.Catalog.CacheTTL < 0 {
		missing = append(missing, "Catalog.CacheTTL")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", path, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}

func keywordsWithDefault(lookup func(string) (string, bool), key string, fallback seo.Keywords) seo.Keywords {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	parts := strings.Split(raw, ",")
	out := make(seo.Keywords, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
