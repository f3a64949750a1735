package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"finitefield.org/academy-web/internal/seo"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("unexpected read timeout: %s", cfg.Server.ReadTimeout)
	}
	defaults := seo.DefaultSite()
	if cfg.Site.BaseURL != defaults.BaseURL {
		t.Errorf("expected default base url %s, got %s", defaults.BaseURL, cfg.Site.BaseURL)
	}
	if cfg.Site.DefaultKeywords.String() != defaults.DefaultKeywords.String() {
		t.Errorf("unexpected default keywords %q", cfg.Site.DefaultKeywords.String())
	}
	if cfg.Pages.File != defaultPagesFile {
		t.Errorf("expected pages file %s, got %s", defaultPagesFile, cfg.Pages.File)
	}
	if cfg.Catalog.BaseURL != "" {
		t.Errorf("expected catalog disabled by default, got %s", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.CacheTTL != defaultCatalogCacheTTL {
		t.Errorf("unexpected cache ttl: %s", cfg.Catalog.CacheTTL)
	}
}

func TestLoadWithOverrides(t *testing.T) {
	env := map[string]string{
		"PORT":                      "9000",
		"WEB_SERVER_WRITE_TIMEOUT":  "20s",
		"WEB_SITE_BASE_URL":         "https://staging.nexoratech.in/",
		"WEB_SITE_NAME":             "Nexora Staging",
		"WEB_SITE_DEFAULT_KEYWORDS": "go, , cloud",
		"WEB_CATALOG_BASE_URL":      "https://api.nexoratech.in/v1",
		"WEB_CATALOG_TIMEOUT":       "2s",
		"WEB_CATALOG_CACHE_TTL":     "0s",
		"WEB_SERVER_IDLE_TIMEOUT":   "not-a-duration",
	}
	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9000" {
		t.Errorf("expected PORT fallback 9000, got %s", cfg.Server.Port)
	}
	if cfg.Server.WriteTimeout != 20*time.Second {
		t.Errorf("unexpected write timeout %s", cfg.Server.WriteTimeout)
	}
	if cfg.Server.IdleTimeout != defaultIdleTimeout {
		t.Errorf("invalid duration should keep default, got %s", cfg.Server.IdleTimeout)
	}
	if cfg.Site.BaseURL != "https://staging.nexoratech.in" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Site.BaseURL)
	}
	if got := cfg.Site.DefaultKeywords.String(); got != "go, cloud" {
		t.Errorf("unexpected keywords %q", got)
	}
	if cfg.Catalog.Timeout != 2*time.Second || cfg.Catalog.CacheTTL != 0 {
		t.Errorf("unexpected catalog config %+v", cfg.Catalog)
	}
}

func TestLoadPortPrecedence(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{"PORT": "9000", "WEB_SERVER_PORT": "7000"}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "7000" {
		t.Fatalf("expected WEB_SERVER_PORT to win, got %s", cfg.Server.Port)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"WEB_SITE_BASE_URL":    "www.nexoratech.in",
		"WEB_CATALOG_BASE_URL": "ftp://backend",
	}
	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := verr.Fields()
	if len(fields) != 2 || fields[0] != "Site.BaseURL" || fields[1] != "Catalog.BaseURL" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestLoadDotEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	content := "# local overrides\nWEB_SITE_NAME=\"From Dotenv\"\nexport WEB_SERVER_PORT=7070\nWEB_PAGES_FILE=pages.yaml\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	cfg, err := Load(context.Background(), WithEnvFile(file), WithoutSystemEnv(), WithEnvMap(map[string]string{"WEB_PAGES_FILE": "override.yaml"}))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site.Name != "From Dotenv" {
		t.Errorf("expected dotenv site name, got %q", cfg.Site.Name)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("expected dotenv port, got %s", cfg.Server.Port)
	}
	if cfg.Pages.File != "override.yaml" {
		t.Errorf("expected env map to win over dotenv, got %s", cfg.Pages.File)
	}
}

func TestLoadMissingDotEnvIsIgnored(t *testing.T) {
	_, err := Load(context.Background(), WithEnvFile(filepath.Join(t.TempDir(), "absent.env")), WithoutSystemEnv())
	if err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}
