package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := Load(context.Background(), WithEnvMap(map[string]string{}), WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second || cfg.Server.IdleTimeout != 60*time.Second {
		t.Errorf("unexpected timeouts: %+v", cfg.Server)
	}
	if cfg.Site.BaseURL != defaultBaseURL {
		t.Errorf("unexpected base url %s", cfg.Site.BaseURL)
	}
	if !slices.Equal(cfg.Site.Locales, []string{"en", "fr", "es", "ar"}) {
		t.Errorf("unexpected locales %v", cfg.Site.Locales)
	}
	if cfg.Sheets.SpreadsheetID != defaultSpreadsheetID || cfg.Sheets.EventsTab != "Festivals" {
		t.Errorf("unexpected sheets config %+v", cfg.Sheets)
	}
	if cfg.Sheets.Credentials != "" {
		t.Errorf("expected no credentials, got %q", cfg.Sheets.Credentials)
	}
	if cfg.Content.CacheTTL != 5*time.Minute {
		t.Errorf("unexpected cache ttl %s", cfg.Content.CacheTTL)
	}
	if cfg.Snapshot.DSN != "" {
		t.Errorf("expected snapshot disabled, got %q", cfg.Snapshot.DSN)
	}
}

func TestLoadWithOverridesAndSecrets(t *testing.T) {
	env := map[string]string{
		"PORT":                          "9000",
		"SITE_PORT":                     "9090",
		"SITE_BASE_URL":                 "https://example.ma/",
		"SITE_DEFAULT_LOCALE":           "FR",
		"SITE_LOCALES":                  "fr, ar",
		"GOOGLE_SHEET_ID":               "sheet-123",
		"GOOGLE_SERVICE_ACCOUNT_BASE64": "sm://sheets-sa",
		"SNAPSHOT_DSN":                  "sqlite://snap.db",
		"CONTENT_CACHE_TTL":             "0s",
	}

	var resolved []string
	resolver := SecretResolverFunc(func(ctx context.Context, ref string) (string, error) {
		resolved = append(resolved, ref)
		return "ZXlKMGVYQmxJam9p", nil
	})

	cfg, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""), WithSecretResolver(resolver))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("SITE_PORT should win over PORT, got %s", cfg.Server.Port)
	}
	if cfg.Site.BaseURL != "https://example.ma" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.Site.BaseURL)
	}
	if cfg.Site.DefaultLocale != "fr" || !slices.Equal(cfg.Site.Locales, []string{"fr", "ar"}) {
		t.Errorf("unexpected site config %+v", cfg.Site)
	}
	if cfg.Sheets.Credentials != "ZXlKMGVYQmxJam9p" {
		t.Errorf("expected resolved credentials, got %q", cfg.Sheets.Credentials)
	}
	if len(resolved) != 1 || resolved[0] != "secret://sheets-sa" {
		t.Errorf("expected normalised secret ref, got %v", resolved)
	}
	if cfg.Snapshot.DSN != "sqlite://snap.db" {
		t.Errorf("unexpected snapshot dsn %q", cfg.Snapshot.DSN)
	}
	if cfg.Content.CacheTTL != 0 {
		t.Errorf("expected cache disabled, got %s", cfg.Content.CacheTTL)
	}
}

func TestLoadFailsWithoutSecretResolver(t *testing.T) {
	env := map[string]string{"GOOGLE_SERVICE_ACCOUNT_BASE64": "secret://sheets-sa"}

	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var secretErr *SecretError
	if !errors.As(err, &secretErr) {
		t.Fatalf("expected SecretError, got %v", err)
	}
	if !errors.Is(err, errSecretResolverNotConfigured) {
		t.Fatalf("expected unwrap to resolver error, got %v", err)
	}
}

func TestLoadValidation(t *testing.T) {
	env := map[string]string{
		"SITE_PORT":           "http",
		"SITE_BASE_URL":       "/relative",
		"SITE_DEFAULT_LOCALE": "de",
		"CONTENT_CACHE_TTL":   "-1m",
	}
	_, err := Load(context.Background(), WithEnvMap(env), WithoutSystemEnv(), WithEnvFile(""))
	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"Server.Port", "Site.BaseURL", "Site.DefaultLocale", "Content.CacheTTL"}
	if !slices.Equal(validation.Fields(), want) {
		t.Fatalf("expected fields %v, got %v", want, validation.Fields())
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# local\nexport SITE_NAME=\"Slow Morocco\"\nSHEETS_EVENTS_TAB=Events\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := Load(context.Background(),
		WithEnvMap(map[string]string{"SHEETS_EVENTS_TAB": "Override"}),
		WithoutSystemEnv(),
		WithEnvFile(path),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Site.Name != "Slow Morocco" {
		t.Errorf("expected dotenv value, got %q", cfg.Site.Name)
	}
	if cfg.Sheets.EventsTab != "Override" {
		t.Errorf("env map should win over dotenv, got %q", cfg.Sheets.EventsTab)
	}
}
