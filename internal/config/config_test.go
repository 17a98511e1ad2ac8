package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNormalizeBaseURL(t *testing.T) {
	tcs := []struct{ in, want string }{
		{"", DefaultBaseURL},
		{"   ", DefaultBaseURL},
		{"http://api:8000/", "http://api:8000"},
		{" https://ml.example.com// ", "https://ml.example.com"},
		{"http://api:8000/v1", "http://api:8000/v1"},
	}
	for _, tc := range tcs {
		if got := NormalizeBaseURL(tc.in); got != tc.want {
			t.Fatalf("NormalizeBaseURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidateBaseURL(t *testing.T) {
	ok := []string{"http://localhost:8000", "https://ml.example.com/api"}
	for _, s := range ok {
		if err := ValidateBaseURL(s); err != nil {
			t.Fatalf("ValidateBaseURL(%q) unexpected error: %v", s, err)
		}
	}
	bad := []string{"", "localhost:8000", "ftp://x", "http://", "http://[::1"}
	for _, s := range bad {
		if err := ValidateBaseURL(s); err == nil {
			t.Fatalf("ValidateBaseURL(%q) expected error", s)
		}
	}
}

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "")
	if got := BaseURLFromEnv(); got != DefaultBaseURL {
		t.Fatalf("got %q, want default", got)
	}
	t.Setenv(EnvBaseURL, "http://model-api:9000/")
	if got := BaseURLFromEnv(); got != "http://model-api:9000" {
		t.Fatalf("got %q", got)
	}
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}

func TestLoadDotEnv_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "test.env")
	if err := os.WriteFile(p, []byte("API_URL=http://from-file:1\nRATINGDASH_TEST_ONLY=yes\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv(EnvBaseURL, "http://from-env:2")
	t.Setenv("RATINGDASH_TEST_ONLY", "")
	os.Unsetenv("RATINGDASH_TEST_ONLY")

	if err := LoadDotEnv(p); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv(EnvBaseURL); got != "http://from-env:2" {
		t.Fatalf("existing variable overridden: %q", got)
	}
	if got := os.Getenv("RATINGDASH_TEST_ONLY"); got != "yes" {
		t.Fatalf("file variable not loaded: %q", got)
	}
}

func TestTimeouts(t *testing.T) {
	d := DefaultTimeouts()
	if d.Health != 5*time.Second || d.ModelInfo != 5*time.Second || d.Predict != 10*time.Second {
		t.Fatalf("defaults = %+v", d)
	}
	got := TimeoutsFromSeconds(0, 7, -1)
	if got.Health != 5*time.Second || got.ModelInfo != 7*time.Second || got.Predict != 10*time.Second {
		t.Fatalf("TimeoutsFromSeconds = %+v", got)
	}
	filled := Timeouts{Predict: time.Second}.WithDefaults()
	if filled.Health != 5*time.Second || filled.Predict != time.Second {
		t.Fatalf("WithDefaults = %+v", filled)
	}
}
