// Package config resolves the prediction service base URL and the per-call
// timeouts.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is used when neither the environment nor the user supplies one.
const DefaultBaseURL = "http://localhost:8000"

// EnvBaseURL is the environment variable read for the base URL.
const EnvBaseURL = "API_URL"

// Default per-call timeouts.
const (
	DefaultHealthTimeout    = 5 * time.Second
	DefaultModelInfoTimeout = 5 * time.Second
	DefaultPredictTimeout   = 10 * time.Second
)

// Timeouts bounds each of the three service calls.
type Timeouts struct {
	Health    time.Duration
	ModelInfo time.Duration
	Predict   time.Duration
}

// DefaultTimeouts returns 5s/5s/10s.
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Health:    DefaultHealthTimeout,
		ModelInfo: DefaultModelInfoTimeout,
		Predict:   DefaultPredictTimeout,
	}
}

// TimeoutsFromSeconds builds Timeouts from whole seconds; non-positive
// values keep the default for that call.
func TimeoutsFromSeconds(health, modelInfo, predict int) Timeouts {
	t := DefaultTimeouts()
	if health > 0 {
		t.Health = time.Duration(health) * time.Second
	}
	if modelInfo > 0 {
		t.ModelInfo = time.Duration(modelInfo) * time.Second
	}
	if predict > 0 {
		t.Predict = time.Duration(predict) * time.Second
	}
	return t
}

// WithDefaults fills zero durations with the defaults.
func (t Timeouts) WithDefaults() Timeouts {
	d := DefaultTimeouts()
	if t.Health <= 0 {
		t.Health = d.Health
	}
	if t.ModelInfo <= 0 {
		t.ModelInfo = d.ModelInfo
	}
	if t.Predict <= 0 {
		t.Predict = d.Predict
	}
	return t
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables already set. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// BaseURLFromEnv returns API_URL or DefaultBaseURL.
func BaseURLFromEnv() string {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		return NormalizeBaseURL(v)
	}
	return DefaultBaseURL
}

// NormalizeBaseURL trims whitespace and trailing slashes; empty input
// becomes DefaultBaseURL.
func NormalizeBaseURL(raw string) string {
	s := strings.TrimRight(strings.TrimSpace(raw), "/")
	if s == "" {
		return DefaultBaseURL
	}
	return s
}

// ValidateBaseURL accepts absolute http(s) URLs with a host.
func ValidateBaseURL(raw string) error {
	s := strings.TrimSpace(raw)
	if s == "" {
		return fmt.Errorf("API URL is empty")
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("API URL %q: %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API URL %q must start with http:// or https://", s)
	}
	if u.Host == "" {
		return fmt.Errorf("API URL %q has no host", s)
	}
	return nil
}
