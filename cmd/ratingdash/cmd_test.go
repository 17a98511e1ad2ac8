package cmd

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/mlops-grupo21/ratingdash/internal/apperr"
	"github.com/mlops-grupo21/ratingdash/internal/bomio"
	"github.com/mlops-grupo21/ratingdash/internal/stubserver"
)

func startStub(t *testing.T) (*stubserver.Server, string) {
	t.Helper()
	stub := stubserver.New(stubserver.Options{})
	ts := httptest.NewServer(stub.Handler())
	t.Cleanup(ts.Close)
	return stub, ts.URL
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPredictCommandPlain(t *testing.T) {
	_, url := startStub(t)

	out, err := execute(t, "predict", "--api-url", url, "--rating", "9", "--votes", "250000", "--output", "plain", "--log-level", "standard")
	if err != nil {
		t.Fatalf("predict: %v\n%s", err, out)
	}
	want := "movie 1: Excellent (95.00%)\nmodel: stub_rating_bands_v1\nAccuracy: 1.0000\nF1 Score: 1.0000\n"
	if !strings.HasSuffix(out, want) {
		t.Fatalf("output = %q, want suffix %q", out, want)
	}
}

func TestPredictCommandRejectsInvalidField(t *testing.T) {
	_, url := startStub(t)

	_, err := execute(t, "predict", "--api-url", url, "--rating", "11", "--output", "plain")
	if !apperr.IsUser(err) {
		t.Fatalf("err = %v, want a user error", err)
	}
	if !strings.Contains(err.Error(), "--rating") {
		t.Fatalf("err = %v, want the flag name", err)
	}
}

func TestHealthCommand(t *testing.T) {
	stub, url := startStub(t)
	stub.SetHealthStatus("degraded")

	out, err := execute(t, "health", "--api-url", url)
	if err != nil {
		t.Fatalf("degraded health should not fail the command: %v", err)
	}
	if !strings.Contains(out, "reports status: degraded") {
		t.Fatalf("output = %q", out)
	}

	ts := httptest.NewServer(nil)
	closed := ts.URL
	ts.Close()
	_, err = execute(t, "health", "--api-url", closed)
	if !errors.Is(err, apperr.ErrActionFailed) {
		t.Fatalf("err = %v, want ErrActionFailed", err)
	}
}

func TestResolveLogLevel(t *testing.T) {
	defer viper.Set("test.log-level", nil)

	viper.Set("test.log-level", " DEBUG ")
	if got, err := resolveLogLevel("test"); err != nil || got != "debug" {
		t.Fatalf("resolveLogLevel = %q, %v", got, err)
	}
	viper.Set("test.log-level", "loud")
	if _, err := resolveLogLevel("test"); !apperr.IsUser(err) {
		t.Fatalf("err = %v, want user error", err)
	}
}

func TestResolveBaseURL(t *testing.T) {
	// A nil override falls back to the flag, env and config layers.
	defer viper.Set("api.url", nil)

	viper.Set("api.url", "https://api.example.com/")
	if got, err := resolveBaseURL(); err != nil || got != "https://api.example.com" {
		t.Fatalf("resolveBaseURL = %q, %v", got, err)
	}
	viper.Set("api.url", "localhost:8000")
	if _, err := resolveBaseURL(); !apperr.IsUser(err) {
		t.Fatalf("err = %v, want user error", err)
	}
}

func TestModelInfoCommandWritesModelCard(t *testing.T) {
	_, url := startStub(t)
	bomPath := filepath.Join(t.TempDir(), "model.json")

	out, err := execute(t, "model-info", "--api-url", url, "--output", "yaml", "--bom", bomPath, "--strict")
	if err != nil {
		t.Fatalf("model-info: %v\n%s", err, out)
	}
	if !strings.Contains(out, "model_name: stub_rating_bands_v1") {
		t.Fatalf("yaml output = %q", out)
	}

	bom, err := bomio.ReadBOM(bomPath, "auto")
	if err != nil {
		t.Fatalf("ReadBOM: %v", err)
	}
	if bom.Metadata.Component.Name != "stub_rating_bands_v1" {
		t.Fatalf("component name = %q", bom.Metadata.Component.Name)
	}
}
