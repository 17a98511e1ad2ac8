package stubserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mlops-grupo21/ratingdash/internal/movie"
	"github.com/mlops-grupo21/ratingdash/internal/payload"
)

func newTestServer(t *testing.T, opts Options) (*Server, *httptest.Server) {
	t.Helper()
	s := New(opts)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func TestHealthHandler(t *testing.T) {
	s, ts := newTestServer(t, Options{})

	for _, want := range []string{"healthy", "degraded"} {
		s.SetHealthStatus(want)
		resp, err := http.Get(ts.URL + "/health")
		if err != nil {
			t.Fatalf("GET /health: %v", err)
		}
		var body struct{ Status string }
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK || body.Status != want {
			t.Fatalf("GET /health = %d %q, want 200 %q", resp.StatusCode, body.Status, want)
		}
		if resp.Header.Get("Content-Type") != "application/json" {
			t.Fatalf("Content-Type = %q", resp.Header.Get("Content-Type"))
		}
	}
}

func TestPredictHandlerClassifiesByBand(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	ratings := []float64{2.0, 5.0, 7.5, 8.0, 9.1}
	want := []string{"Poor", "Average", "Good", "Good", "Excellent"}

	var fs []movie.Features
	for _, r := range ratings {
		f := movie.Defaults()
		f.AverageRating = r
		fs = append(fs, f)
	}
	body, _ := json.Marshal(payload.BuildBatch(fs...))

	resp, err := http.Post(ts.URL+"/predict", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /predict: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	raw := new(bytes.Buffer)
	if _, err := raw.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	var got struct {
		Predictions []prediction `json:"predictions"`
		ModelName   string       `json:"model_name"`
	}
	if err := json.Unmarshal(raw.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Predictions) != len(want) {
		t.Fatalf("got %d predictions, want %d", len(got.Predictions), len(want))
	}
	for i, p := range got.Predictions {
		if p.RatingCategory != want[i] {
			t.Errorf("rating %.1f -> %q, want %q", ratings[i], p.RatingCategory, want[i])
		}
		if p.Confidence < 0.55 || p.Confidence > 0.95 {
			t.Errorf("confidence %v out of range", p.Confidence)
		}
	}
	if got.ModelName != DefaultOptions().ModelName {
		t.Errorf("model_name = %q", got.ModelName)
	}
	if !strings.Contains(raw.String(), `"model_metrics":{"accuracy":1,"f1_score":1}`) {
		t.Errorf("metrics not in declared order: %s", raw.String())
	}
}

func TestPredictHandlerRejectsInvalidRequests(t *testing.T) {
	_, ts := newTestServer(t, Options{})

	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"empty movies", `{"movies":[]}`},
		{"unknown field", `{"movies":[],"extra":1}`},
		{"out of range", `{"movies":[{"startYear":1800,"runtimeMinutes":120,"numVotes":10,"averageRating":7,"runtime_category":"Standard (90-120m)","popularity":"Low"}]}`},
		{"bad category", `{"movies":[{"startYear":2000,"runtimeMinutes":120,"numVotes":10,"averageRating":7,"runtime_category":"Epic","popularity":"Low"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/predict", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST /predict: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", resp.StatusCode)
			}
			var detail struct{ Detail string }
			if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil || detail.Detail == "" {
				t.Fatalf("missing detail: %v", err)
			}
		})
	}
}

func TestModelInfoHandler(t *testing.T) {
	_, ts := newTestServer(t, Options{ModelName: "custom", Metrics: []Metric{{Key: "recall", Value: 0.5}}})

	resp, err := http.Get(ts.URL + "/model-info")
	if err != nil {
		t.Fatalf("GET /model-info: %v", err)
	}
	defer resp.Body.Close()

	var info struct {
		ModelName string             `json:"model_name"`
		Metrics   map[string]float64 `json:"metrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if info.ModelName != "custom" || info.Metrics["recall"] != 0.5 {
		t.Fatalf("model info = %+v", info)
	}
}

func TestUnknownRoute(t *testing.T) {
	_, ts := newTestServer(t, Options{})
	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		rating float64
		want   float64
	}{
		{4, 0.55},
		{5, 0.95},
		{7.5, 0.75},
		{10, 0.95},
	}
	for _, tt := range tests {
		if got := Confidence(tt.rating); got != tt.want {
			t.Errorf("Confidence(%v) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(&buf)
	defer SetLogger(nil)

	_, ts := newTestServer(t, Options{})
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	// Close waits for the handler chain, so the log line has been written.
	ts.Close()

	if !strings.Contains(buf.String(), "GET /health 200") {
		t.Fatalf("log = %q", buf.String())
	}
}
