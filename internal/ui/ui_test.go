package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mlops-grupo21/ratingdash/internal/movie"
)

func TestColorAppliesANSICodes(t *testing.T) {
	got := Color("hello", FgGreen)
	want := FgGreen + "hello" + Reset
	if got != want {
		t.Fatalf("Color() = %q, want %q", got, want)
	}
}

func TestColorDisabled(t *testing.T) {
	Init(true)
	defer Init(false)

	if got := Color("hello", FgGreen); got != "hello" {
		t.Fatalf("Color() with colors off = %q, want plain text", got)
	}
	if ColorEnabled() {
		t.Fatal("ColorEnabled() = true after Init(true)")
	}
}

func TestPredictionUI_PrintResult(t *testing.T) {
	conf := "87.00%"
	tests := []struct {
		name    string
		view    ResultView
		quiet   bool
		showRaw bool
		want    []string
		notWant []string
	}{
		{
			name: "single prediction with metrics",
			view: ResultView{
				Predictions: []PredictionView{{Category: "Good", Icon: "🟢", Band: "rating 6-8", Confidence: conf}},
				ModelName:   "rf_v1",
				Metrics:     []MetricView{{Name: "Accuracy", Value: "0.8500"}, {Name: "F1 Score", Value: "0.9100"}},
				Raw:         `{"predictions":[]}`,
			},
			want:    []string{"Prediction Result", "Good", "87.00%", "rf_v1", "Model Metrics", "Accuracy", "0.8500", "F1 Score"},
			notWant: []string{"Full Response", "Movie 1"},
		},
		{
			name: "no confidence and no metrics",
			view: ResultView{
				Predictions: []PredictionView{{Category: "Poor", Icon: "🔴"}},
				ModelName:   "N/A",
			},
			want:    []string{"Poor", "N/A"},
			notWant: []string{"Confidence", "Model Metrics"},
		},
		{
			name: "batch numbers each movie",
			view: ResultView{
				Predictions: []PredictionView{{Index: 0, Category: "Good"}, {Index: 1, Category: "Excellent"}},
				ModelName:   "m",
			},
			want: []string{"Movie 1", "Movie 2", "Excellent"},
		},
		{
			name:    "raw response on request",
			view:    ResultView{Predictions: []PredictionView{{Category: "Good"}}, ModelName: "m", Raw: `{"x":1}`},
			showRaw: true,
			want:    []string{"Full Response", `{"x":1}`},
		},
		{
			name:    "quiet hides success",
			view:    ResultView{Predictions: []PredictionView{{Category: "Good"}}, ModelName: "m"},
			quiet:   true,
			notWant: []string{"Good"},
		},
		{
			name:  "quiet still shows failures",
			view:  ResultView{Failure: &FailureView{Kind: "timeout", Title: "Timeout", Message: "the request took too long"}},
			quiet: true,
			want:  []string{"⏱", "Timeout", "the request took too long"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPredictionUI(&buf, tt.quiet, tt.showRaw).PrintResult(tt.view)
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output unexpectedly contains %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestPredictionUI_PrintFailureIcons(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{"timeout", "⏱"},
		{"connection_failure", "🔌"},
		{"malformed_response", "⚠"},
		{"http_error", "✗"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		NewPredictionUI(&buf, false, false).PrintFailure(FailureView{Kind: tt.kind, Title: "T", Message: "M"})
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("%s: output missing %q:\n%s", tt.kind, tt.want, buf.String())
		}
	}
}

func TestPredictionUI_PrintHealthWarningIsBoxed(t *testing.T) {
	var buf bytes.Buffer
	NewPredictionUI(&buf, true, false).PrintHealth(HealthView{State: HealthWarn, Status: "degraded", URL: "http://x"})
	out := buf.String()
	if !strings.Contains(out, "╭") {
		t.Fatalf("warning state is not boxed:\n%s", out)
	}
	if !strings.Contains(out, `until it reports "healthy"`) {
		t.Fatalf("warning hint missing:\n%s", out)
	}
}

func TestPredictionUI_PrintHealth(t *testing.T) {
	tests := []struct {
		name string
		view HealthView
		want string
	}{
		{"healthy", HealthView{State: HealthOK, Status: "healthy", URL: "http://x"}, "API is healthy"},
		{"degraded", HealthView{State: HealthWarn, Status: "starting", URL: "http://x"}, "reports status: starting"},
		{"down", HealthView{State: HealthDown, URL: "http://x", Failure: &FailureView{Title: "Connection error", Message: "refused"}}, "Connection error: refused"},
		{"down without detail", HealthView{State: HealthDown, URL: "http://x"}, "API unreachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPredictionUI(&buf, false, false).PrintHealth(tt.view)
			if !strings.Contains(buf.String(), tt.want) {
				t.Fatalf("output missing %q:\n%s", tt.want, buf.String())
			}
			if !strings.Contains(buf.String(), "http://x") {
				t.Fatalf("output missing URL:\n%s", buf.String())
			}
		})
	}
}

func TestPredictionUI_PrintModelInfo(t *testing.T) {
	var buf bytes.Buffer
	p := NewPredictionUI(&buf, false, false)
	p.PrintModelInfo(ModelInfoView{Body: "{\n  \"model\": \"rf\"\n}"})
	if !strings.Contains(buf.String(), `"model": "rf"`) {
		t.Fatalf("model info body missing:\n%s", buf.String())
	}

	buf.Reset()
	p.PrintModelInfo(ModelInfoView{Failure: &FailureView{Kind: "http_error", Title: "API error (404)", Message: "not found"}})
	if !strings.Contains(buf.String(), "API error (404)") {
		t.Fatalf("failure missing:\n%s", buf.String())
	}
}

func TestPredictionUI_PrintSimpleResult(t *testing.T) {
	var buf bytes.Buffer
	NewPredictionUI(&buf, false, false).PrintSimpleResult(ResultView{
		Predictions: []PredictionView{{Index: 0, Category: "Good", Confidence: "87.00%"}},
		ModelName:   "rf_v1",
		Metrics:     []MetricView{{Name: "Accuracy", Value: "0.8500"}},
	})
	want := "movie 1: Good (87.00%)\nmodel: rf_v1\nAccuracy: 0.8500\n"
	if buf.String() != want {
		t.Fatalf("PrintSimpleResult() = %q, want %q", buf.String(), want)
	}
}

func TestPrintLegendAndFields(t *testing.T) {
	var buf bytes.Buffer
	p := NewPredictionUI(&buf, false, false)
	p.PrintLegend([]LegendEntry{{Icon: "🌟", Category: "Excellent", Band: "rating > 8"}})
	p.PrintFields("Current input", FeatureFields(movie.Defaults()))

	out := buf.String()
	for _, w := range []string{"Rating Categories", "Excellent", "rating > 8", "Release year", "2020", "Standard (90-120m)"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
}

func TestFeatureFieldsOrder(t *testing.T) {
	got := FeatureFields(movie.Defaults())
	if len(got) != len(movie.Fields) {
		t.Fatalf("len = %d, want %d", len(got), len(movie.Fields))
	}
	for i, spec := range movie.Fields {
		if got[i].Label != spec.Label {
			t.Errorf("field %d label = %q, want %q", i, got[i].Label, spec.Label)
		}
	}
}

func TestMenuCoversActions(t *testing.T) {
	seen := map[Action]bool{}
	for _, e := range Menu {
		seen[e.Action] = true
	}
	for _, a := range []Action{ActionPredict, ActionEdit, ActionTestConnection, ActionModelInfo, ActionChangeURL, ActionClear, ActionQuit} {
		if !seen[a] {
			t.Errorf("menu is missing %q", a)
		}
	}
}

func TestRunWithSpinnerNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	ran := false
	RunWithSpinner(&buf, "working", func() { ran = true })
	if !ran {
		t.Fatal("fn was not called")
	}
	if buf.Len() != 0 {
		t.Fatalf("non-terminal writer got output %q", buf.String())
	}
}
