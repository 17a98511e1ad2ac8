package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mlops-grupo21/ratingdash/internal/apiclient"
	"github.com/mlops-grupo21/ratingdash/internal/interpret"
	"github.com/mlops-grupo21/ratingdash/internal/movie"
)

func TestJSONToYAMLKeepsOrder(t *testing.T) {
	got, err := JSONToYAML(json.RawMessage(`{"zeta":1,"alpha":{"b":"x","a":[1,2]},"code":"007"}`))
	if err != nil {
		t.Fatalf("JSONToYAML: %v", err)
	}
	want := "zeta: 1\nalpha:\n  b: x\n  a:\n    - 1\n    - 2\ncode: \"007\"\n"
	if string(got) != want {
		t.Fatalf("JSONToYAML() =\n%s\nwant\n%s", got, want)
	}
}

func TestJSONToYAMLInvalid(t *testing.T) {
	if _, err := JSONToYAML(json.RawMessage(`{"a":`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

func TestWritePresentation(t *testing.T) {
	p := interpret.Prediction(apiclient.Success(json.RawMessage(
		`{"predictions":[{"rating_category":"Good","confidence":0.87}],"model_name":"rf_v1","model_metrics":{"precision":0.8,"f1_score":0.91}}`,
	)), 1)

	var buf bytes.Buffer
	if err := WritePresentation(&buf, p); err != nil {
		t.Fatalf("WritePresentation: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"rating_category: Good", "confidence: 0.87", "model_name: rf_v1", "model_metrics:\n  precision: 0.8\n  f1_score: 0.91"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "error:") {
		t.Errorf("success rendered an error:\n%s", out)
	}
}

func TestWritePresentationFailure(t *testing.T) {
	p := interpret.Prediction(apiclient.HTTPError[json.RawMessage](500, "internal error"), 1)

	var buf bytes.Buffer
	if err := WritePresentation(&buf, p); err != nil {
		t.Fatalf("WritePresentation: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"error:", "kind: http_error", "status_code: 500"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "predictions:") {
		t.Errorf("failure rendered predictions:\n%s", out)
	}
}

func TestDecodeBatch(t *testing.T) {
	in := `
movies:
  - startYear: 1994
    runtimeMinutes: 142
    numVotes: 2500000
    averageRating: 9.3
    runtime_category: Long (120-180m)
    popularity: High
  - startYear: 2020
    runtimeMinutes: 95
    numVotes: 800
    averageRating: 4.1
    runtime_category: Standard (90-120m)
    popularity: Very Low
`
	got, err := DecodeBatch(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeBatch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d movies, want 2", len(got))
	}
	if got[0].StartYear != 1994 || got[0].Popularity != movie.PopularityHigh || got[1].AverageRating != 4.1 {
		t.Fatalf("movies = %+v", got)
	}
}

func TestDecodeBatchErrors(t *testing.T) {
	valid := "startYear: 2000\n    runtimeMinutes: 100\n    numVotes: 10\n    averageRating: 5\n    runtime_category: Standard (90-120m)\n    popularity: Low"
	tests := []struct {
		name      string
		in        string
		wantIndex int // -1 when the error is not per-movie
	}{
		{"empty", "", -1},
		{"no movies", "movies: []\n", -1},
		{"unknown field", "movies:\n  - " + valid + "\n    genre: drama\n", -1},
		{"fractional year", "movies:\n  - " + valid + "\n  - " + strings.Replace(valid, "2000", "2000.5", 1) + "\n", 1},
		{"out of range", "movies:\n  - " + strings.Replace(valid, "averageRating: 5", "averageRating: 11", 1) + "\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBatch(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("expected error")
			}
			var be *BatchError
			if tt.wantIndex < 0 {
				if errors.As(err, &be) {
					t.Fatalf("unexpected BatchError %v", err)
				}
				return
			}
			if !errors.As(err, &be) || be.Index != tt.wantIndex {
				t.Fatalf("err = %v, want BatchError at %d", err, tt.wantIndex)
			}
		})
	}
}

func TestReadBatchFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "batch.json")
	body := `{"movies":[{"startYear":2020,"runtimeMinutes":120,"numVotes":1000,"averageRating":7.5,"runtime_category":"Standard (90-120m)","popularity":"Low"}]}`
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadBatch(p)
	if err != nil {
		t.Fatalf("ReadBatch: %v", err)
	}
	if len(got) != 1 || got[0] != movie.Defaults() {
		t.Fatalf("movies = %+v", got)
	}

	if _, err := ReadBatch(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
