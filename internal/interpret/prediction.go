// Package interpret turns service outcomes into presentation models: the
// prediction result view, the health ternary and the model info view.
// Success payloads are decoded against an explicit schema so that a missing
// or mistyped field fails as a malformed response instead of leaking zero
// values into the display.
package interpret

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mlops-grupo21/ratingdash/internal/apiclient"
)

// NotAvailable is displayed for absent optional text values.
const NotAvailable = "N/A"

// PredictionResult is one classified movie.
type PredictionResult struct {
	Category   RatingCategory
	Confidence *float64 // probability in [0,1], nil when the service omitted it
}

// ConfidenceText renders the confidence as a percentage with two decimals,
// or "" when absent.
func (p PredictionResult) ConfidenceText() string {
	if p.Confidence == nil {
		return ""
	}
	return fmt.Sprintf("%.2f%%", *p.Confidence*100)
}

// MetricRow is one model metric ready for display.
type MetricRow struct {
	Key   string
	Name  string
	Value float64
}

// ValueText renders the value with four decimals.
func (m MetricRow) ValueText() string { return fmt.Sprintf("%.4f", m.Value) }

func (m MetricRow) String() string { return m.Name + ": " + m.ValueText() }

// Presentation is the rendered outcome of a predict action. Exactly one of
// Failure or Predictions is set.
type Presentation struct {
	Failure     *Failure
	Predictions []PredictionResult
	ModelName   string
	Metrics     []MetricRow
	Raw         json.RawMessage
}

// OK reports whether the presentation holds predictions.
func (p Presentation) OK() bool { return p.Failure == nil }

// HasMetrics is false for an absent or empty metrics mapping, so no metrics
// row is laid out.
func (p Presentation) HasMetrics() bool { return len(p.Metrics) > 0 }

// First returns the first prediction; the dashboard always sends one movie.
func (p Presentation) First() (PredictionResult, bool) {
	if len(p.Predictions) == 0 {
		return PredictionResult{}, false
	}
	return p.Predictions[0], true
}

type predictionResponse struct {
	Predictions  *[]predictionEntry `json:"predictions"`
	ModelName    *string            `json:"model_name"`
	ModelMetrics orderedMetrics     `json:"model_metrics"`
}

type predictionEntry struct {
	RatingCategory *string  `json:"rating_category"`
	Confidence     *float64 `json:"confidence"`
}

// Prediction interprets a predict outcome. expected is the number of movies
// in the request; when positive, the response must carry exactly that many
// predictions.
func Prediction(o apiclient.Outcome[json.RawMessage], expected int) Presentation {
	if f := FailureOf(o); f != nil {
		return Presentation{Failure: f}
	}

	p, f := decodePrediction(o.Payload, expected)
	if f != nil {
		logf("", "malformed prediction response: %s", f.Detail)
		return Presentation{Failure: f, Raw: o.Payload}
	}
	p.Raw = o.Payload
	return p
}

func decodePrediction(raw json.RawMessage, expected int) (Presentation, *Failure) {
	var resp predictionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Presentation{}, malformed("%s", describeDecodeError(err))
	}
	if resp.Predictions == nil {
		return Presentation{}, malformed("response has no predictions")
	}
	entries := *resp.Predictions
	if len(entries) == 0 {
		return Presentation{}, malformed("predictions is empty")
	}
	if expected > 0 && len(entries) != expected {
		return Presentation{}, malformed("expected %d prediction(s), got %d", expected, len(entries))
	}

	results := make([]PredictionResult, 0, len(entries))
	for i, e := range entries {
		if e.RatingCategory == nil {
			return Presentation{}, malformed("predictions[%d] has no rating_category", i)
		}
		cat := RatingCategory(*e.RatingCategory)
		if !cat.Valid() {
			return Presentation{}, malformed("predictions[%d].rating_category %q is not one of Poor, Average, Good, Excellent", i, *e.RatingCategory)
		}
		if c := e.Confidence; c != nil && (*c < 0 || *c > 1) {
			return Presentation{}, malformed("predictions[%d].confidence %v is outside [0, 1]", i, *c)
		}
		results = append(results, PredictionResult{Category: cat, Confidence: e.Confidence})
	}

	name := NotAvailable
	if resp.ModelName != nil && strings.TrimSpace(*resp.ModelName) != "" {
		name = *resp.ModelName
	}

	return Presentation{Predictions: results, ModelName: name, Metrics: resp.ModelMetrics.rows()}, nil
}

// HumanizeKey turns "f1_score" into "F1 Score".
func HumanizeKey(key string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(key, "_", " "))
}

type metricEntry struct {
	key   string
	value float64
}

// orderedMetrics decodes a JSON object of numbers keeping the key order the
// service sent.
type orderedMetrics struct {
	entries []metricEntry
}

func (m *orderedMetrics) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		m.entries = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("model_metrics is not an object")
	}

	var entries []metricEntry
	seen := map[string]int{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := kt.(string)

		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return err
		}
		var f float64
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) || json.Unmarshal(v, &f) != nil {
			return fmt.Errorf("model_metrics.%s is not a number", key)
		}
		// A repeated key keeps its first position and its last value.
		if i, ok := seen[key]; ok {
			entries[i].value = f
			continue
		}
		seen[key] = len(entries)
		entries = append(entries, metricEntry{key: key, value: f})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	m.entries = entries
	return nil
}

func (m orderedMetrics) rows() []MetricRow {
	var rows []MetricRow
	for _, e := range m.entries {
		rows = append(rows, MetricRow{Key: e.key, Name: HumanizeKey(e.key), Value: e.value})
	}
	return rows
}

// DecodeMetrics decodes a JSON object of numbers into rows in the order the
// keys appear. null yields no rows.
func DecodeMetrics(raw json.RawMessage) ([]MetricRow, error) {
	var m orderedMetrics
	if err := m.UnmarshalJSON(raw); err != nil {
		return nil, err
	}
	return m.rows(), nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if typeErr.Field == "" {
			return fmt.Sprintf("response is a JSON %s, not an object", typeErr.Value)
		}
		return fmt.Sprintf("%s has the wrong type (%s)", typeErr.Field, typeErr.Value)
	}
	return err.Error()
}
