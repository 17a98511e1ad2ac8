// Package output renders results as YAML for scripts and reads batch input
// files.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	yaml "go.yaml.in/yaml/v3"

	"github.com/mlops-grupo21/ratingdash/internal/interpret"
	"github.com/mlops-grupo21/ratingdash/internal/movie"
	"github.com/mlops-grupo21/ratingdash/internal/payload"
)

// JSONToYAML converts a JSON document to block-style YAML keeping key order.
func JSONToYAML(raw json.RawMessage) ([]byte, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	clearStyle(&doc)
	return encode(&doc)
}

// JSON is a subset of YAML, so the parsed nodes carry flow and quoting
// styles that would otherwise be echoed back.
func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type predictionDoc struct {
	Index      int      `yaml:"index"`
	Category   string   `yaml:"rating_category"`
	Confidence *float64 `yaml:"confidence,omitempty"`
}

type failureDoc struct {
	Kind       string `yaml:"kind"`
	Title      string `yaml:"title"`
	Message    string `yaml:"message"`
	StatusCode int    `yaml:"status_code,omitempty"`
}

type presentationDoc struct {
	Predictions []predictionDoc `yaml:"predictions,omitempty"`
	ModelName   string          `yaml:"model_name,omitempty"`
	Metrics     *yaml.Node      `yaml:"model_metrics,omitempty"`
	Error       *failureDoc     `yaml:"error,omitempty"`
}

// WritePresentation writes p as YAML. Metrics keep the service's order.
func WritePresentation(w io.Writer, p interpret.Presentation) error {
	doc := presentationDoc{}
	if f := p.Failure; f != nil {
		doc.Error = &failureDoc{Kind: f.Kind.String(), Title: f.Title(), Message: f.Message(), StatusCode: f.StatusCode}
	} else {
		doc.ModelName = p.ModelName
		for i, r := range p.Predictions {
			doc.Predictions = append(doc.Predictions, predictionDoc{Index: i, Category: string(r.Category), Confidence: r.Confidence})
		}
		if p.HasMetrics() {
			doc.Metrics = metricsNode(p.Metrics)
		}
	}

	b, err := encode(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func metricsNode(rows []interpret.MetricRow) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, r := range rows {
		var v yaml.Node
		// Encode never fails for a float.
		_ = v.Encode(r.Value)
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Key},
			&v,
		)
	}
	return n
}

// BatchError reports which movie of a batch file is invalid.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string { return fmt.Sprintf("movies[%d]: %v", e.Index, e.Err) }

func (e *BatchError) Unwrap() error { return e.Err }

// ReadBatch reads a YAML (or JSON) file shaped like a prediction request and
// returns the validated movies in file order.
func ReadBatch(path string) ([]movie.Features, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeBatch(f)
}

// DecodeBatch is ReadBatch for an open reader.
func DecodeBatch(r io.Reader) ([]movie.Features, error) {
	var req payload.PredictionRequest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("batch file is empty")
		}
		return nil, fmt.Errorf("parse batch file: %w", err)
	}
	if req.Len() == 0 {
		return nil, fmt.Errorf("batch file has no movies")
	}

	out := make([]movie.Features, 0, req.Len())
	for i, m := range req.Movies {
		fs := m.Features()
		if float64(fs.StartYear) != m.StartYear || float64(fs.RuntimeMinutes) != m.RuntimeMinutes || float64(fs.NumVotes) != m.NumVotes {
			return nil, &BatchError{Index: i, Err: fmt.Errorf("startYear, runtimeMinutes and numVotes must be whole numbers")}
		}
		if err := fs.Validate(); err != nil {
			return nil, &BatchError{Index: i, Err: err}
		}
		out = append(out, fs)
	}
	return out, nil
}
