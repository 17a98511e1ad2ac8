// Package modelcard turns the service's model description into a CycloneDX
// ML model card.
package modelcard

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/google/uuid"

	"github.com/mlops-grupo21/ratingdash/internal/interpret"
	"github.com/mlops-grupo21/ratingdash/internal/movie"
)

const (
	ToolVendor = "mlops-grupo21"
	ToolName   = "ratingdash"

	propertyPrefix = "ratingdash:"
)

var (
	nameKeys    = []string{"model_name", "name", "model"}
	typeKeys    = []string{"model_type", "type", "algorithm"}
	metricsKeys = []string{"metrics", "model_metrics"}
)

// Info is what the model card needs from a /model-info body.
type Info struct {
	Name    string
	Type    string
	Metrics []interpret.MetricRow
	// Extra holds the remaining scalar fields, sorted by key.
	Extra []cdx.Property
}

// ParseInfo extracts Info from an opaque model-info object. Unknown fields
// are kept as properties; nested values other than metrics are skipped.
func ParseInfo(raw json.RawMessage) (Info, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Info{}, fmt.Errorf("model info is not a JSON object: %w", err)
	}

	var info Info
	used := map[string]bool{}
	info.Name = firstString(fields, nameKeys, used)
	info.Type = firstString(fields, typeKeys, used)

	for _, k := range metricsKeys {
		v, ok := fields[k]
		if !ok {
			continue
		}
		rows, err := interpret.DecodeMetrics(v)
		if err != nil {
			return Info{}, fmt.Errorf("model info %s: %w", k, err)
		}
		info.Metrics = rows
		used[k] = true
		break
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !used[k] {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		if s, ok := scalarString(fields[k]); ok {
			info.Extra = append(info.Extra, cdx.Property{Name: propertyPrefix + k, Value: s})
		}
	}
	return info, nil
}

func firstString(fields map[string]json.RawMessage, keys []string, used map[string]bool) string {
	for _, k := range keys {
		var s string
		if v, ok := fields[k]; ok && json.Unmarshal(v, &s) == nil && strings.TrimSpace(s) != "" {
			used[k] = true
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func scalarString(v json.RawMessage) (string, bool) {
	var x any
	if err := json.Unmarshal(v, &x); err != nil {
		return "", false
	}
	switch t := x.(type) {
	case string:
		return t, true
	case float64, bool:
		return strings.TrimSpace(string(v)), true
	default:
		return "", false
	}
}

// Options controls the document metadata.
type Options struct {
	ServiceURL  string
	ToolVersion string
	// Now is used for the metadata timestamp; zero means time.Now.
	Now time.Time
}

// Build creates a BOM whose metadata component is the deployed model.
func Build(info Info, opts Options) *cdx.BOM {
	name := info.Name
	if name == "" {
		name = "rating-model"
	}
	logf(name, "model card start")

	bom := cdx.NewBOM()
	bom.SerialNumber = "urn:uuid:" + uuid.New().String()

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	version := opts.ToolVersion
	if version == "" {
		version = ToolVersion()
	}

	bom.Metadata = &cdx.Metadata{
		Timestamp: now.Format(time.RFC3339),
		Tools: &cdx.ToolsChoice{
			Components: &[]cdx.Component{{
				Type:         cdx.ComponentTypeApplication,
				Manufacturer: &cdx.OrganizationalEntity{Name: ToolVendor},
				Name:         ToolName,
				Version:      version,
			}},
		},
		Component: modelComponent(name, info, opts.ServiceURL),
	}

	logf(name, "model card ok (%d metrics)", len(info.Metrics))
	return bom
}

func modelComponent(name string, info Info, serviceURL string) *cdx.Component {
	comp := &cdx.Component{
		BOMRef:    "model:" + name,
		Type:      cdx.ComponentTypeMachineLearningModel,
		Name:      name,
		ModelCard: modelCard(info),
	}

	props := slices.Clone(info.Extra)
	if serviceURL != "" {
		props = append(props, cdx.Property{Name: propertyPrefix + "serviceURL", Value: serviceURL})
	}
	for _, c := range interpret.Categories {
		props = append(props, cdx.Property{Name: propertyPrefix + "category:" + string(c), Value: c.Band()})
	}
	comp.Properties = &props
	return comp
}

func modelCard(info Info) *cdx.MLModelCard {
	inputs := make([]cdx.MLInputOutputParameters, 0, len(movie.Fields))
	for _, f := range movie.Fields {
		format := "number"
		if !f.Numeric() {
			format = "string"
		}
		inputs = append(inputs, cdx.MLInputOutputParameters{Format: f.Key.String() + ":" + format})
	}
	outputs := []cdx.MLInputOutputParameters{{Format: "classification-label"}}

	card := &cdx.MLModelCard{
		ModelParameters: &cdx.MLModelParameters{
			Approach:           &cdx.MLModelParametersApproach{Type: cdx.MLModelParametersApproachTypeSupervised},
			Task:               "classification",
			ArchitectureFamily: info.Type,
			Inputs:             &inputs,
			Outputs:            &outputs,
		},
	}

	if len(info.Metrics) > 0 {
		metrics := make([]cdx.MLPerformanceMetric, 0, len(info.Metrics))
		for _, m := range info.Metrics {
			metrics = append(metrics, cdx.MLPerformanceMetric{Type: m.Key, Value: m.ValueText()})
		}
		card.QuantitativeAnalysis = &cdx.MLQuantitativeAnalysis{PerformanceMetrics: &metrics}
	}
	return card
}
