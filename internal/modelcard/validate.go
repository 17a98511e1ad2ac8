package modelcard

import (
	"fmt"

	cdx "github.com/CycloneDX/cyclonedx-go"
)

// Validate lists what a model card BOM is missing. Performance metrics are
// optional unless strict is set, since the service may not report any.
func Validate(bom *cdx.BOM, strict bool) []string {
	if bom == nil {
		return []string{"BOM is nil"}
	}
	if bom.Metadata == nil || bom.Metadata.Component == nil {
		return []string{"BOM has no metadata.component"}
	}

	comp := bom.Metadata.Component
	var errs []string
	if comp.Name == "" {
		errs = append(errs, "metadata.component: name is required")
	}
	if comp.Type != cdx.ComponentTypeMachineLearningModel {
		errs = append(errs, fmt.Sprintf("metadata.component %q: type is %q, want %q", comp.Name, comp.Type, cdx.ComponentTypeMachineLearningModel))
	}
	card := comp.ModelCard
	if card == nil {
		return append(errs, fmt.Sprintf("metadata.component %q: missing modelCard", comp.Name))
	}
	mp := card.ModelParameters
	if mp == nil || mp.Task == "" {
		errs = append(errs, fmt.Sprintf("metadata.component %q: missing task", comp.Name))
	}
	if mp == nil || mp.Inputs == nil || len(*mp.Inputs) == 0 {
		errs = append(errs, fmt.Sprintf("metadata.component %q: missing inputs", comp.Name))
	}
	if mp == nil || mp.Outputs == nil || len(*mp.Outputs) == 0 {
		errs = append(errs, fmt.Sprintf("metadata.component %q: missing outputs", comp.Name))
	}
	if strict {
		qa := card.QuantitativeAnalysis
		if qa == nil || qa.PerformanceMetrics == nil || len(*qa.PerformanceMetrics) == 0 {
			errs = append(errs, fmt.Sprintf("metadata.component %q: missing performance metrics (strict)", comp.Name))
		}
	}
	return errs
}
