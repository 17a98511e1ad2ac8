package interpret

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/mlops-grupo21/ratingdash/internal/apiclient"
)

// HealthyStatus is the only status value treated as healthy.
const HealthyStatus = "healthy"

// HealthState is the ternary connection-test result.
type HealthState int

const (
	HealthHealthy HealthState = iota
	HealthDegraded
	HealthUnreachable
)

func (s HealthState) String() string {
	switch s {
	case HealthHealthy:
		return "healthy"
	case HealthDegraded:
		return "degraded"
	default:
		return "unreachable"
	}
}

// HealthReport distinguishes "reachable but reporting unhealthy" from "unreachable".
type HealthReport struct {
	State   HealthState
	Status  string
	Failure *Failure
	Elapsed time.Duration
}

// Health interprets a health-check outcome.
func Health(o apiclient.Outcome[apiclient.Health]) HealthReport {
	if f := FailureOf(o); f != nil {
		return HealthReport{State: HealthUnreachable, Failure: f, Elapsed: o.Elapsed}
	}
	state := HealthDegraded
	if o.Payload.Status == HealthyStatus {
		state = HealthHealthy
	}
	return HealthReport{State: state, Status: o.Payload.Status, Elapsed: o.Elapsed}
}

// ModelInfoReport holds the opaque model description or the failure.
type ModelInfoReport struct {
	Raw     json.RawMessage
	Failure *Failure
}

// OK reports whether model info was retrieved.
func (r ModelInfoReport) OK() bool { return r.Failure == nil }

// Pretty returns the raw JSON indented by two spaces, preserving key order.
func (r ModelInfoReport) Pretty() string { return PrettyJSON(r.Raw) }

// ModelInfo interprets a model-info outcome.
func ModelInfo(o apiclient.Outcome[json.RawMessage]) ModelInfoReport {
	if f := FailureOf(o); f != nil {
		return ModelInfoReport{Failure: f}
	}
	return ModelInfoReport{Raw: o.Payload}
}

// PrettyJSON indents raw; invalid JSON is returned as-is.
func PrettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
