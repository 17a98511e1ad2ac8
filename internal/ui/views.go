package ui

// The view types below mirror the interpret package's presentation models
// to avoid circular imports (interpret logs through packages that import ui).

// FailureView is a rendered failure.
type FailureView struct {
	Kind    string
	Title   string
	Message string
}

// PredictionView is one classified movie.
type PredictionView struct {
	Index      int
	Category   string
	Icon       string
	Band       string
	Confidence string // empty when the service sent none
}

// MetricView is one model metric row.
type MetricView struct {
	Name  string
	Value string
}

// ResultView is the outcome of a predict action.
type ResultView struct {
	Failure     *FailureView
	Predictions []PredictionView
	ModelName   string
	Metrics     []MetricView
	Raw         string
}

// HealthState is the connection-test ternary.
type HealthState int

const (
	HealthOK HealthState = iota
	HealthWarn
	HealthDown
)

// HealthView is the outcome of a connection test.
type HealthView struct {
	State   HealthState
	Status  string
	URL     string
	Failure *FailureView
}

// ModelInfoView is the outcome of a model-info request.
type ModelInfoView struct {
	Body    string
	Failure *FailureView
}

// LegendEntry describes one rating category.
type LegendEntry struct {
	Icon     string
	Category string
	Band     string
}

// FieldView is one labelled input value.
type FieldView struct {
	Label string
	Value string
}
