package interpret

import "github.com/mlops-grupo21/ratingdash/internal/ui"

// View converts the failure for the terminal renderer.
func (f *Failure) View() *ui.FailureView {
	if f == nil {
		return nil
	}
	return &ui.FailureView{Kind: f.Kind.String(), Title: f.Title(), Message: f.Message()}
}

// View converts the presentation for the terminal renderer.
func (p Presentation) View() ui.ResultView {
	v := ui.ResultView{
		Failure:   p.Failure.View(),
		ModelName: p.ModelName,
		Raw:       PrettyJSON(p.Raw),
	}
	for i, r := range p.Predictions {
		v.Predictions = append(v.Predictions, ui.PredictionView{
			Index:      i,
			Category:   string(r.Category),
			Icon:       r.Category.Icon(),
			Band:       r.Category.Band(),
			Confidence: r.ConfidenceText(),
		})
	}
	for _, m := range p.Metrics {
		v.Metrics = append(v.Metrics, ui.MetricView{Name: m.Name, Value: m.ValueText()})
	}
	return v
}

// View converts the health report for the terminal renderer.
func (r HealthReport) View(baseURL string) ui.HealthView {
	state := ui.HealthOK
	switch r.State {
	case HealthDegraded:
		state = ui.HealthWarn
	case HealthUnreachable:
		state = ui.HealthDown
	}
	return ui.HealthView{State: state, Status: r.Status, URL: baseURL, Failure: r.Failure.View()}
}

// View converts the model info report for the terminal renderer.
func (r ModelInfoReport) View() ui.ModelInfoView {
	return ui.ModelInfoView{Body: r.Pretty(), Failure: r.Failure.View()}
}

// Legend lists the categories with their rating bands for display.
func Legend() []ui.LegendEntry {
	out := make([]ui.LegendEntry, 0, len(Categories))
	for _, c := range Categories {
		out = append(out, ui.LegendEntry{Icon: c.Icon(), Category: string(c), Band: c.Band()})
	}
	return out
}
