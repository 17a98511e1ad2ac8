package ui

import (
	"fmt"
	"io"
	"strings"
)

// PredictionUI renders dashboard outcomes to a writer.
type PredictionUI struct {
	writer  io.Writer
	quiet   bool
	showRaw bool
}

// NewPredictionUI creates a renderer. In quiet mode only failures are printed.
func NewPredictionUI(w io.Writer, quiet, showRaw bool) *PredictionUI {
	return &PredictionUI{writer: w, quiet: quiet, showRaw: showRaw}
}

// PrintResult renders a prediction result or its failure.
func (p *PredictionUI) PrintResult(v ResultView) {
	if v.Failure != nil {
		p.PrintFailure(*v.Failure)
		if p.showRaw && v.Raw != "" {
			fmt.Fprintln(p.writer, p.renderRaw(v.Raw))
		}
		return
	}
	if p.quiet {
		return
	}

	var sb strings.Builder
	sb.WriteString(Success.Bold(true).Render("Prediction Result"))
	sb.WriteString("\n\n")

	multi := len(v.Predictions) > 1
	for i, pr := range v.Predictions {
		if multi {
			sb.WriteString(SectionHeader.Render(fmt.Sprintf("Movie %d", pr.Index+1)))
			sb.WriteString("\n")
		}
		sb.WriteString(FormatKeyValue("Predicted category", pr.Icon+" "+Highlight.Render(pr.Category)))
		sb.WriteString("\n")
		if pr.Confidence != "" {
			sb.WriteString(FormatKeyValue("Confidence", pr.Confidence))
			sb.WriteString("\n")
		}
		if multi && i < len(v.Predictions)-1 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString(FormatKeyValue("Model", v.ModelName))

	if len(v.Metrics) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(SectionHeader.Render("Model Metrics"))
		for _, m := range v.Metrics {
			sb.WriteString("\n  ")
			sb.WriteString(GetBullet())
			sb.WriteString(" ")
			sb.WriteString(FormatKeyValue(m.Name, m.Value))
		}
	}

	fmt.Fprintln(p.writer, SuccessBox.Render(sb.String()))
	if p.showRaw && v.Raw != "" {
		fmt.Fprintln(p.writer, p.renderRaw(v.Raw))
	}
}

// PrintFailure renders a failure box with an icon per kind.
func (p *PredictionUI) PrintFailure(f FailureView) {
	icon := GetCrossMark()
	switch f.Kind {
	case "timeout":
		icon = "⏱"
	case "connection_failure":
		icon = "🔌"
	case "malformed_response":
		icon = GetWarnMark()
	}
	body := Error.Bold(true).Render(icon+" "+f.Title) + "\n" + f.Message
	fmt.Fprintln(p.writer, ErrorBox.Render(body))
}

// PrintHealth renders the connection-test ternary.
func (p *PredictionUI) PrintHealth(v HealthView) {
	switch v.State {
	case HealthOK:
		if p.quiet {
			return
		}
		fmt.Fprintln(p.writer, FormatStatus("success", "API is healthy "+Dim.Render("("+v.URL+")")))
	case HealthWarn:
		body := Warning.Bold(true).Render(GetWarnMark()+" API reachable but reports status: "+v.Status) + "\n" +
			Subtitle.Render(`predictions may fail until it reports "healthy"`) + " " + Dim.Render("("+v.URL+")")
		fmt.Fprintln(p.writer, WarningBox.Render(body))
	default:
		msg := "API unreachable"
		if v.Failure != nil {
			msg = v.Failure.Title + ": " + v.Failure.Message
		}
		fmt.Fprintln(p.writer, FormatStatus("error", Error.Render(msg)+" "+Dim.Render("("+v.URL+")")))
	}
}

// PrintModelInfo renders the model description or its failure.
func (p *PredictionUI) PrintModelInfo(v ModelInfoView) {
	if v.Failure != nil {
		p.PrintFailure(*v.Failure)
		return
	}
	if p.quiet {
		return
	}
	fmt.Fprintln(p.writer, Box.Render(Title.Render("Model Info")+"\n"+v.Body))
}

// PrintLegend renders the rating category legend.
func (p *PredictionUI) PrintLegend(entries []LegendEntry) {
	if p.quiet {
		return
	}
	var sb strings.Builder
	sb.WriteString(Title.Render("Rating Categories"))
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("\n  %s %s %s", e.Icon, Bold.Render(e.Category), Dim.Render(e.Band)))
	}
	fmt.Fprintln(p.writer, sb.String())
}

// PrintFields renders the current form values.
func (p *PredictionUI) PrintFields(title string, fields []FieldView) {
	if p.quiet {
		return
	}
	var sb strings.Builder
	sb.WriteString(SectionHeader.Render(title))
	for _, f := range fields {
		sb.WriteString("\n  ")
		sb.WriteString(FormatKeyValue(f.Label, f.Value))
	}
	fmt.Fprintln(p.writer, HighlightBox.Render(sb.String()))
}

// PrintSimpleResult prints an unstyled, line-oriented result for scripts.
func (p *PredictionUI) PrintSimpleResult(v ResultView) {
	if v.Failure != nil {
		fmt.Fprintf(p.writer, "error: %s: %s\n", v.Failure.Title, v.Failure.Message)
		return
	}
	for _, pr := range v.Predictions {
		line := fmt.Sprintf("movie %d: %s", pr.Index+1, pr.Category)
		if pr.Confidence != "" {
			line += " (" + pr.Confidence + ")"
		}
		fmt.Fprintln(p.writer, line)
	}
	fmt.Fprintf(p.writer, "model: %s\n", v.ModelName)
	for _, m := range v.Metrics {
		fmt.Fprintf(p.writer, "%s: %s\n", m.Name, m.Value)
	}
}

func (p *PredictionUI) renderRaw(raw string) string {
	return Box.Render(SectionHeader.Render("Full Response") + "\n" + Dim.Render(raw))
}
