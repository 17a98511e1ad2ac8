package ui

import (
	"io"
	"os"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-isatty"
)

// actionDoneMsg signals that the wrapped action returned.
type actionDoneMsg struct{}

// spinnerModel is the Bubble Tea model shown while a request is in flight.
type spinnerModel struct {
	spinner  spinner.Model
	message  string
	done     bool
	quitting bool
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSecondary)
	return spinnerModel{spinner: s, message: message}
}

// Init starts the spinner ticking.
func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages
func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			// The action keeps running until its timeout; only the spinner goes away.
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionDoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the spinner line, or nothing once finished.
func (m spinnerModel) View() tea.View {
	if m.done || m.quitting {
		return tea.NewView("")
	}
	return tea.NewView(m.spinner.View() + " " + Dim.Render(m.message))
}

// RunWithSpinner runs fn while showing a spinner on w. When w is not a
// terminal fn runs directly with no decoration. RunWithSpinner always waits
// for fn to return.
func RunWithSpinner(w io.Writer, message string, fn func()) {
	if !IsTerminal(w) {
		fn()
		return
	}

	done := make(chan struct{})
	p := tea.NewProgram(newSpinnerModel(message), tea.WithoutSignalHandler(), tea.WithOutput(w))

	go func() {
		defer close(done)
		fn()
		p.Send(actionDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		logSpinnerError(w, err)
	}
	<-done
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func logSpinnerError(w io.Writer, err error) {
	_, _ = io.WriteString(w, FormatStatus("warning", Dim.Render("spinner: "+err.Error()))+"\n")
}
