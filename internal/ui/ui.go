package ui

// Basic ANSI color codes used by the logging package prefixes.
// Rendering code uses the lipgloss styles from styles.go instead.
const (
	Reset      = "\033[0m"
	LegacyBold = "\033[1m"
	FgCyan     = "\033[36m"
	FgGreen    = "\033[32m"
	FgMagenta  = "\033[35m"
	FgYellow   = "\033[33m"
	FgRed      = "\033[31m"
)

var colorEnabled = true

// Init applies global UI settings from flags.
func Init(noColor bool) { colorEnabled = !noColor }

// ColorEnabled reports whether ANSI prefixes are written.
func ColorEnabled() bool { return colorEnabled }

// Color wraps a string with the given ANSI code, unless colors are disabled.
func Color(s string, code string) string {
	if !colorEnabled || code == "" {
		return s
	}
	return code + s + Reset
}
