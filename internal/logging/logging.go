package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

// Logger is a tiny opt-in logger used across internal packages.
// When Writer is nil, logging is disabled.
//
// The output format is:
//
//	<ColoredPrefix> <field>=<value> <formattedMessage>\n
//
// where <field> defaults to "session" and <value> is trimmed and defaults
// to "(none)".
type Logger struct {
	Writer io.Writer

	PrefixText  string
	PrefixColor string

	// Field names the key written before the message, e.g. "url".
	Field string
	// OmitField drops the key=value pair entirely.
	OmitField bool
}

func (l *Logger) SetWriter(w io.Writer) { l.Writer = w }

func (l *Logger) Enabled() bool { return l != nil && l.Writer != nil }

func (l *Logger) Logf(value string, format string, args ...any) {
	if l == nil || l.Writer == nil {
		return
	}
	prefix := l.PrefixText
	if prefix == "" {
		prefix = "Log:"
	}
	if l.PrefixColor != "" {
		prefix = ui.Color(prefix, l.PrefixColor)
	}
	msg := fmt.Sprintf(format, args...)
	if l.OmitField {
		fmt.Fprintf(l.Writer, "%s %s\n", prefix, msg)
		return
	}

	field := l.Field
	if field == "" {
		field = "session"
	}
	v := strings.TrimSpace(value)
	if v == "" {
		v = "(none)"
	}
	fmt.Fprintf(l.Writer, "%s %s=%s %s\n", prefix, field, v, msg)
}
