package dashboard

import (
	"io"

	"github.com/mlops-grupo21/ratingdash/internal/logging"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Dashboard:", PrefixColor: ui.FgCyan, Field: "session"}

// SetLogger sets an optional destination for session logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(session string, format string, args ...any) {
	logger.Logf(session, format, args...)
}
