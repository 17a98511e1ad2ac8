package stubserver

import (
	"io"

	"github.com/mlops-grupo21/ratingdash/internal/logging"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Stub:", PrefixColor: ui.FgGreen, Field: "request"}

// SetLogger sets an optional destination for request logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(requestID string, format string, args ...any) {
	logger.Logf(requestID, format, args...)
}
