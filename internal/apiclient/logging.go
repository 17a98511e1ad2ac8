package apiclient

import (
	"io"

	"github.com/mlops-grupo21/ratingdash/internal/logging"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

var logger = &logging.Logger{PrefixText: "API:", PrefixColor: ui.FgMagenta, Field: "url"}

// SetLogger sets an optional destination for request logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(url string, format string, args ...any) {
	logger.Logf(url, format, args...)
}
