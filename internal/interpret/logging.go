package interpret

import (
	"io"

	"github.com/mlops-grupo21/ratingdash/internal/logging"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

var logger = &logging.Logger{PrefixText: "Interpret:", PrefixColor: ui.FgYellow, OmitField: true}

// SetLogger sets an optional destination for interpretation logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(value string, format string, args ...any) {
	logger.Logf(value, format, args...)
}
