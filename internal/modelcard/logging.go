package modelcard

import (
	"io"

	"github.com/mlops-grupo21/ratingdash/internal/logging"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

var logger = &logging.Logger{PrefixText: "ModelCard:", PrefixColor: ui.FgGreen, Field: "model"}

// SetLogger sets an optional destination for model card logs.
func SetLogger(w io.Writer) { logger.SetWriter(w) }

func logf(model string, format string, args ...any) {
	logger.Logf(model, format, args...)
}
