package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"

	cmd "github.com/mlops-grupo21/ratingdash/cmd/ratingdash"
	"github.com/mlops-grupo21/ratingdash/internal/apiclient"
	"github.com/mlops-grupo21/ratingdash/internal/apperr"
	"github.com/mlops-grupo21/ratingdash/internal/modelcard"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

// Version is set at build time
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	modelcard.Version = Version
	apiclient.UserAgent = "ratingdash/" + Version

	if err := fang.Execute(
		context.Background(),
		cmd.GetRootCmd(),
		fang.WithColorSchemeFunc(ui.FangColorScheme),
	); err != nil {
		// Quitting a form or the dashboard menu is not a failure.
		if errors.Is(err, apperr.ErrCancelled) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
