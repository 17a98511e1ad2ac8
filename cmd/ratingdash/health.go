package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlops-grupo21/ratingdash/internal/interpret"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

var healthLogLevel string

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Test the connection to the prediction service",
	Long:  "Call GET /health and report whether the service is healthy, reachable but reporting another status, or unreachable. Exits 1 only when unreachable.",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("health")
	if err != nil {
		return err
	}
	wireLogging(level, cmd.ErrOrStderr())

	s, err := newSession()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var report interpret.HealthReport
	ui.RunWithSpinner(out, fmt.Sprintf("Checking %s/health", s.BaseURL()), func() {
		report = s.TestConnection(commandContext(cmd))
	})

	ui.NewPredictionUI(out, level == "quiet", false).PrintHealth(report.View(s.BaseURL()))
	return failureError(report.Failure)
}

func init() {
	bindLogLevel(healthCmd, "health", &healthLogLevel)
}
