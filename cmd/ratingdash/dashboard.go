package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlops-grupo21/ratingdash/internal/apperr"
	"github.com/mlops-grupo21/ratingdash/internal/config"
	"github.com/mlops-grupo21/ratingdash/internal/dashboard"
	"github.com/mlops-grupo21/ratingdash/internal/interpret"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

var (
	dashboardLogLevel string
	dashboardShowRaw  bool
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui"},
	Short:   "Interactive prediction dashboard",
	Long:    "Edit the movie features in a form, test the connection, look at the model and run predictions until you quit.",
	RunE:    runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("dashboard")
	if err != nil {
		return err
	}
	wireLogging(level, cmd.ErrOrStderr())

	if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
		return apperr.User("the dashboard needs an interactive terminal; use 'ratingdash predict' in scripts")
	}

	baseURL, err := resolveBaseURL()
	if err != nil {
		return err
	}
	store := dashboard.NewStore(func() string { return baseURL }, dashboard.HTTPClientFactory(resolveTimeouts()))
	s := store.New()
	defer store.Delete(s.ID)

	d := &dashboardRunner{
		session: s,
		out:     cmd.OutOrStdout(),
		ui:      ui.NewPredictionUI(cmd.OutOrStdout(), level == "quiet", viper.GetBool("dashboard.show-raw")),
	}
	return d.run(commandContext(cmd))
}

type dashboardRunner struct {
	session *dashboard.Session
	out     io.Writer
	ui      *ui.PredictionUI
}

func (d *dashboardRunner) run(ctx context.Context) error {
	d.ui.PrintLegend(interpret.Legend())
	for {
		fmt.Fprintln(d.out)
		d.ui.PrintFields("Movie "+ui.Dim.Render("("+d.session.BaseURL()+")"), ui.FeatureFields(d.session.Input()))

		action, err := ui.SelectAction()
		if errors.Is(err, apperr.ErrCancelled) || action == ui.ActionQuit {
			return nil
		}
		if err != nil {
			return err
		}
		if err := d.handle(ctx, action); err != nil {
			return err
		}
	}
}

// handle runs one menu action. Only unexpected form errors end the session.
func (d *dashboardRunner) handle(ctx context.Context, action ui.Action) error {
	switch action {
	case ui.ActionPredict:
		var pres interpret.Presentation
		var err error
		ui.RunWithSpinner(d.out, "Predicting", func() {
			pres, err = d.session.Predict(ctx)
		})
		if err != nil {
			printValidation(d.out, err)
			return nil
		}
		d.ui.PrintResult(pres.View())

	case ui.ActionEdit:
		f, err := ui.EditFeatures(d.session.Input())
		if errors.Is(err, apperr.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := d.session.SetInput(f); err != nil {
			printValidation(d.out, err)
		}

	case ui.ActionTestConnection:
		var report interpret.HealthReport
		ui.RunWithSpinner(d.out, "Testing connection", func() {
			report = d.session.TestConnection(ctx)
		})
		d.ui.PrintHealth(report.View(d.session.BaseURL()))

	case ui.ActionModelInfo:
		var report interpret.ModelInfoReport
		ui.RunWithSpinner(d.out, "Fetching model info", func() {
			report = d.session.ModelInfo(ctx)
		})
		d.ui.PrintModelInfo(report.View())

	case ui.ActionChangeURL:
		u, err := ui.PromptBaseURL(d.session.BaseURL(), config.ValidateBaseURL)
		if errors.Is(err, apperr.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := d.session.SetBaseURL(u); err != nil {
			printValidation(d.out, err)
			return nil
		}
		fmt.Fprintln(d.out, ui.FormatStatus("success", "API URL set to "+ui.Secondary.Render(d.session.BaseURL())))

	case ui.ActionClear:
		d.session.Clear()
		fmt.Fprintln(d.out, ui.FormatStatus("info", "Result cleared and input reset to defaults"))
	}
	return nil
}

func init() {
	bindLogLevel(dashboardCmd, "dashboard", &dashboardLogLevel)
	dashboardCmd.Flags().BoolVar(&dashboardShowRaw, "show-raw", false, "Also print the full JSON response after each prediction")
	viper.BindPFlag("dashboard.show-raw", dashboardCmd.Flags().Lookup("show-raw"))
}
