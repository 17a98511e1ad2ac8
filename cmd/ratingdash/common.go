package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlops-grupo21/ratingdash/internal/apiclient"
	"github.com/mlops-grupo21/ratingdash/internal/apperr"
	"github.com/mlops-grupo21/ratingdash/internal/config"
	"github.com/mlops-grupo21/ratingdash/internal/dashboard"
	"github.com/mlops-grupo21/ratingdash/internal/interpret"
	"github.com/mlops-grupo21/ratingdash/internal/modelcard"
	"github.com/mlops-grupo21/ratingdash/internal/stubserver"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

// resolveLogLevel reads <command>.log-level from config, env, or flag.
func resolveLogLevel(command string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(viper.GetString(command + ".log-level")))
	if level == "" {
		level = "standard"
	}
	switch level {
	case "quiet", "standard", "debug":
		return level, nil
	default:
		return "", apperr.Userf("invalid --log-level %q (expected quiet|standard|debug)", level)
	}
}

// wireLogging sends internal package logs to w in debug mode.
func wireLogging(level string, w io.Writer) {
	if level != "debug" {
		w = nil
	}
	apiclient.SetLogger(w)
	interpret.SetLogger(w)
	dashboard.SetLogger(w)
	stubserver.SetLogger(w)
	modelcard.SetLogger(w)
}

// resolveBaseURL returns the effective service URL, validated.
func resolveBaseURL() (string, error) {
	raw := viper.GetString("api.url")
	if strings.TrimSpace(raw) == "" {
		return config.DefaultBaseURL, nil
	}
	if err := config.ValidateBaseURL(raw); err != nil {
		return "", apperr.User(err.Error())
	}
	return config.NormalizeBaseURL(raw), nil
}

func resolveTimeouts() config.Timeouts {
	return config.TimeoutsFromSeconds(
		viper.GetInt("api.health-timeout"),
		viper.GetInt("api.model-info-timeout"),
		viper.GetInt("api.predict-timeout"),
	)
}

// newSession opens a one-shot dashboard session for a subcommand.
func newSession() (*dashboard.Session, error) {
	baseURL, err := resolveBaseURL()
	if err != nil {
		return nil, err
	}
	return dashboard.NewSession(baseURL, dashboard.HTTPClientFactory(resolveTimeouts())), nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// failureError maps a rendered failure to the process exit status.
func failureError(f *interpret.Failure) error {
	if f == nil {
		return nil
	}
	return apperr.Failed(f.Kind.String())
}

func resolveOutput(command string) (string, error) {
	out := strings.ToLower(strings.TrimSpace(viper.GetString(command + ".output")))
	switch out {
	case "", "text":
		return "text", nil
	case "plain", "yaml":
		return out, nil
	default:
		return "", apperr.Userf("invalid --output %q (expected text|plain|yaml)", out)
	}
}

func bindLogLevel(cmd *cobra.Command, command string, target *string) {
	cmd.Flags().StringVar(target, "log-level", "", "Log level: quiet|standard|debug")
	viper.BindPFlag(command+".log-level", cmd.Flags().Lookup("log-level"))
}

func bindOutput(cmd *cobra.Command, command string, target *string, help string) {
	cmd.Flags().StringVarP(target, "output", "o", "", help)
	viper.BindPFlag(command+".output", cmd.Flags().Lookup("output"))
}

func printValidation(w io.Writer, err error) {
	fmt.Fprintln(w, ui.FormatStatus("error", ui.Error.Render(err.Error())))
}
