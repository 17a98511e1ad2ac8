package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlops-grupo21/ratingdash/internal/apperr"
	"github.com/mlops-grupo21/ratingdash/internal/bomio"
	"github.com/mlops-grupo21/ratingdash/internal/interpret"
	"github.com/mlops-grupo21/ratingdash/internal/modelcard"
	"github.com/mlops-grupo21/ratingdash/internal/output"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

var (
	modelInfoLogLevel string
	modelInfoOutput   string
	modelInfoBOM      string
	modelInfoFormat   string
	modelInfoSpec     string
	modelInfoStrict   bool
)

// modelInfoCmd represents the model-info command
var modelInfoCmd = &cobra.Command{
	Use:   "model-info",
	Short: "Show the deployed model's description",
	Long:  "Call GET /model-info and print the returned description. Use --bom to also export it as a CycloneDX ML model card.",
	RunE:  runModelInfo,
}

func runModelInfo(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("model-info")
	if err != nil {
		return err
	}
	format, err := resolveOutput("model-info")
	if err != nil {
		return err
	}
	wireLogging(level, cmd.ErrOrStderr())

	bomPath := strings.TrimSpace(viper.GetString("model-info.bom"))
	bomFormat := viper.GetString("model-info.format")
	specVersion := viper.GetString("model-info.spec")
	// Fail fast on bad BOM settings before calling the service.
	if bomPath != "" {
		if _, err := bomio.ResolveFormat(bomPath, bomFormat); err != nil {
			return apperr.User(err.Error())
		}
		if specVersion != "" {
			if _, ok := bomio.ParseSpecVersion(specVersion); !ok {
				return apperr.Userf("unsupported CycloneDX spec version: %q", specVersion)
			}
		}
	}

	s, err := newSession()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var report interpret.ModelInfoReport
	ui.RunWithSpinner(out, "Fetching model info", func() {
		report = s.ModelInfo(commandContext(cmd))
	})

	pui := ui.NewPredictionUI(out, level == "quiet", false)
	switch {
	case report.Failure != nil:
		pui.PrintFailure(*report.Failure.View())
		return failureError(report.Failure)
	case format == "yaml":
		b, err := output.JSONToYAML(report.Raw)
		if err != nil {
			return err
		}
		if _, err := out.Write(b); err != nil {
			return err
		}
	case format == "plain":
		fmt.Fprintln(out, report.Pretty())
	default:
		pui.PrintModelInfo(report.View())
	}

	if bomPath == "" {
		return nil
	}
	info, err := modelcard.ParseInfo(report.Raw)
	if err != nil {
		return apperr.Userf("cannot build a model card: %v", err)
	}
	bom := modelcard.Build(info, modelcard.Options{ServiceURL: s.BaseURL(), ToolVersion: version})
	if errs := modelcard.Validate(bom, viper.GetBool("model-info.strict")); len(errs) > 0 {
		return apperr.Userf("model card is incomplete: %s", strings.Join(errs, "; "))
	}
	if err := bomio.WriteBOM(bom, bomPath, bomFormat, specVersion); err != nil {
		return err
	}
	if level != "quiet" {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatStatus("success", "Model card written to "+ui.Secondary.Render(filepath.Clean(bomPath))))
	}
	return nil
}

func init() {
	bindLogLevel(modelInfoCmd, "model-info", &modelInfoLogLevel)
	bindOutput(modelInfoCmd, "model-info", &modelInfoOutput, "Output: text|plain|yaml")
	modelInfoCmd.Flags().StringVar(&modelInfoBOM, "bom", "", "Also write a CycloneDX model card BOM to this path (.json or .xml)")
	modelInfoCmd.Flags().StringVarP(&modelInfoFormat, "format", "f", "", "BOM format: json|xml|auto")
	modelInfoCmd.Flags().StringVar(&modelInfoSpec, "spec", "", "CycloneDX spec version for the BOM (1.4, 1.5, 1.6)")

	modelInfoCmd.Flags().BoolVar(&modelInfoStrict, "strict", false, "Refuse to write a model card without performance metrics")

	viper.BindPFlag("model-info.strict", modelInfoCmd.Flags().Lookup("strict"))
	viper.BindPFlag("model-info.bom", modelInfoCmd.Flags().Lookup("bom"))
	viper.BindPFlag("model-info.format", modelInfoCmd.Flags().Lookup("format"))
	viper.BindPFlag("model-info.spec", modelInfoCmd.Flags().Lookup("spec"))
}
