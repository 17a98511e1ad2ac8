package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlops-grupo21/ratingdash/internal/apperr"
	"github.com/mlops-grupo21/ratingdash/internal/interpret"
	"github.com/mlops-grupo21/ratingdash/internal/movie"
	"github.com/mlops-grupo21/ratingdash/internal/output"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

var (
	predictLogLevel    string
	predictOutput      string
	predictInput       string
	predictShowRaw     bool
	predictInteractive bool

	// featureFlags maps each movie field to its flag name.
	featureFlags = []struct {
		key  movie.Key
		flag string
	}{
		{movie.KeyStartYear, "start-year"},
		{movie.KeyRuntimeMinutes, "runtime"},
		{movie.KeyNumVotes, "votes"},
		{movie.KeyAverageRating, "rating"},
		{movie.KeyRuntimeCategory, "runtime-category"},
		{movie.KeyPopularity, "popularity"},
	}
	featureValues = make(map[movie.Key]*string, len(featureFlags))
)

// predictCmd represents the predict command
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the rating category of a movie",
	Long: "Send one movie (from flags, or from a form with --interactive) or a batch of movies (--input file.yaml) to POST /predict and print the predicted category, confidence and model metrics. " +
		"Fields not given on the command line keep their default values.",
	Example: `  ratingdash predict --rating 8.4 --votes 250000 --popularity High
  ratingdash predict --interactive
  ratingdash predict --input movies.yaml -o yaml`,
	RunE: runPredict,
}

func runPredict(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("predict")
	if err != nil {
		return err
	}
	format, err := resolveOutput("predict")
	if err != nil {
		return err
	}
	quiet := level == "quiet"
	wireLogging(level, cmd.ErrOrStderr())

	interactiveMode := viper.GetBool("predict.interactive")
	inputPath := strings.TrimSpace(viper.GetString("predict.input"))
	if interactiveMode && inputPath != "" {
		return apperr.User("--interactive cannot be used with --input")
	}
	if inputPath != "" && changedFeatureFlags(cmd) {
		return apperr.User("movie field flags cannot be used with --input")
	}

	var movies []movie.Features
	if inputPath != "" {
		movies, err = output.ReadBatch(inputPath)
		if err != nil {
			return apperr.Userf("%s: %v", inputPath, err)
		}
	} else {
		f, err := featuresFromFlags(cmd)
		if err != nil {
			return err
		}
		if interactiveMode {
			if f, err = ui.EditFeatures(f); err != nil {
				return err
			}
		}
		movies = []movie.Features{f}
	}

	s, err := newSession()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	pui := ui.NewPredictionUI(out, quiet, viper.GetBool("predict.show-raw"))
	if format == "text" && len(movies) == 1 {
		pui.PrintFields("Movie", ui.FeatureFields(movies[0]))
	}

	var pres interpret.Presentation
	var predictErr error
	ui.RunWithSpinner(out, fmt.Sprintf("Predicting %d movie(s)", len(movies)), func() {
		pres, predictErr = s.PredictBatch(commandContext(cmd), movies)
	})
	if predictErr != nil {
		var verr *movie.ValidationError
		if errors.As(predictErr, &verr) {
			return apperr.User(verr.Error())
		}
		return predictErr
	}

	switch format {
	case "yaml":
		if err := output.WritePresentation(out, pres); err != nil {
			return err
		}
	case "plain":
		pui.PrintSimpleResult(pres.View())
	default:
		pui.PrintResult(pres.View())
	}
	return failureError(pres.Failure)
}

// featuresFromFlags starts from the defaults and applies the flags the user set.
func featuresFromFlags(cmd *cobra.Command) (movie.Features, error) {
	f := movie.Defaults()
	for _, ff := range featureFlags {
		if !cmd.Flags().Changed(ff.flag) {
			continue
		}
		if err := f.ParseField(ff.key, *featureValues[ff.key]); err != nil {
			return f, apperr.Userf("--%s: %v", ff.flag, err)
		}
	}
	return f, nil
}

func changedFeatureFlags(cmd *cobra.Command) bool {
	for _, ff := range featureFlags {
		if cmd.Flags().Changed(ff.flag) {
			return true
		}
	}
	return false
}

func init() {
	defaults := movie.Defaults()
	for _, ff := range featureFlags {
		spec := movie.Spec(ff.key)
		v := new(string)
		featureValues[ff.key] = v

		help := spec.Label
		if spec.Numeric() {
			help += " " + spec.Bounds.String()
		} else {
			help += ": " + strings.Join(spec.Options, " | ")
		}
		predictCmd.Flags().StringVar(v, ff.flag, defaults.Value(ff.key), help)
	}

	bindLogLevel(predictCmd, "predict", &predictLogLevel)
	bindOutput(predictCmd, "predict", &predictOutput, "Output: text|plain|yaml")
	predictCmd.Flags().StringVarP(&predictInput, "input", "i", "", "YAML or JSON file with a list of movies to classify in one request")
	predictCmd.Flags().BoolVar(&predictShowRaw, "show-raw", false, "Also print the full JSON response")
	predictCmd.Flags().BoolVar(&predictInteractive, "interactive", false, "Fill in the movie with a form (starts from the flag values)")

	viper.BindPFlag("predict.input", predictCmd.Flags().Lookup("input"))
	viper.BindPFlag("predict.show-raw", predictCmd.Flags().Lookup("show-raw"))
	viper.BindPFlag("predict.interactive", predictCmd.Flags().Lookup("interactive"))
}
