package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlops-grupo21/ratingdash/internal/config"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ratingdash",
	Short: "Terminal dashboard for the IMDb rating category predictor",
	Long:  longDescription,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
	},

	// Without a subcommand show help with the banner.
	RunE: func(cmd *cobra.Command, args []string) error {
		initUIAndBanner(cmd)
		return cmd.Help()
	},
}

var (
	cfgFile string
	version string

	apiURL           string
	healthTimeoutSec int
	infoTimeoutSec   int
	predTimeoutSec   int
	noColor          bool
)

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetRootCmd returns the root command for use with fang
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ratingdash.yaml or ./config/defaults.yaml)")
	pf.StringVar(&apiURL, "api-url", "", "Base URL of the prediction service (default $API_URL or "+config.DefaultBaseURL+")")
	pf.IntVar(&healthTimeoutSec, "health-timeout", 0, "Timeout in seconds for GET /health")
	pf.IntVar(&infoTimeoutSec, "model-info-timeout", 0, "Timeout in seconds for GET /model-info")
	pf.IntVar(&predTimeoutSec, "predict-timeout", 0, "Timeout in seconds for POST /predict")
	pf.BoolVar(&noColor, "no-color", false, "Disable coloured log prefixes")

	viper.BindPFlag("api.url", pf.Lookup("api-url"))
	viper.BindPFlag("api.health-timeout", pf.Lookup("health-timeout"))
	viper.BindPFlag("api.model-info-timeout", pf.Lookup("model-info-timeout"))
	viper.BindPFlag("api.predict-timeout", pf.Lookup("predict-timeout"))
	viper.BindPFlag("ui.no-color", pf.Lookup("no-color"))

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		initUIAndBanner(cmd)
		defaultHelp(cmd, args)
	})

	rootCmd.AddCommand(dashboardCmd, healthCmd, modelInfoCmd, predictCmd, serveStubCmd)
}

func initConfig() {
	// .env only seeds variables that are not already set.
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatStatus("warning", err.Error()))
	}
	// API_URL is the lowest-precedence override: config file, RATINGDASH_API_URL
	// and --api-url all win over it.
	viper.SetDefault("api.url", config.BaseURLFromEnv())

	// RATINGDASH_API_URL, RATINGDASH_API_PREDICT-TIMEOUT, ...
	viper.SetEnvPrefix("RATINGDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			cobra.CheckErr(err)
		}
		printConfigUsed()
		return
	}

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.SetConfigType("yaml")
	viper.AddConfigPath(home)
	viper.AddConfigPath("./config")

	viper.SetConfigName(".ratingdash")
	err = viper.ReadInConfig()

	notFound := &viper.ConfigFileNotFoundError{}
	if err != nil && errors.As(err, notFound) {
		viper.SetConfigName("defaults")
		err = viper.ReadInConfig()
	}

	switch {
	case err != nil && !errors.As(err, notFound):
		cobra.CheckErr(err)
	case err == nil:
		printConfigUsed()
	}
}

func printConfigUsed() {
	configMsg := ui.Dim.Render("Using config file: ") + ui.Secondary.Render(viper.ConfigFileUsed())
	fmt.Fprintln(os.Stderr, configMsg)
}

const longDescription = "Enter the attributes of a movie, send them to the rating category prediction service and see whether it is predicted Poor, Average, Good or Excellent."

func initUIAndBanner(cmd *cobra.Command) {
	if cmd == nil {
		return
	}
	ui.Init(viper.GetBool("ui.no-color"))
	cmd.Root().Long = ui.RenderBanner(ui.BannerASCII) + "\n" + longDescription
}
