package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mlops-grupo21/ratingdash/internal/stubserver"
	"github.com/mlops-grupo21/ratingdash/internal/ui"
)

var (
	stubAddr      string
	stubHealth    string
	stubModelName string
	stubLatencyMS int
	stubLogLevel  string
)

// serveStubCmd represents the serve-stub command
var serveStubCmd = &cobra.Command{
	Use:   "serve-stub",
	Short: "Run a local stand-in for the prediction service",
	Long:  "Serve /health, /model-info and /predict locally. Movies are classified by average rating alone (Poor < 4, Average 4-6, Good 6-8, Excellent > 8), which is enough to try the dashboard without the real model.",
	RunE:  runServeStub,
}

func runServeStub(cmd *cobra.Command, args []string) error {
	level, err := resolveLogLevel("serve-stub")
	if err != nil {
		return err
	}
	// Request logs are the point of this command, so standard shows them too.
	if level != "quiet" {
		stubserver.SetLogger(cmd.ErrOrStderr())
	}

	opts := stubserver.Options{
		ModelName:    viper.GetString("serve-stub.model-name"),
		HealthStatus: viper.GetString("serve-stub.health-status"),
		Latency:      time.Duration(viper.GetInt("serve-stub.latency-ms")) * time.Millisecond,
	}
	srv := &http.Server{
		Addr:              viper.GetString("serve-stub.addr"),
		Handler:           stubserver.New(opts).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	if level != "quiet" {
		fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatus("success", "Stub prediction service listening on "+ui.Secondary.Render("http://"+srv.Addr)))
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	bindLogLevel(serveStubCmd, "serve-stub", &stubLogLevel)
	serveStubCmd.Flags().StringVar(&stubAddr, "addr", "localhost:8000", "Listen address")
	serveStubCmd.Flags().StringVar(&stubHealth, "health-status", "", "Status reported by /health (default healthy)")
	serveStubCmd.Flags().StringVar(&stubModelName, "model-name", "", "Model name reported by the stub")
	serveStubCmd.Flags().IntVar(&stubLatencyMS, "latency-ms", 0, "Delay every response by this many milliseconds")

	viper.BindPFlag("serve-stub.addr", serveStubCmd.Flags().Lookup("addr"))
	viper.BindPFlag("serve-stub.health-status", serveStubCmd.Flags().Lookup("health-status"))
	viper.BindPFlag("serve-stub.model-name", serveStubCmd.Flags().Lookup("model-name"))
	viper.BindPFlag("serve-stub.latency-ms", serveStubCmd.Flags().Lookup("latency-ms"))
}
