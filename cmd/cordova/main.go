package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/maderarasto/cordova-jsx/internal/config"
	"github.com/maderarasto/cordova-jsx/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type globalFlags struct {
	dir     string
	verbose bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "cordova",
		Short: "Retained-mode UI rendering engine",
		Long: `Cordova renders component trees onto a presentation surface.

It keeps a shadow tree between passes, reconciles each new render
against it and commits only the differences. The CLI renders the
bundled demo application:

  • render   print the demo's HTML, optionally uploading it to S3
  • serve    drive the demo over a websocket, with Prometheus metrics`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.dir, "dir", "C", ".", "Directory containing cordova.json")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(
		renderCmd(flags),
		serveCmd(flags),
		versionCmd(),
	)
	return cmd
}

// loadConfig loads the project configuration, falling back to defaults when
// the directory has none.
func loadConfig(dir string) (*config.Config, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		if e, ok := err.(*errors.Error); ok && e.Code == "E106" {
			return config.New(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
