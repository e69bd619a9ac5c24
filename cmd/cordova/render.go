package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	cordova "github.com/maderarasto/cordova-jsx"
	"github.com/maderarasto/cordova-jsx/internal/config"
	"github.com/maderarasto/cordova-jsx/internal/demo"
	"github.com/maderarasto/cordova-jsx/pkg/snapshot"
	"github.com/maderarasto/cordova-jsx/pkg/surface"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		clicks int
		upload bool
		name   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo application to HTML",
		Long: `Render the demo application onto an in-memory surface and print
the container's HTML.

--clicks dispatches that many clicks on the demo's button first.
--upload stores the HTML in the snapshot bucket from cordova.json.

Examples:
  cordova render
  cordova render --clicks=3
  cordova render --upload --name=home`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.dir)
			if err != nil {
				return err
			}
			logger := newLogger(flags.verbose)

			html, err := renderDemo(cmd.Context(), cfg, clicks, logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), html)

			if !upload {
				return nil
			}
			client := snapshot.NewClient(snapshot.ClientConfig{
				Region:   cfg.Snapshot.Region,
				Endpoint: cfg.Snapshot.Endpoint,
			})
			key, err := snapshot.NewUploader(client, cfg.Snapshot.Bucket, cfg.Snapshot.Prefix).
				Upload(cmd.Context(), name, html)
			if err != nil {
				return err
			}
			logger.Info("snapshot uploaded", "bucket", cfg.Snapshot.Bucket, "key", key)
			return nil
		},
	}

	cmd.Flags().IntVar(&clicks, "clicks", 0, "Number of button clicks to dispatch before printing")
	cmd.Flags().BoolVar(&upload, "upload", false, "Upload the HTML snapshot to S3")
	cmd.Flags().StringVar(&name, "name", "demo", "Snapshot name")

	return cmd
}

// renderDemo mounts the demo on a memory surface, clicks its button and
// returns the container HTML.
func renderDemo(ctx context.Context, cfg *config.Config, clicks int, logger *slog.Logger) (string, error) {
	mem := surface.NewMemory()
	container := mem.AppendContainer(strings.TrimPrefix(cfg.MountTarget, "#"))

	app, err := cordova.New(cordova.Config{
		Render:    demo.Render,
		Surface:   mem,
		Target:    cfg.MountTarget,
		Namespace: cfg.Namespace,
		Logger:    logger,
	})
	if err != nil {
		return "", err
	}
	if err := app.Mount(ctx); err != nil {
		return "", err
	}

	for i := 0; i < clicks; i++ {
		button := container.Query("button")
		if button == nil {
			break
		}
		if err := mem.Dispatch(button, surface.Event{Type: "click"}); err != nil {
			return "", err
		}
	}
	return mem.InnerHTML(container), nil
}
