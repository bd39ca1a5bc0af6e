package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"frame-gallery/pkg/htmlview"
	"frame-gallery/pkg/viewer"
)

// Command options
var outputPath string

// newExportCmd creates a new command for exporting the frame manifest
func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [format]",
		Short: "Export the frame manifest",
		Long: `Export the configured frame manifest in the specified format. Supported formats:
json (the validated manifest, including the extractor's shot and subtitle annotations)
and html (a static gallery page with a lightbox per frame). The html export uses the
built-in template unless TEMPLATE_PATH or template_path names another pug file.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"json", "html"},
		RunE: func(cmd *cobra.Command, args []string) error {
			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			if format != "json" && format != "html" {
				return fmt.Errorf("unsupported export format %q (supported formats: json, html)", format)
			}

			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			logger, closer, err := openLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			client, err := newManifestClient(cfg, logger)
			if err != nil {
				return err
			}

			out, done, err := openOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if format == "html" {
				err = htmlview.Export(cmd.Context(), client, out, htmlview.Options{
					TemplatePath: cfg.TemplatePath,
					Logger:       logger,
				})
			} else {
				err = exportJSON(cmd.Context(), client, out)
			}
			if cerr := done(); err == nil {
				err = cerr
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the export to this file instead of stdout")
	return cmd
}

func exportJSON(ctx context.Context, loader viewer.ManifestLoader, w io.Writer) error {
	manifest, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling manifest: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func openOutput(stdout io.Writer) (io.Writer, func() error, error) {
	if outputPath == "" {
		return stdout, func() error { return nil }, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", outputPath, err)
	}
	return file, file.Close, nil
}
