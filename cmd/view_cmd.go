package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"frame-gallery/pkg/services"
	"frame-gallery/pkg/tui"
	"frame-gallery/pkg/viewer"
)

// newViewCmd creates a new command for browsing the frames in the terminal
func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Browse the frames in the terminal",
		Long: `Open the frame grid in the terminal. Select a frame with the arrow keys and enter, or
click it, to open it in the lightbox. When stdout is not a terminal the frames are printed
as a table instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			out := cmd.OutOrStdout()
			interactive := isTerminal(out)

			// The alternate screen owns the terminal, so logs only go to a file
			var fallback io.Writer
			if !interactive {
				fallback = cmd.ErrOrStderr()
			}
			logger, closer, err := openLogger(cfg, fallback)
			if err != nil {
				return err
			}
			defer closer.Close()

			client, err := newManifestClient(cfg, logger)
			if err != nil {
				return err
			}
			if !interactive {
				return printFrames(cmd.Context(), out, client, client.Source(), logger)
			}

			model := tui.New(cmd.Context(), client, tui.Options{TileWidth: cfg.TileWidth, Logger: logger})
			program := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("run viewer: %w", err)
			}
			return nil
		},
	}
}

// printFrames is the plain-text viewer: the frame table, or the empty state when the
// manifest has nothing to show
func printFrames(ctx context.Context, w io.Writer, loader viewer.ManifestLoader, source string, logger *slog.Logger) error {
	manifest, err := loader.Load(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warn("No frames available",
			"kind", services.KindOf(err).String(),
			"error", err,
		)
		fmt.Fprintf(w, "%s\n\n%s\n", viewer.DefaultEmptyState.Heading, viewer.DefaultEmptyState.Message)
		return nil
	}
	printManifest(w, source, manifest)
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
