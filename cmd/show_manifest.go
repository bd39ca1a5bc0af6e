package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"frame-gallery/pkg/models"
)

// newShowManifestCmd creates a new command for printing the frame manifest
func newShowManifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-manifest",
		Short: "Show the frames of the configured manifest",
		Long:  `Load the configured frame manifest and print its metadata and frames as a table.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			manifest, err := client.Load(cmd.Context())
			if err != nil {
				return err
			}
			printManifest(cmd.OutOrStdout(), client.Source(), manifest)
			return nil
		},
	}
}

func printManifest(w io.Writer, source string, manifest models.FrameManifest) {
	if title, ok := manifest.Title(); ok {
		fmt.Fprintf(w, "Movie: %s\n", title)
	}
	fmt.Fprintf(w, "Source: %s\n", source)
	if manifest.ExtractionType != "" {
		fmt.Fprintf(w, "Extraction: %s", manifest.ExtractionType)
		if manifest.Threshold != nil {
			fmt.Fprintf(w, " (threshold %s)", formatFloat(*manifest.Threshold))
		}
		fmt.Fprintln(w)
	}
	if manifest.TotalShots != nil {
		fmt.Fprintf(w, "Shots: %d", *manifest.TotalShots)
		if manifest.FramesPerShot != nil && manifest.FPS != nil {
			fmt.Fprintf(w, " (%d frames per shot at %s fps)", *manifest.FramesPerShot, formatFloat(*manifest.FPS))
		}
		fmt.Fprintln(w)
	}
	if manifest.ShotFrames != nil && manifest.SubtitleFrames != nil {
		fmt.Fprintf(w, "Shot frames: %d, subtitle frames: %d\n", *manifest.ShotFrames, *manifest.SubtitleFrames)
	}
	fmt.Fprintln(w, frameTable(manifest.Frames))
	fmt.Fprintf(w, "Total: %d frames\n", len(manifest.Frames))
}

func frameTable(frames []models.Frame) string {
	rows := make([][]string, 0, len(frames))
	for _, frame := range frames {
		timestamp := ""
		if frame.Timestamp != nil {
			timestamp = strconv.FormatFloat(*frame.Timestamp, 'f', 2, 64)
		}
		full := ""
		if frame.Full != nil {
			full = *frame.Full
		}
		rows = append(rows, []string{strconv.Itoa(frame.Number), frame.Timecode, timestamp, frame.Type, frame.Thumbnail, full})
	}
	return renderTable(
		[]string{"Frame", "Timecode", "Seconds", "Type", "Thumbnail", "Full"},
		rows,
		text.AlignRight, text.AlignLeft, text.AlignRight,
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
