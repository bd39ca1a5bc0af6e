package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"frame-gallery/pkg/services"
)

// newListMoviesCmd creates a new command for listing the manifests in the bucket
func newListMoviesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-movies",
		Short: "List the movies with a frame manifest in the bucket",
		Long:  `List every <movie>/manifest.json object in the configured Google Cloud Storage bucket.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := cfg.RequireBucket(); err != nil {
				return err
			}
			logger, closer, err := openLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closer.Close()

			movies, err := services.NewCatalogService(cfg.BucketName, logger).ListMovies(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(movies) == 0 {
				fmt.Fprintf(out, "No manifests found in bucket %s\n", cfg.BucketName)
				return nil
			}
			rows := make([][]string, 0, len(movies))
			for _, movie := range movies {
				rows = append(rows, []string{movie.Name, movie.URL})
			}
			fmt.Fprintln(out, renderTable([]string{"Movie", "Manifest"}, rows))
			fmt.Fprintf(out, "Total: %d movies\n", len(movies))
			fmt.Fprintln(out, "Open one with: frame-gallery view --manifest <manifest>")
			return nil
		},
	}
}
