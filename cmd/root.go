package cmd

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"frame-gallery/pkg/config"
	"frame-gallery/pkg/logging"
	"frame-gallery/pkg/services"
)

// Configuration flags
var (
	manifestURL string
	bucketName  string
	configPath  string
	logLevel    string
	logFile     string
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "frame-gallery",
		Short: "Frame Gallery browses the frames extracted from a video",
		Long: `Frame Gallery is a command line application that loads a frame manifest produced by
the frame extractor and shows it as a grid of thumbnails with a lightbox viewer. Manifests
can be read from the frame server, a local file or Google Cloud Storage.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&manifestURL, "manifest", "m", "", "Set the FRAMES_MANIFEST_URL (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the BUCKET_NAME (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a TOML config file (default "+config.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set the LOG_LEVEL: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Set the LOG_FILE logs are appended to")

	// Add commands to root
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newShowManifestCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newListMoviesCmd())

	return rootCmd
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	if manifestURL != "" {
		os.Setenv("FRAMES_MANIFEST_URL", manifestURL)
	}

	if bucketName != "" {
		os.Setenv("BUCKET_NAME", bucketName)
	}

	if logLevel != "" {
		os.Setenv("LOG_LEVEL", logLevel)
	}

	if logFile != "" {
		os.Setenv("LOG_FILE", logFile)
	}

	// Load configuration from the config file and environment (potentially set above)
	return config.Load(configPath)
}

// openLogger logs to the configured file, or to fallback when none is set
func openLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	return logging.Open(cfg.LogFile, cfg.LogLevel, fallback)
}

func newManifestClient(cfg *config.Config, logger *slog.Logger) (*services.ManifestClient, error) {
	source, err := services.NewSource(cfg.ManifestURL, http.DefaultClient)
	if err != nil {
		return nil, err
	}
	return services.NewManifestClient(source, logger), nil
}
