package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultManifestURL is the frames endpoint of a locally running frame server
	DefaultManifestURL = "http://localhost:8000/api/frames/"

	// DefaultTileWidth is the width in cells of one grid tile in the terminal viewer
	DefaultTileWidth = 18

	// MinTileWidth fits "Frame 99999" plus the tile border
	MinTileWidth = 14
)

// Config holds all configuration for the application
type Config struct {
	ManifestURL  string `toml:"manifest_url"`
	BucketName   string `toml:"bucket"`
	LogLevel     string `toml:"log_level"`
	LogFile      string `toml:"log_file"`
	TemplatePath string `toml:"template_path"` // empty uses the embedded template
	TileWidth    int    `toml:"tile_width"`
}

// ErrManifestURLNotSet is returned when no manifest source is configured
var ErrManifestURLNotSet = errors.New("FRAMES_MANIFEST_URL not set")

// ErrBucketNameNotSet is returned when a bucket is required but BUCKET_NAME is not set
var ErrBucketNameNotSet = errors.New("BUCKET_NAME environment variable not set")

// ErrInvalidLogLevel is returned when the log level is not one of debug, info, warn, error
var ErrInvalidLogLevel = errors.New("invalid log level")

// ErrTileWidthTooSmall is returned when the tile width cannot fit a frame label
var ErrTileWidthTooSmall = errors.New("tile width too small")

// Default returns the configuration used when nothing else is set
func Default() Config {
	return Config{
		ManifestURL: DefaultManifestURL,
		LogLevel:    "info",
		TileWidth:   DefaultTileWidth,
	}
}

// DefaultConfigPath returns the location of the optional config file
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "frame-gallery", "config.toml")
	}
	return ""
}

// Load builds the configuration from defaults, the optional TOML file at path and the
// environment, in that order. An empty path falls back to DefaultConfigPath; a missing
// default file is not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		if err := cfg.readFile(path, explicit); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) readFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("FRAMES_MANIFEST_URL"); v != "" {
		c.ManifestURL = v
	}
	if v := os.Getenv("BUCKET_NAME"); v != "" {
		c.BucketName = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("TEMPLATE_PATH"); v != "" {
		c.TemplatePath = v
	}
	if v := os.Getenv("TILE_WIDTH"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse TILE_WIDTH: %w", err)
		}
		c.TileWidth = width
	}
	return nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	c.ManifestURL = strings.TrimSpace(c.ManifestURL)
	if c.ManifestURL == "" {
		return ErrManifestURLNotSet
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}

	if c.TileWidth < MinTileWidth {
		return fmt.Errorf("%w: %d (minimum %d)", ErrTileWidthTooSmall, c.TileWidth, MinTileWidth)
	}
	return nil
}

// RequireBucket returns ErrBucketNameNotSet when no bucket is configured
func (c *Config) RequireBucket() error {
	if c.BucketName == "" {
		return ErrBucketNameNotSet
	}
	return nil
}
