package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/patrickmn/go-cache"

	"frame-gallery/pkg/models"
)

// ErrNoFrames is matched by every manifest load failure
var ErrNoFrames = errors.New("no frames available")

// LoadErrorKind classifies why a manifest could not be loaded
type LoadErrorKind int

const (
	// TransportError means the source could not be reached or read
	TransportError LoadErrorKind = iota + 1
	// ProtocolError means the source answered with a non-success status or a malformed payload
	ProtocolError
	// EmptyResult means the manifest was well formed but listed no frames
	EmptyResult
)

func (k LoadErrorKind) String() string {
	switch k {
	case TransportError:
		return "transport"
	case ProtocolError:
		return "protocol"
	case EmptyResult:
		return "empty"
	default:
		return "unknown"
	}
}

// LoadError describes a failed manifest load
type LoadError struct {
	Kind       LoadErrorKind
	Source     string
	StatusCode int
	Err        error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("load manifest from %s: %s error", e.Source, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is reports every load error as ErrNoFrames so callers can treat all causes alike
func (e *LoadError) Is(target error) bool { return target == ErrNoFrames }

// KindOf returns the kind of a load error, or 0 when err is not one
func KindOf(err error) LoadErrorKind {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Kind
	}
	return 0
}

// ManifestClient loads the frame manifest from a single source, at most once
type ManifestClient struct {
	source   Source
	logger   *slog.Logger
	outcomes *cache.Cache
	mu       sync.Mutex
}

type loadOutcome struct {
	manifest models.FrameManifest
	err      error
}

// NewManifestClient creates a client for the given source
func NewManifestClient(source Source, logger *slog.Logger) *ManifestClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &ManifestClient{
		source:   source,
		logger:   logger,
		outcomes: cache.New(cache.NoExpiration, 0),
	}
}

// Source returns the description of the manifest source
func (c *ManifestClient) Source() string {
	return c.source.String()
}

// Load fetches and parses the manifest. The first outcome, success or failure, is kept
// and returned by every later call without touching the source again.
func (c *ManifestClient) Load(ctx context.Context) (models.FrameManifest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := c.source.String()
	if cached, found := c.outcomes.Get(key); found {
		c.logger.Debug("Using cached manifest outcome", "source", key)
		outcome := cached.(loadOutcome)
		return cloneManifest(outcome.manifest), outcome.err
	}

	c.logger.Debug("Fetching manifest", "source", key)
	manifest, err := c.fetch(ctx)
	c.outcomes.Set(key, loadOutcome{manifest: manifest, err: err}, cache.NoExpiration)
	if err != nil {
		return models.FrameManifest{}, err
	}
	c.logger.Info("Manifest loaded", "source", key, "frames", len(manifest.Frames))
	return cloneManifest(manifest), nil
}

func (c *ManifestClient) fetch(ctx context.Context) (models.FrameManifest, error) {
	body, err := c.source.Fetch(ctx)
	if err != nil {
		return models.FrameManifest{}, err
	}
	return ParseManifest(c.source.String(), body)
}

// ParseManifest decodes a manifest body and checks it against the frame contract
func ParseManifest(source string, body []byte) (models.FrameManifest, error) {
	var manifest models.FrameManifest
	if err := json.Unmarshal(body, &manifest); err != nil {
		return models.FrameManifest{}, &LoadError{Kind: ProtocolError, Source: source, Err: fmt.Errorf("decode manifest: %w", err)}
	}
	if len(manifest.Frames) == 0 {
		return models.FrameManifest{}, &LoadError{Kind: EmptyResult, Source: source}
	}
	if err := validateFrames(manifest.Frames); err != nil {
		return models.FrameManifest{}, &LoadError{Kind: ProtocolError, Source: source, Err: err}
	}
	return manifest, nil
}

func validateFrames(frames []models.Frame) error {
	seen := make(map[int]int, len(frames))
	for i, frame := range frames {
		if frame.Number <= 0 {
			return fmt.Errorf("frame at position %d: number %d is not positive", i, frame.Number)
		}
		if prev, dup := seen[frame.Number]; dup {
			return fmt.Errorf("frame at position %d: number %d already used at position %d", i, frame.Number, prev)
		}
		seen[frame.Number] = i
		if frame.Thumbnail == "" {
			return fmt.Errorf("frame %d: missing thumbnail", frame.Number)
		}
	}
	return nil
}

func cloneManifest(m models.FrameManifest) models.FrameManifest {
	m.Frames = slices.Clone(m.Frames)
	return m
}
