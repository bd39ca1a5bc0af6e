package viewer

import (
	"context"
	"errors"
	"log/slog"

	"frame-gallery/pkg/models"
	"frame-gallery/pkg/services"
)

// ErrAlreadyStarted is returned when a viewer is bootstrapped twice
var ErrAlreadyStarted = errors.New("viewer already started")

// ManifestLoader fetches the frame manifest
type ManifestLoader interface {
	Load(ctx context.Context) (models.FrameManifest, error)
}

// Result is the outcome of the manifest load
type Result struct {
	Manifest models.FrameManifest
	Err      error
}

// OK reports whether the load produced at least one frame
func (r Result) OK() bool {
	return r.Err == nil && len(r.Manifest.Frames) > 0
}

// Bootstrap wires the manifest load to the grid and the lightbox, once
type Bootstrap struct {
	loader   ManifestLoader
	grid     *Grid
	lightbox *Lightbox
	title    TitleSurface
	logger   *slog.Logger
	started  bool
}

// NewBootstrap creates the startup sequence. title may be nil.
func NewBootstrap(loader ManifestLoader, grid *Grid, lightbox *Lightbox, title TitleSurface, logger *slog.Logger) *Bootstrap {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bootstrap{
		loader:   loader,
		grid:     grid,
		lightbox: lightbox,
		title:    title,
		logger:   logger,
	}
}

// Load runs the manifest fetch. It touches no surface, so it may run off the event loop.
func (b *Bootstrap) Load(ctx context.Context) Result {
	manifest, err := b.loader.Load(ctx)
	return Result{Manifest: manifest, Err: err}
}

// Apply renders the grid for a successful result, or the empty state for anything else.
// Load failures are logged, not returned.
func (b *Bootstrap) Apply(r Result) error {
	if b.started {
		return ErrAlreadyStarted
	}
	b.started = true

	if !r.OK() {
		b.logger.Warn("No frames available",
			"kind", services.KindOf(r.Err).String(),
			"error", r.Err,
		)
		b.grid.RenderEmpty()
		return nil
	}

	if err := b.lightbox.SetFrames(r.Manifest.Frames); err != nil {
		return err
	}
	if title, ok := r.Manifest.Title(); ok && b.title != nil {
		b.title.SetTitle(title)
	}
	n := b.grid.Render(r.Manifest.Frames, func(i int) { b.lightbox.Open(i) })
	b.logger.Info("Grid rendered", "frames", n)
	return nil
}

// Run loads the manifest and applies the result
func (b *Bootstrap) Run(ctx context.Context) error {
	if b.started {
		return ErrAlreadyStarted
	}
	return b.Apply(b.Load(ctx))
}
