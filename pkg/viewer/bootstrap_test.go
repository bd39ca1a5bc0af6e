package viewer

import (
	"context"
	"errors"
	"testing"

	"frame-gallery/pkg/models"
	"frame-gallery/pkg/services"
)

func newTestBootstrap(loader ManifestLoader) (*Bootstrap, *Lightbox, *recorder) {
	rec := &recorder{}
	lb := NewLightbox(rec, discardLogger())
	return NewBootstrap(loader, NewGrid(rec), lb, rec, discardLogger()), lb, rec
}

func TestBootstrapRendersGridAndWiresLightbox(t *testing.T) {
	loader := &stubLoader{manifest: models.FrameManifest{MovieName: strPtr("Sample"), Frames: scenarioFrames()}}
	boot, lb, rec := newTestBootstrap(loader)

	if err := boot.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if rec.title != "Sample" {
		t.Fatalf("unexpected title %q", rec.title)
	}
	if len(rec.thumbs) != 2 || rec.empty != nil {
		t.Fatalf("expected 2 thumbnails and no empty state, got %d / %+v", len(rec.thumbs), rec.empty)
	}

	rec.click(1)
	if !lb.IsOpen() || rec.display.Source != "f2.jpg" {
		t.Fatalf("thumbnail click did not open frame 2: %+v", rec.display)
	}
}

func TestBootstrapWithoutMovieNameKeepsTitle(t *testing.T) {
	loader := &stubLoader{manifest: models.FrameManifest{Frames: framesOf(1)}}
	boot, _, rec := newTestBootstrap(loader)
	rec.title = "FRAMES"

	if err := boot.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if rec.title != "FRAMES" {
		t.Fatalf("title changed to %q", rec.title)
	}
}

func TestBootstrapFailuresShowEmptyState(t *testing.T) {
	tests := []struct {
		name string
		err  error
		man  models.FrameManifest
	}{
		{name: "transport", err: &services.LoadError{Kind: services.TransportError, Source: "x", Err: errors.New("refused")}},
		{name: "protocol", err: &services.LoadError{Kind: services.ProtocolError, Source: "x", StatusCode: 500}},
		{name: "empty", err: &services.LoadError{Kind: services.EmptyResult, Source: "x"}},
		{name: "zero frames without error", man: models.FrameManifest{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boot, lb, rec := newTestBootstrap(&stubLoader{manifest: tt.man, err: tt.err})
			if err := boot.Run(context.Background()); err != nil {
				t.Fatalf("Run returned error: %v", err)
			}
			if rec.empty == nil {
				t.Fatal("expected empty state")
			}
			if len(rec.thumbs) != 0 {
				t.Fatalf("expected no thumbnails, got %d", len(rec.thumbs))
			}
			if lb.Open(0) {
				t.Fatal("lightbox opened without frames")
			}
		})
	}
}

func TestBootstrapRunsOnce(t *testing.T) {
	loader := &stubLoader{manifest: models.FrameManifest{Frames: framesOf(2)}}
	boot, _, _ := newTestBootstrap(loader)

	if err := boot.Run(context.Background()); err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}
	if err := boot.Run(context.Background()); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted, got %v", err)
	}
	if err := boot.Apply(Result{Manifest: models.FrameManifest{Frames: framesOf(9)}}); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("expected ErrAlreadyStarted from Apply, got %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected one load, got %d", loader.calls)
	}
}

func TestBootstrapLoadDoesNotTouchSurface(t *testing.T) {
	loader := &stubLoader{manifest: models.FrameManifest{Frames: framesOf(3)}}
	boot, _, rec := newTestBootstrap(loader)

	result := boot.Load(context.Background())
	if !result.OK() {
		t.Fatalf("unexpected result: %+v", result)
	}
	if rec.clears != 0 || len(rec.thumbs) != 0 {
		t.Fatal("Load mutated the surface")
	}
	if err := boot.Apply(result); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if len(rec.thumbs) != 3 {
		t.Fatalf("expected 3 thumbnails, got %d", len(rec.thumbs))
	}
}
