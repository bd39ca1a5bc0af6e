package htmlview

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"frame-gallery/pkg/models"
	"frame-gallery/pkg/services"
)

var templatePath = filepath.Join("..", "..", "assets", "templates", "gallery.pug")

type stubLoader struct {
	manifest models.FrameManifest
	err      error
}

func (l stubLoader) Load(context.Context) (models.FrameManifest, error) {
	return l.manifest, l.err
}

func strPtr(s string) *string { return &s }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scenarioManifest() models.FrameManifest {
	return models.FrameManifest{
		MovieName: strPtr("Sample"),
		Frames: []models.Frame{
			{Number: 1, Timecode: "00:00:01", Thumbnail: "t1.jpg"},
			{Number: 2, Timecode: "00:00:05", Thumbnail: "t2.jpg", Full: strPtr("f2.jpg")},
			{Number: 7, Timecode: "00:01:10", Thumbnail: "t7.jpg", Full: strPtr("f7.jpg")},
		},
	}
}

func exportPage(t *testing.T, loader stubLoader) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Export(context.Background(), loader, &buf, Options{Logger: discardLogger()}); err != nil {
		t.Fatalf("Export returned error: %v", err)
	}
	return buf.String()
}

func TestSurfacePageFromViewer(t *testing.T) {
	surface := NewSurface("FRAMES", discardLogger())
	loader := stubLoader{manifest: scenarioManifest()}

	if err := Collect(context.Background(), loader, surface, discardLogger()); err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}

	page := surface.Page()
	if page.Title != "Sample" {
		t.Fatalf("unexpected title %q", page.Title)
	}
	if len(page.Tiles) != 3 || len(page.Panels) != 3 {
		t.Fatalf("expected 3 tiles and panels, got %d / %d", len(page.Tiles), len(page.Panels))
	}
	wantSources := []string{"t1.jpg", "t2.jpg", "t7.jpg"}
	for i, tile := range page.Tiles {
		if tile.Source != wantSources[i] || tile.Index != i {
			t.Fatalf("tile %d out of order: %+v", i, tile)
		}
	}
	if page.Tiles[2].Href != "#frame-7" {
		t.Fatalf("unexpected href %q", page.Tiles[2].Href)
	}

	first, middle, last := page.Panels[0], page.Panels[1], page.Panels[2]
	if first.Source != "t1.jpg" || first.PrevHref != "" || first.NextHref != "#frame-2" {
		t.Fatalf("unexpected first panel %+v", first)
	}
	if middle.Source != "f2.jpg" || middle.Label != "Frame 2" || middle.Timecode != "00:00:05" {
		t.Fatalf("unexpected middle panel %+v", middle)
	}
	if middle.PrevHref != "#frame-1" || middle.NextHref != "#frame-7" {
		t.Fatalf("unexpected middle links %+v", middle)
	}
	if last.NextHref != "" || last.ID != "frame-7" {
		t.Fatalf("unexpected last panel %+v", last)
	}
	if surface.open || surface.locks != 0 {
		t.Fatal("export left the lightbox open")
	}
}

func TestExportWritesLazyGrid(t *testing.T) {
	html := exportPage(t, stubLoader{manifest: scenarioManifest()})

	if !strings.HasPrefix(html, "<!DOCTYPE html>") {
		t.Fatalf("missing doctype:\n%s", html)
	}
	if got := strings.Count(html, `loading="lazy"`); got != 3 {
		t.Fatalf("expected 3 lazy thumbnails, got %d:\n%s", got, html)
	}
	// one grid image and one lightbox image per frame
	if got := strings.Count(html, "<img"); got != 6 {
		t.Fatalf("expected 6 images, got %d:\n%s", got, html)
	}
	i1, i2, i7 := strings.Index(html, "t1.jpg"), strings.Index(html, "t2.jpg"), strings.Index(html, "t7.jpg")
	if i1 < 0 || i2 < i1 || i7 < i2 {
		t.Fatalf("thumbnails out of order:\n%s", html)
	}
	for _, want := range []string{
		"<title>Sample</title>",
		`href="#frame-7"`,
		`id="frame-2"`,
		`src="f2.jpg"`,
		"00:00:05",
		`class="prev disabled"`,
		`class="next disabled"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("page missing %q:\n%s", want, html)
		}
	}
}

func TestRenderTemplatePaths(t *testing.T) {
	abs, err := filepath.Abs(templatePath)
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{"", templatePath, abs} {
		surface := NewSurface("FRAMES", discardLogger())
		if err := Collect(context.Background(), stubLoader{manifest: scenarioManifest()}, surface, discardLogger()); err != nil {
			t.Fatalf("Collect returned error: %v", err)
		}
		var buf bytes.Buffer
		if err := surface.Render(&buf, path); err != nil {
			t.Fatalf("Render(%q) returned error: %v", path, err)
		}
		if got := strings.Count(buf.String(), `loading="lazy"`); got != 3 {
			t.Fatalf("Render(%q) wrote %d lazy thumbnails", path, got)
		}
	}
}

func TestExportEmptyState(t *testing.T) {
	loaders := []stubLoader{
		{err: &services.LoadError{Kind: services.TransportError, Source: "x", Err: errors.New("refused")}},
		{manifest: models.FrameManifest{}},
	}
	for _, loader := range loaders {
		html := exportPage(t, loader)
		if strings.Contains(html, "<img") {
			t.Fatalf("empty page rendered images:\n%s", html)
		}
		if !strings.Contains(html, "No frames yet.") {
			t.Fatalf("empty page missing message:\n%s", html)
		}
	}
}

func TestRenderRefusesOpenLightbox(t *testing.T) {
	surface := NewSurface("FRAMES", discardLogger())
	release := surface.LockScroll()
	if err := surface.Render(io.Discard, templatePath); err == nil {
		t.Fatal("expected error while a scroll lock is held")
	}
	release()
}

func TestRenderMissingTemplate(t *testing.T) {
	surface := NewSurface("FRAMES", discardLogger())
	if err := surface.Render(io.Discard, filepath.Join(t.TempDir(), "missing.pug")); err == nil {
		t.Fatal("expected error for missing template")
	}
}
