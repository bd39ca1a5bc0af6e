package viewer

import (
	"context"
	"io"
	"log/slog"

	"frame-gallery/pkg/models"
)

// recorder is an in-memory surface implementing every port
type recorder struct {
	title     string
	thumbs    []Thumbnail
	clears    int
	empty     *EmptyState
	display   *Display
	shown     []Display
	hides     int
	locks     int
	releases  int
	lockDepth int
}

func (r *recorder) ClearGrid() {
	r.clears++
	r.thumbs = nil
	r.empty = nil
}

func (r *recorder) AddThumbnail(thumb Thumbnail) { r.thumbs = append(r.thumbs, thumb) }

func (r *recorder) ShowEmptyState(state EmptyState) { r.empty = &state }

func (r *recorder) ShowLightbox(display Display) {
	r.display = &display
	r.shown = append(r.shown, display)
}

func (r *recorder) HideLightbox() {
	r.display = nil
	r.hides++
}

func (r *recorder) LockScroll() func() {
	r.locks++
	r.lockDepth++
	return func() {
		r.releases++
		r.lockDepth--
	}
}

func (r *recorder) SetTitle(title string) { r.title = title }

func (r *recorder) click(i int) { r.thumbs[i].OnClick() }

type stubLoader struct {
	manifest models.FrameManifest
	err      error
	calls    int
}

func (l *stubLoader) Load(context.Context) (models.FrameManifest, error) {
	l.calls++
	return l.manifest, l.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

func scenarioFrames() []models.Frame {
	return []models.Frame{
		{Number: 1, Timecode: "00:00:01", Thumbnail: "t1.jpg"},
		{Number: 2, Timecode: "00:00:05", Thumbnail: "t2.jpg", Full: strPtr("f2.jpg")},
	}
}

func framesOf(n int) []models.Frame {
	frames := make([]models.Frame, n)
	for i := range frames {
		frames[i] = models.Frame{
			Number:    i + 1,
			Timecode:  "00:00:00",
			Thumbnail: "thumb.jpg",
		}
	}
	return frames
}

func newTestLightbox(frames []models.Frame) (*Lightbox, *recorder) {
	rec := &recorder{}
	lb := NewLightbox(rec, discardLogger())
	if frames != nil {
		if err := lb.SetFrames(frames); err != nil {
			panic(err)
		}
	}
	return lb, rec
}
