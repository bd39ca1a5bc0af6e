package viewer

import (
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"frame-gallery/pkg/models"
)

// ErrFramesAlreadySet is returned when a lightbox is given frames a second time
var ErrFramesAlreadySet = errors.New("frames already set")

// Lightbox owns one ViewerState and mirrors every transition onto its surface.
// It is driven from a single event loop and is not safe for concurrent use.
type Lightbox struct {
	id      string
	state   ViewerState
	loaded  bool
	surface LightboxSurface
	release func()
	logger  *slog.Logger
}

// NewLightbox creates a closed lightbox with no frames
func NewLightbox(surface LightboxSurface, logger *slog.Logger) *Lightbox {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.NewString()
	return &Lightbox{
		id:      id,
		surface: surface,
		logger:  logger.With("viewer", id),
	}
}

// ID identifies this lightbox instance in logs
func (lb *Lightbox) ID() string { return lb.id }

// SetFrames stores the loaded frames. Frames are read-only afterwards.
func (lb *Lightbox) SetFrames(frames []models.Frame) error {
	if lb.loaded {
		return ErrFramesAlreadySet
	}
	lb.state.Frames = slices.Clone(frames)
	lb.loaded = true
	return nil
}

// State returns a copy of the current state
func (lb *Lightbox) State() ViewerState {
	s := lb.state
	s.Frames = slices.Clone(s.Frames)
	return s
}

// IsOpen reports whether the overlay is showing
func (lb *Lightbox) IsOpen() bool { return lb.state.IsOpen }

// Open shows frame i. Out-of-range indexes are ignored.
func (lb *Lightbox) Open(i int) bool {
	wasOpen := lb.state.IsOpen
	next, ok := lb.state.Open(i)
	if !ok {
		lb.logger.Debug("Ignoring open", "index", i, "frames", len(lb.state.Frames))
		return false
	}
	lb.state = next
	if !wasOpen {
		lb.release = lb.surface.LockScroll()
	}
	lb.show()
	lb.logger.Debug("Lightbox opened", "index", i)
	return true
}

// Close hides the overlay and releases the scroll lock
func (lb *Lightbox) Close() bool {
	next, ok := lb.state.Close()
	if !ok {
		return false
	}
	lb.state = next
	lb.surface.HideLightbox()
	if lb.release != nil {
		lb.release()
		lb.release = nil
	}
	lb.logger.Debug("Lightbox closed", "index", lb.state.Current)
	return true
}

// Next moves to the following frame; a no-op on the last one
func (lb *Lightbox) Next() bool {
	next, ok := lb.state.Next()
	if !ok {
		return false
	}
	lb.state = next
	lb.show()
	return true
}

// Prev moves to the previous frame; a no-op on the first one
func (lb *Lightbox) Prev() bool {
	next, ok := lb.state.Prev()
	if !ok {
		return false
	}
	lb.state = next
	lb.show()
	return true
}

// HandleKey routes a key press. Keys are only consumed while the lightbox is open.
func (lb *Lightbox) HandleKey(key Key) bool {
	if !lb.state.IsOpen {
		return false
	}
	switch key {
	case KeyEscape:
		lb.Close()
	case KeyArrowLeft:
		lb.Prev()
	case KeyArrowRight:
		lb.Next()
	default:
		return false
	}
	return true
}

// HandleClick routes a pointer click on the open lightbox. Only the background and the
// close control dismiss it; clicks on the image or caption are swallowed.
func (lb *Lightbox) HandleClick(target ClickTarget) bool {
	if !lb.state.IsOpen {
		return false
	}
	switch target {
	case TargetBackground, TargetClose:
		lb.Close()
	case TargetPrev:
		lb.Prev()
	case TargetNext:
		lb.Next()
	}
	return true
}

func (lb *Lightbox) show() {
	if display, ok := lb.state.Display(); ok {
		lb.surface.ShowLightbox(display)
	}
}
