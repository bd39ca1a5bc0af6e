package viewer

// Thumbnail is one grid element handed to a GridSurface
type Thumbnail struct {
	Index    int
	Number   int
	Source   string
	Label    string
	Timecode string
	// Lazy asks the surface to defer fetching the image until it is in view
	Lazy    bool
	OnClick func()
}

// EmptyState is the informational panel shown instead of an empty grid
type EmptyState struct {
	Heading string
	Message string
}

// Display is what the lightbox shows for the current frame
type Display struct {
	Index    int
	Number   int
	Source   string
	Label    string
	Timecode string
	HasPrev  bool
	HasNext  bool
}

// GridSurface receives the thumbnail grid
type GridSurface interface {
	ClearGrid()
	AddThumbnail(thumb Thumbnail)
	ShowEmptyState(state EmptyState)
}

// LightboxSurface receives the lightbox overlay. LockScroll freezes the page behind the
// overlay and returns the func that releases it.
type LightboxSurface interface {
	ShowLightbox(display Display)
	HideLightbox()
	LockScroll() (release func())
}

// TitleSurface receives the movie title
type TitleSurface interface {
	SetTitle(title string)
}

// Key is a keyboard key name as reported by the input layer
type Key string

const (
	KeyEscape     Key = "Escape"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
)

// ClickTarget is the part of the open lightbox a pointer click landed on
type ClickTarget int

const (
	TargetBackground ClickTarget = iota
	TargetImage
	TargetCaption
	TargetClose
	TargetPrev
	TargetNext
)

func (t ClickTarget) String() string {
	switch t {
	case TargetBackground:
		return "background"
	case TargetImage:
		return "image"
	case TargetCaption:
		return "caption"
	case TargetClose:
		return "close"
	case TargetPrev:
		return "prev"
	case TargetNext:
		return "next"
	default:
		return "unknown"
	}
}
