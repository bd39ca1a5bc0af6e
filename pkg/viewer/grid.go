package viewer

import "frame-gallery/pkg/models"

// DefaultEmptyState tells the user how to produce frame data
var DefaultEmptyState = EmptyState{
	Heading: "FRAMES",
	Message: "No frames yet. Run the frame extractor on a video to write static/frames/manifest.json, then reload.",
}

// Grid renders frames as lazily loaded thumbnails
type Grid struct {
	surface GridSurface
	empty   EmptyState
}

// NewGrid creates a grid renderer over surface
func NewGrid(surface GridSurface) *Grid {
	return &Grid{surface: surface, empty: DefaultEmptyState}
}

// WithEmptyState replaces the empty-state panel
func (g *Grid) WithEmptyState(state EmptyState) *Grid {
	g.empty = state
	return g
}

// Render replaces the grid with one thumbnail per frame, in order. Clicking the
// thumbnail at position i calls onSelect(i). An empty frame list renders the empty state.
// It returns the number of thumbnails added.
func (g *Grid) Render(frames []models.Frame, onSelect func(index int)) int {
	if len(frames) == 0 {
		g.RenderEmpty()
		return 0
	}

	g.surface.ClearGrid()
	for i, frame := range frames {
		g.surface.AddThumbnail(Thumbnail{
			Index:    i,
			Number:   frame.Number,
			Source:   frame.Thumbnail,
			Label:    frame.Label(),
			Timecode: frame.Timecode,
			Lazy:     true,
			OnClick: func() {
				if onSelect != nil {
					onSelect(i)
				}
			},
		})
	}
	return len(frames)
}

// RenderEmpty clears the grid and shows the empty-state panel
func (g *Grid) RenderEmpty() {
	g.surface.ClearGrid()
	g.surface.ShowEmptyState(g.empty)
}
