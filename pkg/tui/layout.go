package tui

import "frame-gallery/pkg/viewer"

const (
	defaultWidth  = 80
	defaultHeight = 24

	headerHeight = 2
	footerHeight = 1
	tileHeight   = 4

	prevLabel  = "< prev"
	closeLabel = "[x] close"
	nextLabel  = "next >"
	controlGap = 3
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// lightboxLayout is the screen geometry of the open overlay
type lightboxLayout struct {
	box     rect
	caption rect
	image   rect
	prev    rect
	close   rect
	next    rect
}

func (m *Model) screenWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m *Model) screenHeight() int {
	if m.height <= 0 {
		return defaultHeight
	}
	return m.height
}

func (m *Model) columns() int {
	cols := m.screenWidth() / m.tileWidth
	if cols < 1 {
		return 1
	}
	return cols
}

func (m *Model) visibleRows() int {
	rows := (m.screenHeight() - headerHeight - footerHeight) / tileHeight
	if rows < 1 {
		return 1
	}
	return rows
}

func (m *Model) totalRows() int {
	cols := m.columns()
	return (len(m.tiles) + cols - 1) / cols
}

// tileAt maps a screen cell to the index of the grid tile drawn there
func (m *Model) tileAt(x, y int) (int, bool) {
	if y < headerHeight || x < 0 {
		return 0, false
	}
	row := (y - headerHeight) / tileHeight
	if row >= m.visibleRows() {
		return 0, false
	}
	col := x / m.tileWidth
	cols := m.columns()
	if col >= cols {
		return 0, false
	}
	idx := (m.scrollRow+row)*cols + col
	if idx >= len(m.tiles) {
		return 0, false
	}
	return idx, true
}

func (m *Model) lightboxLayout() lightboxLayout {
	width := m.screenWidth()
	height := m.screenHeight() - footerHeight

	boxW := width - 4
	if boxW > 64 {
		boxW = 64
	}
	if boxW < 32 {
		boxW = min(width, 32)
	}
	imgH := height - 10
	if imgH > 12 {
		imgH = 12
	}
	if imgH < 3 {
		imgH = 3
	}
	boxH := imgH + 6

	x0 := max((width-boxW)/2, 0)
	y0 := max((height-boxH)/2, 0)
	innerX := x0 + 2
	controlsY := y0 + 3 + imgH + 1

	prev := rect{x: innerX, y: controlsY, w: len(prevLabel), h: 1}
	closeBtn := rect{x: prev.x + prev.w + controlGap, y: controlsY, w: len(closeLabel), h: 1}
	next := rect{x: closeBtn.x + closeBtn.w + controlGap, y: controlsY, w: len(nextLabel), h: 1}

	return lightboxLayout{
		box:     rect{x: x0, y: y0, w: boxW, h: boxH},
		caption: rect{x: x0 + 1, y: y0 + 1, w: boxW - 2, h: 1},
		image:   rect{x: x0 + 1, y: y0 + 3, w: boxW - 2, h: imgH},
		prev:    prev,
		close:   closeBtn,
		next:    next,
	}
}

// target maps a screen cell to the part of the overlay it belongs to
func (l lightboxLayout) target(x, y int) viewer.ClickTarget {
	switch {
	case l.prev.contains(x, y):
		return viewer.TargetPrev
	case l.close.contains(x, y):
		return viewer.TargetClose
	case l.next.contains(x, y):
		return viewer.TargetNext
	case l.image.contains(x, y):
		return viewer.TargetImage
	case l.box.contains(x, y):
		return viewer.TargetCaption
	default:
		return viewer.TargetBackground
	}
}
