package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"frame-gallery/pkg/config"
	"frame-gallery/pkg/viewer"
)

type loadedMsg viewer.Result

// Options configures the terminal viewer
type Options struct {
	Title     string
	TileWidth int
	Logger    *slog.Logger
}

// Model is the terminal rendering surface of one viewer. It implements every viewer
// port; all mutation happens inside Update on the bubbletea event loop.
type Model struct {
	ctx       context.Context
	boot      *viewer.Bootstrap
	lightbox  *viewer.Lightbox
	logger    *slog.Logger
	tileWidth int

	title   string
	loading bool
	tiles   []viewer.Thumbnail
	loaded  map[int]bool
	empty   *viewer.EmptyState

	display *viewer.Display
	locked  bool

	cursor    int
	scrollRow int
	width     int
	height    int
}

// New builds a viewer whose manifest comes from loader
func New(ctx context.Context, loader viewer.ManifestLoader, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.TileWidth < config.MinTileWidth {
		opts.TileWidth = config.DefaultTileWidth
	}
	if opts.Title == "" {
		opts.Title = viewer.DefaultEmptyState.Heading
	}

	m := &Model{
		ctx:       ctx,
		logger:    opts.Logger,
		tileWidth: opts.TileWidth,
		title:     opts.Title,
		loading:   true,
		loaded:    make(map[int]bool),
	}
	m.lightbox = viewer.NewLightbox(m, opts.Logger)
	m.boot = viewer.NewBootstrap(loader, viewer.NewGrid(m), m.lightbox, m, opts.Logger)
	return m
}

// Lightbox exposes the controller driving the overlay
func (m *Model) Lightbox() *viewer.Lightbox { return m.lightbox }

// Loaded reports whether the tile at index has been scrolled into view
func (m *Model) Loaded(index int) bool { return m.loaded[index] }

// ClearGrid implements viewer.GridSurface
func (m *Model) ClearGrid() {
	m.tiles = nil
	m.loaded = make(map[int]bool)
	m.empty = nil
	m.cursor = 0
	m.scrollRow = 0
}

// AddThumbnail implements viewer.GridSurface
func (m *Model) AddThumbnail(thumb viewer.Thumbnail) {
	m.tiles = append(m.tiles, thumb)
}

// ShowEmptyState implements viewer.GridSurface
func (m *Model) ShowEmptyState(state viewer.EmptyState) {
	m.empty = &state
}

// ShowLightbox implements viewer.LightboxSurface
func (m *Model) ShowLightbox(display viewer.Display) {
	m.display = &display
	m.cursor = display.Index
}

// HideLightbox implements viewer.LightboxSurface
func (m *Model) HideLightbox() {
	m.display = nil
	m.ensureCursorVisible()
}

// LockScroll implements viewer.LightboxSurface
func (m *Model) LockScroll() func() {
	m.locked = true
	return func() { m.locked = false }
}

// SetTitle implements viewer.TitleSurface
func (m *Model) SetTitle(title string) {
	m.title = title
}

func (m *Model) Init() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg(m.boot.Load(m.ctx))
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ensureCursorVisible()

	case loadedMsg:
		m.loading = false
		if err := m.boot.Apply(viewer.Result(msg)); err != nil {
			m.logger.Error("Bootstrap failed", "error", err)
		}
		m.markVisible()

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		m.lightbox.Close()
		return tea.Quit
	}

	if m.lightbox.HandleKey(lightboxKey(msg)) {
		return nil
	}
	if m.locked || len(m.tiles) == 0 {
		return nil
	}

	cols := m.columns()
	switch msg.String() {
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-cols)
	case "down", "j":
		m.moveCursor(cols)
	case "pgup":
		m.moveCursor(-cols * m.visibleRows())
	case "pgdown":
		m.moveCursor(cols * m.visibleRows())
	case "home", "g":
		m.moveCursor(-len(m.tiles))
	case "end", "G":
		m.moveCursor(len(m.tiles))
	case "enter", " ":
		m.tiles[m.cursor].OnClick()
	}
	return nil
}

func lightboxKey(msg tea.KeyMsg) viewer.Key {
	switch msg.Type {
	case tea.KeyEsc:
		return viewer.KeyEscape
	case tea.KeyLeft:
		return viewer.KeyArrowLeft
	case tea.KeyRight:
		return viewer.KeyArrowRight
	}
	return viewer.Key(msg.String())
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if m.locked {
			return
		}
		delta := 1
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -1
		}
		m.scroll(delta)
	case tea.MouseButtonLeft:
		if m.lightbox.IsOpen() {
			target := m.lightboxLayout().target(msg.X, msg.Y)
			m.logger.Debug("Lightbox click", "target", target.String())
			m.lightbox.HandleClick(target)
			return
		}
		if idx, ok := m.tileAt(msg.X, msg.Y); ok {
			m.cursor = idx
			m.tiles[idx].OnClick()
		}
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor = min(max(m.cursor+delta, 0), len(m.tiles)-1)
	m.ensureCursorVisible()
}

func (m *Model) scroll(delta int) {
	maxRow := max(m.totalRows()-m.visibleRows(), 0)
	m.scrollRow = min(max(m.scrollRow+delta, 0), maxRow)
	cols := m.columns()
	first := m.scrollRow * cols
	last := min((m.scrollRow+m.visibleRows())*cols, len(m.tiles)) - 1
	m.cursor = min(max(m.cursor, first), max(last, 0))
	m.markVisible()
}

func (m *Model) ensureCursorVisible() {
	if len(m.tiles) == 0 {
		return
	}
	row := m.cursor / m.columns()
	visible := m.visibleRows()
	if row < m.scrollRow {
		m.scrollRow = row
	}
	if row >= m.scrollRow+visible {
		m.scrollRow = row - visible + 1
	}
	m.markVisible()
}

// markVisible records the tiles in the viewport as loaded; tiles never scrolled to
// are never materialised
func (m *Model) markVisible() {
	cols := m.columns()
	start := m.scrollRow * cols
	end := min((m.scrollRow+m.visibleRows())*cols, len(m.tiles))
	for i := start; i < end; i++ {
		m.loaded[i] = true
	}
}

func (m *Model) View() string {
	if m.display != nil {
		return m.lightboxView() + "\n" + helpStyle.Render("←/→ navigate • esc close • q quit")
	}

	var b strings.Builder
	header := titleStyle.Render(m.title)
	if len(m.tiles) > 0 {
		header += countStyle.Render(fmt.Sprintf("  %d frames", len(m.tiles)))
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString("Loading frames…\n")
	case m.empty != nil:
		panel := titleStyle.Render(m.empty.Heading) + "\n\n" + m.empty.Message
		b.WriteString(emptyStyle.Width(min(m.screenWidth()-4, 60)).Render(panel))
		b.WriteString("\n")
	default:
		b.WriteString(m.gridView())
	}

	b.WriteString(helpStyle.Render("arrows move • enter open • q quit"))
	return b.String()
}

func (m *Model) gridView() string {
	cols := m.columns()
	var rows []string
	for r := m.scrollRow; r < m.scrollRow+m.visibleRows() && r < m.totalRows(); r++ {
		var cells []string
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			if idx >= len(m.tiles) {
				break
			}
			cells = append(cells, m.tileView(idx))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...) + "\n"
}

func (m *Model) tileView(idx int) string {
	thumb := m.tiles[idx]
	inner := m.tileWidth - 2
	style := tileStyle
	if idx == m.cursor {
		style = selectedTileStyle
	}
	label := tileLabelStyle.Render(ansi.Truncate(thumb.Label, inner, "…"))
	timecode := tileTimeStyle.Render(ansi.Truncate(thumb.Timecode, inner, "…"))
	return style.Width(inner).Height(tileHeight - 2).Render(label + "\n" + timecode)
}

func (m *Model) lightboxView() string {
	d := m.display
	l := m.lightboxLayout()
	width := m.screenWidth()
	height := m.screenHeight() - footerHeight
	innerW := l.box.w - 4

	var content []string
	caption := captionStyle.Render(d.Label) + "   " + timecodeStyle.Render(d.Timecode)
	content = append(content, caption, "")
	for i := 0; i < l.image.h; i++ {
		line := imageStyle.Render(strings.Repeat("░", innerW))
		if i == l.image.h/2 {
			src := ansi.Truncate(d.Source, innerW, "…")
			pad := (innerW - lipgloss.Width(src)) / 2
			line = imageStyle.Render(strings.Repeat("░", pad)) +
				sourceStyle.Render(src) +
				imageStyle.Render(strings.Repeat("░", innerW-pad-lipgloss.Width(src)))
		}
		content = append(content, line)
	}
	content = append(content, "", m.controlsLine(d))

	boxLines := make([]string, 0, l.box.h)
	boxLines = append(boxLines, boxBorderStyle.Render("╭"+strings.Repeat("─", l.box.w-2)+"╮"))
	for _, line := range content {
		boxLines = append(boxLines, boxBorderStyle.Render("│")+" "+padRight(line, innerW)+" "+boxBorderStyle.Render("│"))
	}
	boxLines = append(boxLines, boxBorderStyle.Render("╰"+strings.Repeat("─", l.box.w-2)+"╯"))

	blank := backgroundStyle.Render(strings.Repeat(" ", width))
	lines := make([]string, 0, height)
	for y := 0; y < height; y++ {
		if y >= l.box.y && y < l.box.y+len(boxLines) {
			lines = append(lines, strings.Repeat(" ", l.box.x)+boxLines[y-l.box.y])
			continue
		}
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) controlsLine(d *viewer.Display) string {
	prev := controlStyle.Render(prevLabel)
	if !d.HasPrev {
		prev = disabledStyle.Render(prevLabel)
	}
	next := controlStyle.Render(nextLabel)
	if !d.HasNext {
		next = disabledStyle.Render(nextLabel)
	}
	gap := strings.Repeat(" ", controlGap)
	return prev + gap + controlStyle.Render(closeLabel) + gap + next
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-w)
}
