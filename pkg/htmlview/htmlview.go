package htmlview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/eknkc/pug"

	"frame-gallery/assets"
	"frame-gallery/pkg/viewer"
)

// Tile is one grid thumbnail in the rendered page
type Tile struct {
	Index    int
	Href     string
	Source   string
	Label    string
	Timecode string
}

// Panel is the lightbox view of one frame, shown while its anchor is targeted
type Panel struct {
	ID       string
	Source   string
	Label    string
	Timecode string
	PrevHref string
	NextHref string
}

// Page is the data handed to the gallery template
type Page struct {
	Title  string
	Empty  *viewer.EmptyState
	Tiles  []Tile
	Panels []Panel
}

// Surface collects what the viewer renders so it can be written as a static page
type Surface struct {
	title  string
	thumbs []viewer.Thumbnail
	empty  *viewer.EmptyState
	panels map[int]viewer.Display
	open   bool
	locks  int
	logger *slog.Logger
}

// NewSurface creates an empty page surface with a default title
func NewSurface(title string, logger *slog.Logger) *Surface {
	if logger == nil {
		logger = slog.Default()
	}
	return &Surface{title: title, panels: make(map[int]viewer.Display), logger: logger}
}

func (s *Surface) ClearGrid() {
	s.thumbs = nil
	s.empty = nil
}

func (s *Surface) AddThumbnail(thumb viewer.Thumbnail) { s.thumbs = append(s.thumbs, thumb) }

func (s *Surface) ShowEmptyState(state viewer.EmptyState) { s.empty = &state }

func (s *Surface) ShowLightbox(display viewer.Display) {
	s.open = true
	s.panels[display.Index] = display
}

func (s *Surface) HideLightbox() { s.open = false }

// LockScroll counts outstanding locks; the page itself locks scrolling with CSS
func (s *Surface) LockScroll() func() {
	s.locks++
	return func() { s.locks-- }
}

func (s *Surface) SetTitle(title string) { s.title = title }

// Page builds the template data. Panels link to their neighbours by frame number.
func (s *Surface) Page() Page {
	page := Page{Title: s.title, Empty: s.empty}
	if s.empty != nil {
		return page
	}

	ids := make([]string, len(s.thumbs))
	for i, thumb := range s.thumbs {
		ids[i] = anchorID(thumb.Number)
		page.Tiles = append(page.Tiles, Tile{
			Index:    thumb.Index,
			Href:     "#" + ids[i],
			Source:   thumb.Source,
			Label:    thumb.Label,
			Timecode: thumb.Timecode,
		})
	}

	indexes := make([]int, 0, len(s.panels))
	for idx := range s.panels {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	for _, idx := range indexes {
		d := s.panels[idx]
		panel := Panel{
			ID:       anchorID(d.Number),
			Source:   d.Source,
			Label:    d.Label,
			Timecode: d.Timecode,
		}
		if d.HasPrev && idx-1 < len(ids) {
			panel.PrevHref = "#" + ids[idx-1]
		}
		if d.HasNext && idx+1 < len(ids) {
			panel.NextHref = "#" + ids[idx+1]
		}
		page.Panels = append(page.Panels, panel)
	}
	return page
}

// Render executes the pug template at templatePath with the collected page. An empty
// path uses the template compiled into the binary.
func (s *Surface) Render(w io.Writer, templatePath string) error {
	if s.open || s.locks != 0 {
		return errors.New("lightbox still open")
	}

	source, name, err := loadTemplate(templatePath)
	if err != nil {
		return err
	}

	s.logger.Debug("Compiling gallery template", "template", name)
	template, err := pug.CompileString(source, pug.Options{})
	if err != nil {
		return fmt.Errorf("compile template %s: %w", name, err)
	}
	if err := template.Execute(w, s.Page()); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	return nil
}

func loadTemplate(path string) (source, name string, err error) {
	if path == "" {
		return assets.GalleryTemplate, "embedded gallery.pug", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", path, fmt.Errorf("read template: %w", err)
	}
	return string(data), path, nil
}

// Options configures an HTML export
type Options struct {
	Title string
	// TemplatePath overrides the embedded template when set
	TemplatePath string
	Logger       *slog.Logger
}

// Export loads the manifest through the viewer and writes the gallery page to w
func Export(ctx context.Context, loader viewer.ManifestLoader, w io.Writer, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Title == "" {
		opts.Title = viewer.DefaultEmptyState.Heading
	}

	surface := NewSurface(opts.Title, opts.Logger)
	if err := Collect(ctx, loader, surface, opts.Logger); err != nil {
		return err
	}
	return surface.Render(w, opts.TemplatePath)
}

// Collect bootstraps a viewer on surface, then opens every frame in the lightbox once so
// each panel comes from the same display logic as the interactive viewer
func Collect(ctx context.Context, loader viewer.ManifestLoader, surface *Surface, logger *slog.Logger) error {
	lightbox := viewer.NewLightbox(surface, logger)
	boot := viewer.NewBootstrap(loader, viewer.NewGrid(surface), lightbox, surface, logger)
	if err := boot.Run(ctx); err != nil {
		return err
	}

	for _, thumb := range surface.thumbs {
		thumb.OnClick()
		lightbox.Close()
	}
	logger.Info("Generating gallery page", "tiles", len(surface.thumbs), "panels", len(surface.panels))
	return nil
}

func anchorID(number int) string {
	return fmt.Sprintf("frame-%d", number)
}
