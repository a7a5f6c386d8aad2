package tui

import (
	"image/color"
	"os"

	"github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"annomap/internal/applog"
	"annomap/internal/config"
	"annomap/internal/feature"
	"annomap/internal/layer"
	"annomap/internal/view"
)

const (
	imageLayerID   = "image"
	featureLayerID = "features"
)

// session is the state shared by every copy of Model. Layers and the map
// are mutated in place, so it lives behind a pointer.
type session struct {
	cfg    config.Config
	m      *view.Map
	img    *layer.ImageLayer
	feats  *layer.FeatureLayer
	queue  layer.UpdateQueue
	styles map[feature.Kind]feature.StylePatch
	bg     color.Color
	hidden map[string]bool
	watch  *watcher
	// fitPending defers fitting until the first real viewport size is known.
	fitPending bool
	pastes     int
}

// Options configures New.
type Options struct {
	Config    config.Config
	Path      string
	ImagePath string
}

type Model struct {
	s *session

	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	keys  keyMap
	help  help.Model
	theme theme

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering     bool
	hoverCellX   int
	hoverCellY   int
	hoverX       float64
	hoverY       float64
	hoverFeature string

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// New builds the map and its layers from opts.Config and optionally opens a
// file and a background image.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}
	vo, err := cfg.ViewOptions()
	if err != nil {
		return Model{}, err
	}
	vm, err := view.New(vo)
	if err != nil {
		return Model{}, err
	}
	styles, err := cfg.StylePatches()
	if err != nil {
		return Model{}, err
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return Model{}, err
	}
	s := &session{
		cfg:    cfg,
		m:      vm,
		styles: styles,
		bg:     bg,
		hidden: map[string]bool{},
	}
	dpr := layer.WithPixelRatio(cfg.Canvas.PixelRatio)
	s.img = layer.NewImageLayer(imageLayerID, layer.ImageInfo{}, dpr)
	s.feats = layer.NewFeatureLayer(featureLayerID, dpr, layer.WithSettings(cfg.Settings()))
	vm.AddLayer(s.img)
	vm.AddLayer(s.feats)
	s.feats.OnFeatureUpdated(s.queue.Push)

	if w, err := newWatcher(); err != nil {
		applog.Logger().Warn("file watching disabled", "err", err)
	} else {
		s.watch = w
	}

	m := Model{
		s:           s,
		showSidebar: false,
		helpVisible: true,
		status:      "annomap ready",
		keys:        newKeyMap(),
		help:        help.New(),
		theme:       newTheme(fromColor(bg)),
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here, one geometry per line (POINT, LINESTRING, POLYGON...). Ctrl+S to add; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()

	if opts.ImagePath != "" {
		if err := s.img.LoadImage(opts.ImagePath); err != nil {
			m.status = "image error: " + err.Error()
		} else {
			s.fitPending = true
		}
	}
	if opts.Path != "" {
		m.loadPath(opts.Path)
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	if m.s.watch == nil {
		return nil
	}
	return m.s.watch.next()
}

// Map exposes the view for callers embedding the model.
func (m Model) Map() *view.Map { return m.s.m }

// Features exposes the annotation layer.
func (m Model) Features() *layer.FeatureLayer { return m.s.feats }
