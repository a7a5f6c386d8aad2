package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"annomap/internal/applog"
	"annomap/internal/feature"
	"annomap/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

var supportedExt = map[string]bool{
	".geojson": true, ".json": true, ".csv": true, ".kml": true, ".wkt": true, ".txt": true,
}

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if supportedExt[ext] {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath replaces the annotations with the contents of p, follows the
// file for changes and fits the view.
func (m *Model) loadPath(p string) {
	if err := m.replaceFrom(p); err != nil {
		m.status = "load error: " + err.Error()
		applog.Logger().Warn("load", "path", p, "err", err)
		return
	}
	m.selPath = p
	if m.s.watch != nil {
		if err := m.s.watch.follow(p); err != nil {
			applog.Logger().Warn("watch", "path", p, "err", err)
		}
	}
	m.s.fitPending = true
	m.fitView()
	m.status = "loaded: " + filepath.Base(p) + "  " + m.countsLine()
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

// reloadPath re-reads the followed file but keeps the view.
func (m *Model) reloadPath(p string) {
	if err := m.replaceFrom(p); err != nil {
		m.status = "reload error: " + err.Error()
		return
	}
	m.status = "reloaded: " + filepath.Base(p) + "  " + m.countsLine()
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

func (m *Model) replaceFrom(p string) error {
	d, err := geom.Load(p)
	if err != nil {
		return err
	}
	fs, err := feature.FromData(d, "f", m.s.styles)
	if err != nil {
		return err
	}
	for _, f := range fs {
		f.SetProp("source", filepath.Base(p))
	}
	l := m.s.feats
	var addErr error
	l.Batch(func() {
		l.Clear()
		addErr = l.Add(fs...)
	})
	return addErr
}

// addWKT appends the geometries of a pasted WKT block.
func (m *Model) addWKT(text string) error {
	d, err := geom.ParseWKTText(text)
	if err != nil {
		return err
	}
	m.s.pastes++
	fs, err := feature.FromData(d, fmt.Sprintf("paste%d", m.s.pastes), m.s.styles)
	if err != nil {
		return err
	}
	for _, f := range fs {
		f.SetProp("source", "paste")
	}
	if err := m.s.feats.Add(fs...); err != nil {
		return err
	}
	m.s.fitPending = true
	m.fitView()
	return nil
}

// fitView fits features, or the image when there are none. It waits for
// the first window size when the viewport is not known yet.
func (m *Model) fitView() {
	if m.width == 0 || m.height == 0 {
		return
	}
	s := m.s
	s.fitPending = false
	margin := s.cfg.View.FitMargin
	if b, ok := s.feats.Bounds(); ok {
		s.m.FitBounds(b, margin)
		return
	}
	if s.img.Ready() {
		s.img.FitMap(margin)
	}
}

func (m *Model) countsLine() string {
	counts := map[feature.Kind]int{}
	for _, f := range m.s.feats.Features() {
		counts[f.Kind()]++
	}
	var parts []string
	for _, k := range feature.Kinds() {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " ")
}
