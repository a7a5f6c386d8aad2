package tui

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"annomap/internal/applog"
	"annomap/internal/feature"
	"annomap/internal/geom"
	"annomap/internal/view"
)

// panCells is how far one arrow press pans the view, in terminal cells.
const panCells = 4

// lockPolicy rejects proposed updates for features with a true "locked"
// property.
func lockPolicy(ev feature.UpdateEvent) (feature.Shape, bool) {
	if locked, _ := ev.Feature.Props()["locked"].(bool); locked {
		return nil, false
	}
	return ev.Proposed, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if nm, ok := next.(Model); ok && nm.width > 0 {
		nm.resizeMap()
		return nm, cmd
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeMap()
		if m.s.fitPending {
			m.fitView()
		}
	case fileChangedMsg:
		m.reloadPath(msg.path)
		return m, m.s.watch.next()
	case watchErrMsg:
		m.status = "watch error: " + msg.err.Error()
		return m, m.s.watch.next()
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		m.updateMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// resizeMap gives the map one screen pixel per braille dot of the canvas.
// It only touches the map when the canvas size changed.
func (m *Model) resizeMap() {
	lay := m.layout()
	w, h := float64(lay.mapW*microW), float64(lay.mapH*microH)
	if cw, ch := m.s.m.Size(); cw != w || ch != h {
		m.s.m.Resize(w, h)
	}
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	}
	m.help.Width = lay.contentW
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// If list is visible and filtering, send keys to list and ignore global commands
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.pasteMode {
		switch msg.String() {
		case "esc":
			m.pasteMode = false
			m.ta.Blur()
			return m, nil
		case "ctrl+s":
			w := strings.TrimSpace(m.ta.Value())
			if w == "" {
				m.status = "paste: empty"
				return m, nil
			}
			before := m.s.feats.Len()
			if err := m.addWKT(w); err != nil {
				m.status = "wkt error: " + err.Error()
				return m, nil
			}
			m.status = fmt.Sprintf("added %d from WKT  %s", m.s.feats.Len()-before, m.countsLine())
			m.pasteMode = false
			m.ta.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.ta, cmd = m.ta.Update(msg)
		return m, cmd
	}
	if m.showAttrs {
		switch {
		case key.Matches(msg, m.keys.Attrs), msg.String() == "esc":
			m.showAttrs = false
			return m, nil
		case key.Matches(msg, m.keys.Quit):
			return m, m.quit()
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	k := m.keys
	s := m.s
	switch {
	case key.Matches(msg, k.Quit):
		return m, m.quit()
	case key.Matches(msg, k.Up):
		m.arrow(view.Up)
	case key.Matches(msg, k.Down):
		m.arrow(view.Down)
	case key.Matches(msg, k.Left):
		m.arrow(view.DirLeft)
	case key.Matches(msg, k.Right):
		m.arrow(view.DirRight)
	case key.Matches(msg, k.ZoomIn):
		s.m.ZoomIn()
		m.status = fmt.Sprintf("scale: %.4g", s.m.Scale())
	case key.Matches(msg, k.ZoomOut):
		s.m.ZoomOut()
		m.status = fmt.Sprintf("scale: %.4g", s.m.Scale())
	case key.Matches(msg, k.Fit):
		m.fitView()
		m.status = "fit"
	case key.Matches(msg, k.FlipX):
		a := s.m.Axes()
		a.X = a.X.Flip()
		s.m.SetAxes(a)
		m.status = "axes: " + a.String()
	case key.Matches(msg, k.FlipY):
		a := s.m.Axes()
		a.Y = a.Y.Flip()
		s.m.SetAxes(a)
		m.status = "axes: " + a.String()
	case key.Matches(msg, k.Next):
		m.selectNext(1)
	case key.Matches(msg, k.Prev):
		m.selectNext(-1)
	case key.Matches(msg, k.Deselect):
		s.feats.Select("")
		m.inspectPopup = ""
		m.status = "selection cleared"
	case key.Matches(msg, k.Delete):
		if f, ok := s.feats.Selected(); ok {
			s.feats.Remove(f.ID())
			m.status = "deleted " + f.ID()
		}
	case key.Matches(msg, k.Lock):
		if f, ok := s.feats.Selected(); ok {
			locked, _ := f.Props()["locked"].(bool)
			f.SetProp("locked", !locked)
			m.status = fmt.Sprintf("%s locked: %v", f.ID(), !locked)
		}
	case key.Matches(msg, k.Sidebar):
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
	case key.Matches(msg, k.Open):
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case key.Matches(msg, k.Paste):
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		return m, m.ta.Focus()
	case key.Matches(msg, k.Help):
		// short help, full help, hidden
		switch {
		case !m.helpVisible:
			m.helpVisible, m.help.ShowAll = true, false
		case !m.help.ShowAll:
			m.help.ShowAll = true
		default:
			m.helpVisible = false
		}
	case key.Matches(msg, k.Attrs):
		m.showAttrs = true
		m.refreshAttrsFromCurrent()
	case key.Matches(msg, k.Inspect):
		m.inspect()
	case key.Matches(msg, k.ImageLayer):
		m.toggleLayer(imageLayerID)
	case key.Matches(msg, k.Features):
		m.toggleLayer(featureLayerID)
	default:
		if m.showSidebar {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	if m.s.watch != nil {
		if err := m.s.watch.Close(); err != nil {
			applog.Logger().Warn("close watcher", "err", err)
		}
	}
	return tea.Quit
}

// arrow nudges the selected feature, or pans when nothing is selected.
func (m *Model) arrow(dir view.Direction) {
	s := m.s
	if f, ok := s.feats.Selected(); ok {
		if !s.feats.MoveSelected(dir) {
			return
		}
		n, err := s.queue.CommitAll(s.feats, lockPolicy)
		switch {
		case err != nil:
			m.status = "move error: " + err.Error()
		case n == 0:
			m.status = f.ID() + " is locked"
		default:
			c := f.Center()
			m.status = fmt.Sprintf("%s at %.3f, %.3f", f.ID(), c.X, c.Y)
		}
		return
	}
	dx, dy := 0.0, 0.0
	switch dir {
	case view.Up:
		dy = panCells * microH
	case view.Down:
		dy = -panCells * microH
	case view.DirLeft:
		dx = panCells * microW
	case view.DirRight:
		dx = -panCells * microW
	}
	s.m.Pan(dx, dy)
}

func (m *Model) selectNext(delta int) {
	f, ok := m.s.feats.SelectNext(delta)
	if !ok {
		m.status = "no features"
		return
	}
	m.status = fmt.Sprintf("selected %s (%s)", f.ID(), f.Kind())
}

func (m *Model) toggleLayer(id string) {
	m.s.hidden[id] = !m.s.hidden[id]
	state := "shown"
	if m.s.hidden[id] {
		state = "hidden"
	}
	m.status = id + " layer " + state
}

// inspect describes the selected feature, or the one under the cursor.
func (m *Model) inspect() {
	f, ok := m.s.feats.Selected()
	if !ok && m.hovering {
		f, ok = m.s.feats.HitTestScreen(cellCenter(m.hoverCellX, m.hoverCellY))
	}
	if !ok {
		m.inspectPopup = "no feature selected"
		m.status = m.inspectPopup
		return
	}
	b := f.Bounds()
	c := f.Center()
	st := f.Style()
	meta := []string{
		m.theme.title.Render(f.ID()),
		fmt.Sprintf("kind: %s", f.Kind()),
		fmt.Sprintf("center: %.4f, %.4f", c.X, c.Y),
		fmt.Sprintf("bbox: [%.4f, %.4f, %.4f, %.4f]", b.MinX, b.MinY, b.MaxX, b.MaxY),
		fmt.Sprintf("stroke: %s width=%g", st.StrokeColor, st.LineWidth),
	}
	props := f.Props()
	if locked, _ := props["locked"].(bool); locked {
		meta = append(meta, m.theme.locked.Render("locked"))
	}
	for _, k := range slices.Sorted(maps.Keys(props)) {
		meta = append(meta, fmt.Sprintf("%s: %s", k, formatProp(props[k])))
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect " + f.ID()
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	lay := m.layout()
	cx, cy, ok := lay.inMap(msg.X, msg.Y)
	m.hovering = ok
	if !ok {
		return
	}
	m.hoverCellX, m.hoverCellY = cx, cy
	at := cellCenter(cx, cy)
	g := m.s.m.ToGlobal(at)
	m.hoverX, m.hoverY = g.X, g.Y
	m.hoverFeature = ""
	if f, hit := m.s.feats.HitTestScreen(at); hit {
		m.hoverFeature = f.ID()
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.s.m.ZoomAt(at, m.s.cfg.View.ZoomStep)
	case msg.Button == tea.MouseButtonWheelDown:
		m.s.m.ZoomAt(at, 1/m.s.cfg.View.ZoomStep)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.clickAt(at)
	}
}

// clickAt selects the topmost feature under the screen point, or clears
// the selection on empty canvas.
func (m *Model) clickAt(at geom.Point) {
	f, ok := m.s.feats.HitTestScreen(at)
	if !ok {
		m.s.feats.Select("")
		m.inspectPopup = ""
		return
	}
	m.s.feats.Select(f.ID())
	m.status = fmt.Sprintf("selected %s (%s)", f.ID(), f.Kind())
	applog.Logger().Debug("click", "feature", f.ID(), "screen", at)
}
