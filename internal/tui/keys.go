package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	ZoomIn, ZoomOut, Fit  key.Binding
	FlipX, FlipY          key.Binding
	Next, Prev, Deselect  key.Binding
	Delete, Lock          key.Binding
	Sidebar, Open, Paste  key.Binding
	Attrs, Inspect        key.Binding
	ImageLayer, Features  key.Binding
	Help, Quit            key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓←→", "nudge/pan")),
		Down:       key.NewBinding(key.WithKeys("down")),
		Left:       key.NewBinding(key.WithKeys("left")),
		Right:      key.NewBinding(key.WithKeys("right")),
		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:    key.NewBinding(key.WithKeys("-", "_")),
		Fit:        key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "fit")),
		FlipX:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x/y", "flip axis")),
		FlipY:      key.NewBinding(key.WithKeys("y")),
		Next:       key.NewBinding(key.WithKeys("]", "n"), key.WithHelp("[ ]", "select")),
		Prev:       key.NewBinding(key.WithKeys("[", "N")),
		Deselect:   key.NewBinding(key.WithKeys("esc")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Lock:       key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "lock")),
		Sidebar:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "sidebar")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "open")),
		Paste:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste")),
		Attrs:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "attrs")),
		Inspect:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "inspect")),
		ImageLayer: key.NewBinding(key.WithKeys("1"), key.WithHelp("1/2", "layers")),
		Features:   key.NewBinding(key.WithKeys("2")),
		Help:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.ZoomIn, k.Fit, k.FlipX, k.Next, k.Lock, k.Delete, k.Sidebar, k.Paste, k.Attrs, k.Inspect, k.ImageLayer, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.ZoomIn, k.Fit, k.FlipX},
		{k.Next, k.Deselect, k.Lock, k.Delete},
		{k.Sidebar, k.Open, k.Paste, k.Attrs, k.Inspect},
		{k.ImageLayer, k.Help, k.Quit},
	}
}
