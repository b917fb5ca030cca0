package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Launch      key.Binding
	Cycle       key.Binding
	Minimize    key.Binding
	Close       key.Binding
	Maximize    key.Binding
	Move        key.Binding
	Resize      key.Binding
	Search      key.Binding
	Quit        key.Binding
	SearchUp    key.Binding
	SearchDown  key.Binding
	SearchPick  key.Binding
	SearchClose key.Binding
	SearchMode  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Launch:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "launch")),
		Cycle:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "cycle")),
		Minimize:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "minimize")),
		Close:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close")),
		Maximize:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "maximize")),
		Move:        key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "move")),
		Resize:      key.NewBinding(key.WithKeys("shift+up", "shift+down", "shift+left", "shift+right"), key.WithHelp("shift+←↑↓→", "resize")),
		Search:      key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "search")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		SearchUp:    key.NewBinding(key.WithKeys("up")),
		SearchDown:  key.NewBinding(key.WithKeys("down")),
		SearchPick:  key.NewBinding(key.WithKeys("enter")),
		SearchClose: key.NewBinding(key.WithKeys("esc")),
		SearchMode:  key.NewBinding(key.WithKeys("ctrl+t")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Launch, k.Cycle, k.Minimize, k.Close, k.Maximize, k.Search, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Move, k.Resize}}
}
