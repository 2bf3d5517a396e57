package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Autosave key.Binding
	Switch   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Autosave: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autosave")),
		Switch:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "save/load")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) hints() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Autosave, k.Switch, k.Quit}
}
