package tui

import "charm.land/bubbles/v2/key"

// Key strings as reported by tea.KeyPressMsg.String().
const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
	keyEsc   = "esc"
	keyTab   = "tab"
)

type keyMap struct {
	Add    key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Clear  key.Binding
	Filter key.Binding
	Focus  key.Binding
	Blur   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("space", "x"),
			key.WithHelp("space", "toggle"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear completed"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "i"),
			key.WithHelp("tab", "input"),
		),
		Blur: key.NewBinding(
			key.WithKeys("tab", "down", "esc"),
			key.WithHelp("tab", "list"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// inputHelp lists the bindings active while the composer has focus.
func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Add, k.Blur}
}

// listHelp lists the bindings active while the list has focus.
func (k keyMap) listHelp(canClear bool) []key.Binding {
	clearBinding := k.Clear
	clearBinding.SetEnabled(canClear)
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Delete, clearBinding, k.Filter, k.Focus, k.Quit}
}
