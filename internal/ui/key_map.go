package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the browser.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	play    key.Binding
	add     key.Binding
	remove  key.Binding
	playAll key.Binding
	clear   key.Binding
	toggle  key.Binding
	back    key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		play:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to playlist")),
		remove:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove")),
		playAll: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "play playlist")),
		clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear playlist")),
		toggle:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.play},
		{k.add, k.remove, k.playAll, k.clear},
		{k.toggle, k.back, k.quit},
	}
}
