package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	next     key.Binding
	random   key.Binding
	upvote   key.Binding
	downvote key.Binding
	open     key.Binding
	refresh  key.Binding
	back     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "recent/top")),
		random:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "random")),
		upvote:   key.NewBinding(key.WithKeys("u", "+"), key.WithHelp("u", "upvote")),
		downvote: key.NewBinding(key.WithKeys("d", "-"), key.WithHelp("d", "downvote")),
		open:     key.NewBinding(key.WithKeys("o", "enter"), key.WithHelp("o", "open")),
		refresh:  key.NewBinding(key.WithKeys("R", "ctrl+r"), key.WithHelp("R", "refresh")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.next},
		{k.upvote, k.downvote, k.open},
		{k.random, k.refresh, k.back, k.quit},
	}
}
