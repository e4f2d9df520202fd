package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap holds the host commands. Keys bound to switches never reach it.
type keyMap struct {
	Method key.Binding
	Start  key.Binding
	Stop   key.Binding
	Hold   key.Binding
	Help   key.Binding
	Pager  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Method: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "next method")),
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Stop:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
		Hold:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hold first switch")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Pager:  key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "help in pager")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Method, k.Start, k.Stop, k.Hold, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Method, k.Start, k.Stop},
		{k.Hold, k.Help, k.Pager, k.Quit},
	}
}

// switchCode names a key the way switch codes are written in the config
func switchCode(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return "space"
	}
	return msg.String()
}
