package model

import (
	"github.com/byxorna/roster/pkg/types/v1"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap defines a set of keybindings. To work for help it must satisfy
// key.Map. It could also very easily be a map[string]key.Binding.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Search key.Binding
	Open   key.Binding
	Back   key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding

	SortName    key.Binding
	SortEmail   key.Binding
	SortCity    key.Binding
	SortCompany key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view. It's part
// of the key.Map interface.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Open, k.SortName, k.SortCompany, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view. It's part of the
// key.Map interface.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.SortName, k.SortEmail, k.SortCity, k.SortCompany},
		{k.Search, k.Reload, k.Help, k.Quit},
	}
}

// sortColumn maps a pressed sort key to its column.
func (k keyMap) sortColumn(msg tea.KeyMsg) (string, bool) {
	switch {
	case key.Matches(msg, k.SortName):
		return v1.ColumnName, true
	case key.Matches(msg, k.SortEmail):
		return v1.ColumnEmail, true
	case key.Matches(msg, k.SortCity):
		return v1.ColumnCity, true
	case key.Matches(msg, k.SortCompany):
		return v1.ColumnCompany, true
	}
	return "", false
}

// DefaultKeyMap returns a default set of keybindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "posts"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		SortName: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "sort name"),
		),
		SortEmail: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sort email"),
		),
		SortCity: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sort city"),
		),
		SortCompany: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "sort company"),
		),
	}
}
