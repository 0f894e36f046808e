package tui

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	New      key.Binding
	Refresh  key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Dismiss  key.Binding
	Quit     key.Binding
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Refresh, k.PrevPage, k.NextPage, k.Dismiss, k.Quit}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type formKeyMap struct {
	NextField key.Binding
	PrevField key.Binding
	Cycle     key.Binding
	Commit    key.Binding
	Submit    key.Binding
	Cancel    key.Binding
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.PrevField, k.Cycle, k.Commit, k.Submit, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var listKeys = listKeyMap{
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new employee")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	PrevPage: key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←", "prev page")),
	NextPage: key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→", "next page")),
	Dismiss:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

var formKeys = formKeyMap{
	NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
	Cycle:     key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "choose")),
	Commit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add hobby")),
	Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
