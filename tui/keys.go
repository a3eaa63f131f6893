package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tab      key.Binding
	Next     key.Binding
	Previous key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Up       key.Binding
	Down     key.Binding
	Edit     key.Binding
	Cancel   key.Binding
	Delete   key.Binding
	Apply    key.Binding
	Reload   key.Binding
	Hide     key.Binding
	Dark     key.Binding
	Logout   key.Binding
	Quit     key.Binding
	Yes      key.Binding
	No       key.Binding
}

var keys = keyMap{
	Tab:      key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "tab")),
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
	Previous: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous tab")),
	NextPage: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous page")),
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
	Edit:     key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Apply:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Hide:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hide amounts")),
	Dark:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "dark mode")),
	Logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Yes:      key.NewBinding(key.WithKeys("y", "Y")),
	No:       key.NewBinding(key.WithKeys("n", "N", "esc")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Down, k.Edit, k.Delete, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Next, k.Previous, k.NextPage, k.PrevPage},
		{k.Up, k.Down, k.Edit, k.Cancel, k.Delete, k.Apply},
		{k.Reload, k.Hide, k.Dark, k.Logout, k.Quit},
	}
}
