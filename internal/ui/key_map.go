package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next      key.Binding
	prev      key.Binding
	add       key.Binding
	remove    key.Binding
	submit    key.Binding
	back      key.Binding
	newTopics key.Binding
	close     key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		add:       key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add topic")),
		remove:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete topic")),
		submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dashboard")),
		newTopics: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add topics")),
		close:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.submit, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev},
		{k.add, k.remove, k.submit},
		{k.back, k.quit},
	}
}

func (k keyMap) topicsHelp() []key.Binding {
	return []key.Binding{k.next, k.add, k.remove, k.submit, k.back, k.quit}
}

func (k keyMap) dashboardHelp() []key.Binding {
	return []key.Binding{k.newTopics, k.close}
}
