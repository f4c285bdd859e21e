package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings shown in the help footer. Dispatch itself is
// done by the input handler.
type KeyMap struct {
	Next    key.Binding
	Prev    key.Binding
	Focus   key.Binding
	Back    key.Binding
	Forward key.Binding
	Goto    key.Binding
	Scroll  key.Binding
	Reload  key.Binding
	Dismiss key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the reader's bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:    key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("n/→", "next")),
		Prev:    key.NewBinding(key.WithKeys("p", "left", "h"), key.WithHelp("p/←", "prev")),
		Focus:   key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch control")),
		Back:    key.NewBinding(key.WithKeys("b", "alt+left"), key.WithHelp("b", "back")),
		Forward: key.NewBinding(key.WithKeys("f", "alt+right"), key.WithHelp("f", "forward")),
		Goto:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "go to page")),
		Scroll:  key.NewBinding(key.WithKeys("j", "k", "pgup", "pgdown"), key.WithHelp("j/k", "scroll")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Dismiss: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss error")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Focus, k.Back, k.Goto, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Focus, k.Goto},
		{k.Back, k.Forward, k.Scroll},
		{k.Reload, k.Dismiss, k.Help, k.Quit},
	}
}
