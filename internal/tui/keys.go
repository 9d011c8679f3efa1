package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the confirmation prompt.
type KeyMap struct {
	Yes    key.Binding
	No     key.Binding
	Toggle key.Binding
	Submit key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("left", "right", "h", "l", "tab", "shift+tab"),
			key.WithHelp("←/→", "toggle"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "cancel"),
		),
	}
}

// HelpText returns a formatted help string for the prompt.
func (k KeyMap) HelpText() string {
	return "y/n answer • ←/→ toggle • enter confirm • esc cancel"
}
