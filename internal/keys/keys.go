package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the interactive mail browser.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	// Open shows the selected mail's body and attachments.
	Open key.Binding

	// Refresh discards the current results and reruns the search.
	Refresh key.Binding

	Back key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the standard keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
