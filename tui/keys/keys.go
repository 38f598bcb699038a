package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Enter      key.Binding
	Toggle     key.Binding
	Escape     key.Binding
	Quit       key.Binding
	Help       key.Binding
	Tab        key.Binding
	Add        key.Binding
	Delete     key.Binding
	Clear      key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Thresholds key.Binding
	Undo       key.Binding
	Diff       key.Binding
	Broker     key.Binding
	Theme      key.Binding
	Open       key.Binding
}

// DefaultKeyMap provides the default set of key bindings.
var DefaultKeyMap = KeyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("left/h", "previous option")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("right/l", "next option")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit / open")),
	Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Tab:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Clear:      key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "clear field")),
	MoveUp:     key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
	MoveDown:   key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
	Thresholds: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "color thresholds")),
	Undo:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	Diff:       key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "diff")),
	Broker:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "mqtt broker")),
	Theme:      key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "next theme")),
	Open:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open card")),
}
