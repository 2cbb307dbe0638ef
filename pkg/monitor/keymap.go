package monitor

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the board key bindings.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	NextLane key.Binding
	PrevLane key.Binding

	Select    key.Binding // Toggle the cursor card in the selection.
	SelectAll key.Binding
	Clear     key.Binding

	MoveEarlier key.Binding // Move the selection one slot back.
	MoveLater   key.Binding
	MoveToPrev  key.Binding // Move the selection to the previous lane.
	MoveToNext  key.Binding

	OpenFolder key.Binding
	Copy       key.Binding
	Filter     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	NextLane: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next lane"),
	),
	PrevLane: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-tab", "prev lane"),
	),
	Select: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("C-a", "select all"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	MoveEarlier: key.NewBinding(
		key.WithKeys("H", "shift+left"),
		key.WithHelp("H", "move back"),
	),
	MoveLater: key.NewBinding(
		key.WithKeys("L", "shift+right"),
		key.WithHelp("L", "move on"),
	),
	MoveToPrev: key.NewBinding(
		key.WithKeys("K", "shift+up"),
		key.WithHelp("K", "to lane above"),
	),
	MoveToNext: key.NewBinding(
		key.WithKeys("J", "shift+down"),
		key.WithHelp("J", "to lane below"),
	),
	OpenFolder: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open folder"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "find"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.MoveEarlier, k.MoveLater, k.OpenFolder, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.NextLane, k.PrevLane},
		{k.Select, k.SelectAll, k.Clear, k.Filter, k.Copy},
		{k.MoveEarlier, k.MoveLater, k.MoveToPrev, k.MoveToNext, k.OpenFolder},
		{k.Help, k.Quit},
	}
}
