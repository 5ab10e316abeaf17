package console

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines every key binding the console uses. Navigation keys
// are context-sensitive: in the ticket list they move the cursor, in a
// detail pane they scroll.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Screen switching.
	GoDashboard key.Binding
	GoTickets   key.Binding
	GoReports   key.Binding
	GoConfig    key.Binding

	// Ticket list.
	Select     key.Binding
	SelectAll  key.Binding
	ClearSel   key.Binding
	Open       key.Binding
	Back       key.Binding
	Search     key.Binding
	CycleState key.Binding
	CycleCat   key.Binding
	CyclePrio  key.Binding
	ClearFilt  key.Binding

	// Mutations.
	BulkProgress key.Binding
	BulkResolve  key.Binding
	Export       key.Binding
	Advance      key.Binding
	AssignMe     key.Binding
	AddNote      key.Binding

	Logout key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in binding set. Vim movement alongside
// arrows, digits for screens.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next page"),
	),
	GoDashboard: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	GoTickets: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "tickets"),
	),
	GoReports: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "reports"),
	),
	GoConfig: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "config"),
	),
	Select: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "select"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "select page"),
	),
	ClearSel: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear selection"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	CycleState: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status filter"),
	),
	CycleCat: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "category filter"),
	),
	CyclePrio: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "priority filter"),
	),
	ClearFilt: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "clear filters"),
	),
	BulkProgress: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "mark in progress"),
	),
	BulkResolve: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "mark resolved"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export xlsx"),
	),
	Advance: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "advance status"),
	),
	AssignMe: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "assign to me"),
	),
	AddNote: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "add note"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("C-l", "logout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
