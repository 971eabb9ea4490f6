package tui

import "github.com/charmbracelet/bubbles/key"

type collectKeys struct {
	Add, Remove, Up, Down, Generate, Quit key.Binding
}

func (k collectKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Remove, k.Generate, k.Quit}
}

func (k collectKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Add, k.Remove, k.Up, k.Down}, {k.Generate, k.Quit}}
}

var collectKeyMap = collectKeys{
	Add:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
	Remove:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove")),
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
	Generate: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "generate")),
	Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

type cardKeys struct {
	Up, Down, Left, Right, Toggle, Copy, New, Quit key.Binding
	owner                                         bool
}

func (k cardKeys) ShortHelp() []key.Binding {
	b := []key.Binding{k.Toggle}
	if k.owner {
		b = append(b, k.Copy, k.New)
	}
	return append(b, k.Quit)
}

func (k cardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, k.ShortHelp()}
}

var cardKeyMap = cardKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Toggle: key.NewBinding(key.WithKeys(" ", "enter", "x"), key.WithHelp("space", "mark")),
	Copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy link")),
	New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new card")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}
