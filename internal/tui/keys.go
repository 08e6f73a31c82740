package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	SwitchTab   key.Binding
	Extract     key.Binding
	Leave       key.Binding
	Composer    key.Binding
	History     key.Binding
	Items       key.Binding
	Up          key.Binding
	Down        key.Binding
	TagLeft     key.Binding
	TagRight    key.Binding
	Select      key.Binding
	Delete      key.Binding
	Toggle      key.Binding
	AddTag      key.Binding
	RemoveTag   key.Binding
	DeleteItem  key.Binding
	Copy        key.Binding
	Filter      key.Binding
	Create      key.Binding
	Transcripts key.Binding
	Refresh     key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Help        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		SwitchTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "workspace/insights")),
		Extract:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "extract")),
		Leave:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave composer")),
		Composer:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "composer")),
		History:     key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "recent")),
		Items:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "items")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		TagLeft:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev tag")),
		TagRight:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next tag")),
		Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Delete:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete transcript")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		AddTag:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "add tag")),
		RemoveTag:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "remove tag")),
		DeleteItem:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete item")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy items")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Create:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "new item")),
		Transcripts: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "all transcripts")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Confirm:     key.NewBinding(key.WithKeys("enter", "y"), key.WithHelp("enter/y", "confirm")),
		Cancel:      key.NewBinding(key.WithKeys("esc", "n"), key.WithHelp("esc/n", "cancel")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchTab, k.Composer, k.Toggle, k.AddTag, k.Filter, k.Transcripts, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SwitchTab, k.Extract, k.Leave, k.Composer, k.History, k.Items},
		{k.Up, k.Down, k.Select, k.Delete, k.Transcripts, k.Refresh},
		{k.Toggle, k.AddTag, k.RemoveTag, k.TagLeft, k.TagRight, k.DeleteItem},
		{k.Filter, k.Create, k.Copy, k.Help, k.Quit},
	}
}
