package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New            key.Binding
	Rename         key.Binding
	Remove         key.Binding
	Map            key.Binding
	Enter          key.Binding
	Back           key.Binding
	Cancel         key.Binding
	AddRelation    key.Binding
	RemoveRelation key.Binding
	Switch         key.Binding
	SwitchBack     key.Binding
	Reset          key.Binding
	Yes            key.Binding
	No             key.Binding
	ForceQuit      key.Binding
}

var keys = keyMap{
	New:            key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new person")),
	Rename:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rename")),
	Remove:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
	Map:            key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "map")),
	Enter:          key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:           key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "back")),
	Cancel:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	AddRelation:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "add relationship")),
	RemoveRelation: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove relationship")),
	Switch:         key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch")),
	SwitchBack:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "switch back")),
	Reset:          key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Yes:            key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
	No:             key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
	ForceQuit:      key.NewBinding(key.WithKeys("ctrl+c")),
}
