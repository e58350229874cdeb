package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"todos/internal/config"
)

type keyMap struct {
	Quit            key.Binding
	Add             key.Binding
	Up              key.Binding
	Down            key.Binding
	Toggle          key.Binding
	ToggleAll       key.Binding
	Delete          key.Binding
	Edit            key.Binding
	Confirm         key.Binding
	Cancel          key.Binding
	NextFilter      key.Binding
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding
	ClearCompleted  key.Binding
	Dismiss         key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:            bind("quit", k.Quit, "ctrl+c"),
		Add:             bind("new", k.Add),
		Up:              bind("up", k.Up, "up"),
		Down:            bind("down", k.Down, "down"),
		Toggle:          bind("toggle", k.Toggle),
		ToggleAll:       bind("toggle all", k.ToggleAll),
		Delete:          bind("delete", k.Delete),
		Edit:            bind("edit", k.Edit, k.Confirm),
		Confirm:         bind("save", k.Confirm),
		Cancel:          bind("cancel", k.Cancel),
		NextFilter:      bind("filter", k.NextFilter),
		FilterAll:       bind("all", k.FilterAll),
		FilterActive:    bind("active", k.FilterActive),
		FilterCompleted: bind("completed", k.FilterCompleted),
		ClearCompleted:  bind("clear completed", k.ClearCompleted),
		Dismiss:         bind("dismiss", k.Dismiss, k.Cancel),
	}
}

// bind skips empty keys so a blank config entry disables the action.
func bind(desc string, keys ...string) key.Binding {
	var ks []string
	for _, k := range keys {
		if k != "" {
			ks = append(ks, k)
		}
	}
	if len(ks) == 0 {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(key.WithKeys(ks...), key.WithHelp(helpLabel(ks[0]), desc))
}

func helpLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.ToggleAll, k.NextFilter, k.ClearCompleted, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Edit},
		{k.Toggle, k.ToggleAll, k.Delete, k.ClearCompleted},
		{k.NextFilter, k.FilterAll, k.FilterActive, k.FilterCompleted},
		{k.Dismiss, k.Quit},
	}
}
