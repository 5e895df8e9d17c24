package focustui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle    key.Binding
	Reset     key.Binding
	Settings  key.Binding
	PrevPre   key.Binding
	NextPre   key.Binding
	Custom    key.Binding
	Up        key.Binding
	Down      key.Binding
	Target    key.Binding
	Complete  key.Binding
	Quit      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	PresetNum key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle:    key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "start/pause")),
		Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Settings:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "duration")),
		PrevPre:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "preset")),
		NextPre:   key.NewBinding(key.WithKeys("right", "l")),
		Custom:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "custom")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/↓", "move")),
		Down:      key.NewBinding(key.WithKeys("down", "j")),
		Target:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "focus on")),
		Complete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "complete")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
		Confirm:   key.NewBinding(key.WithKeys("enter")),
		Cancel:    key.NewBinding(key.WithKeys("esc")),
		PresetNum: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9")),
	}
}

func (keys keyMap) mainHelp() []key.Binding {
	return []key.Binding{keys.Toggle, keys.Reset, keys.Settings, keys.Up, keys.Target, keys.Complete, keys.Quit}
}

func (keys keyMap) settingsHelp() []key.Binding {
	return []key.Binding{keys.PrevPre, keys.Custom, keys.Settings, keys.Quit}
}
