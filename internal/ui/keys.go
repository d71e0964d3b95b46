package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the watch view's key bindings
type KeyMap struct {
	Dismiss key.Binding
	End     key.Binding
	Help    key.Binding
	History key.Binding
	Pause   key.Binding
	Quit    key.Binding
	Resume  key.Binding
	Start   key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Dismiss: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new shift")),
		End:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		History: key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Resume:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resume")),
		Start:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Resume, k.End, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Resume, k.End},
		{k.Dismiss, k.History, k.Help, k.Quit},
	}
}

// syncEnabled toggles the bindings that are legal for the given shift state
func (k *KeyMap) syncEnabled(start, pause, resume, end, dismiss bool) {
	k.Start.SetEnabled(start)
	k.Pause.SetEnabled(pause)
	k.Resume.SetEnabled(resume)
	k.End.SetEnabled(end)
	k.Dismiss.SetEnabled(dismiss)
}
