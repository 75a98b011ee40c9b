package teaprogram

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/gookit/color"
)

type keyMap struct {
	Watch key.Binding
	Log   key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Watch, k.Log, k.Quit}
}

var keys = keyMap{
	Watch: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "toggle watch mode"),
	),
	Log: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "toggle log"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func helpView(k keyMap) string {
	parts := []string{}
	for _, b := range k.ShortHelp() {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, color.Bold.Sprint(h.Key)+" "+color.Gray.Sprint(h.Desc))
	}
	return strings.Join(parts, color.Gray.Sprint(" • "))
}
