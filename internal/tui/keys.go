package tui

import (
	"strings"

	"loanos-client/internal/render"
	"loanos-client/internal/workflow"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Quit        key.Binding
	ForceQuit   key.Binding
	Menu        key.Binding
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Back        key.Binding
	Reload      key.Binding
	Login       key.Binding
	Register    key.Binding
	NewApp      key.Binding
	Status      key.Binding
	Eligible    key.Binding
	KYC         key.Binding
	Credit      key.Binding
	Eligibility key.Binding
	Next        key.Binding
	Prev        key.Binding
	Toggle      key.Binding
	Submit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Menu:        key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "menu")),
		Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Open:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view workflow")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Login:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "login")),
		Register:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "get started")),
		NewApp:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new application")),
		Status:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status filter")),
		Eligible:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "eligibility filter")),
		KYC:         key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "run kyc")),
		Credit:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "run credit check")),
		Eligibility: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "run eligibility")),
		Next:        key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:        key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		Toggle:      key.NewBinding(key.WithKeys("left", "right", " "), key.WithHelp("←/→", "change")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	}
}

// triggers maps each workflow action to its key on the admin detail screen.
func (k keyMap) triggers() map[workflow.Action]key.Binding {
	return map[workflow.Action]key.Binding{
		workflow.ActionRunKYC:         k.KYC,
		workflow.ActionRunCredit:      k.Credit,
		workflow.ActionRunEligibility: k.Eligibility,
	}
}

func (k keyMap) triggerLabels() map[workflow.Action]string {
	out := make(map[workflow.Action]string, 3)
	for a, b := range k.triggers() {
		out[a] = b.Help().Key
	}
	return out
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return render.Footer(strings.Join(parts, "  •  "))
}
